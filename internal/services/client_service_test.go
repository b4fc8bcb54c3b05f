package services

import (
	"errors"
	"regexp"
	"testing"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"
)

// fakeClientRepo keys clients by whatsapp, mirroring the unique constraint.
type fakeClientRepo struct {
	byWhatsApp map[string]*models.Client
	// forceDuplicate simulates losing a race: CreateClient fails with
	// ErrDuplicateKey and plants this record as the stored winner.
	forceDuplicate *models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byWhatsApp: make(map[string]*models.Client)}
}

func (f *fakeClientRepo) CreateClient(executor repositories.SQLExecutor, client *models.Client) error {
	if f.forceDuplicate != nil {
		f.byWhatsApp[f.forceDuplicate.WhatsApp] = f.forceDuplicate
		return repositories.ErrDuplicateKey
	}
	if _, exists := f.byWhatsApp[client.WhatsApp]; exists {
		return repositories.ErrDuplicateKey
	}
	stored := *client
	f.byWhatsApp[client.WhatsApp] = &stored
	return nil
}

func (f *fakeClientRepo) GetClientByID(id string) (*models.Client, error) {
	for _, c := range f.byWhatsApp {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeClientRepo) GetClientByWhatsApp(whatsapp string) (*models.Client, error) {
	c, ok := f.byWhatsApp[whatsapp]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeClientRepo) GetClients() ([]models.Client, error) {
	out := make([]models.Client, 0, len(f.byWhatsApp))
	for _, c := range f.byWhatsApp {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClientRepo) CountClients() (int, error) {
	return len(f.byWhatsApp), nil
}

var accessCodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

func TestRegisterMintsSixDigitAccessCode(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil, nil)

	result, err := svc.Register(RegisterClientRequest{
		FirstName: "Maria",
		LastName:  "Silva",
		WhatsApp:  "5511999990000",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !result.Created {
		t.Fatal("first registration should report Created")
	}
	if !accessCodePattern.MatchString(result.AccessCode) {
		t.Fatalf("access code %q is not a 6-digit code", result.AccessCode)
	}
	if result.ID == "" {
		t.Fatal("registration should mint an ID")
	}
}

func TestRegisterIsIdempotentByWhatsApp(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil, nil)

	first, err := svc.Register(RegisterClientRequest{
		FirstName: "Maria", LastName: "Silva", WhatsApp: "5511999990000",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// A different name with the same contact resolves to the same record;
	// the access code never rotates.
	second, err := svc.Register(RegisterClientRequest{
		FirstName: "Outra", LastName: "Pessoa", WhatsApp: "5511999990000",
	})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if second.Created {
		t.Fatal("re-registration must not report Created")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same client ID, got %q and %q", first.ID, second.ID)
	}
	if second.AccessCode != first.AccessCode {
		t.Fatal("access code must not rotate on re-registration")
	}
	if second.FirstName != "Maria" {
		t.Fatalf("stored identity wins, got first name %q", second.FirstName)
	}
}

func TestRegisterResolvesConcurrentDuplicate(t *testing.T) {
	repo := newFakeClientRepo()
	repo.forceDuplicate = &models.Client{
		ID:         "winner-id",
		FirstName:  "Maria",
		WhatsApp:   "5511999990000",
		AccessCode: "654321",
	}
	svc := NewClientService(repo, nil, nil)

	result, err := svc.Register(RegisterClientRequest{
		FirstName: "Maria", LastName: "Silva", WhatsApp: "5511999990000",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.Created {
		t.Fatal("losing the insert race must not report Created")
	}
	if result.ID != "winner-id" || result.AccessCode != "654321" {
		t.Fatalf("expected the stored record to win, got %+v", result)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil, nil)

	cases := []RegisterClientRequest{
		{FirstName: "", LastName: "Silva", WhatsApp: "5511999990000"},
		{FirstName: "Maria", LastName: "", WhatsApp: "5511999990000"},
		{FirstName: "Maria", LastName: "Silva", WhatsApp: ""},
		{FirstName: "   ", LastName: "Silva", WhatsApp: "5511999990000"},
	}
	for _, req := range cases {
		if _, err := svc.Register(req); !errors.Is(err, ErrClientValidation) {
			t.Errorf("Register(%+v): expected validation error, got %v", req, err)
		}
	}
}

func TestRegisterTrimsWhatsApp(t *testing.T) {
	svc := NewClientService(newFakeClientRepo(), nil, nil)

	first, err := svc.Register(RegisterClientRequest{
		FirstName: "Maria", LastName: "Silva", WhatsApp: " 5511999990000 ",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := svc.Register(RegisterClientRequest{
		FirstName: "Maria", LastName: "Silva", WhatsApp: "5511999990000",
	})
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if second.Created || second.ID != first.ID {
		t.Fatal("whitespace around the contact should not create a second record")
	}
}

func TestCountReturnsRawCount(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo, nil, nil)

	for _, wa := range []string{"111", "222", "333"} {
		if _, err := svc.Register(RegisterClientRequest{FirstName: "A", LastName: "B", WhatsApp: wa}); err != nil {
			t.Fatalf("Register(%s): %v", wa, err)
		}
	}
	count, err := svc.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}
}
