package services

import (
	"errors"
	"strings"
	"testing"

	"jm_store_backend/internal/models"
	"jm_store_backend/internal/repositories"
)

type fakeProductRepo struct {
	products map[int64]*models.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*models.Product), nextID: 1}
}

func (f *fakeProductRepo) CreateProduct(executor repositories.SQLExecutor, product *models.Product) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *product
	stored.ID = id
	f.products[id] = &stored
	return id, nil
}

func (f *fakeProductRepo) GetProductByID(id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeProductRepo) GetProducts(searchTerm *string) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		if searchTerm != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*searchTerm)) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) UpdateProduct(executor repositories.SQLExecutor, product *models.Product) error {
	stored, ok := f.products[product.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	likes := stored.LikesCount
	updated := *product
	updated.LikesCount = likes
	f.products[product.ID] = &updated
	return nil
}

func (f *fakeProductRepo) DeleteProduct(executor repositories.SQLExecutor, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) UpdateLikes(executor repositories.SQLExecutor, id int64, count int) error {
	p, ok := f.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if count < 0 {
		count = 0
	}
	p.LikesCount = count
	return nil
}

func (f *fakeProductRepo) TotalLikes() (int, error) {
	total := 0
	for _, p := range f.products {
		total += p.LikesCount
	}
	return total, nil
}

func TestSaveProductCreatesWithoutID(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	product, err := svc.SaveProduct(SaveProductRequest{
		Name:     "Vestido Longo Ester",
		Price:    159.90,
		Category: models.CategoryDresses,
		ImageURL: "https://example.com/ester.jpg",
		Sizes:    []string{"P", "M"},
	})
	if err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("created product should have an ID")
	}
}

func TestSaveProductUpdatePreservesLikes(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	created, err := svc.SaveProduct(SaveProductRequest{
		Name: "Saia Ruth", Price: 99.90, ImageURL: "https://example.com/ruth.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SetLikes(UpdateLikesRequest{ID: created.ID, Count: 7}); err != nil {
		t.Fatalf("SetLikes: %v", err)
	}

	updated, err := svc.SaveProduct(SaveProductRequest{
		ID: &created.ID, Name: "Saia Ruth II", Price: 109.90, ImageURL: "https://example.com/ruth2.jpg",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LikesCount != 7 {
		t.Fatalf("update must not touch the like counter, got %d", updated.LikesCount)
	}
	if updated.Name != "Saia Ruth II" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
}

func TestSaveProductValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil)

	cases := []SaveProductRequest{
		{Name: "", Price: 10, ImageURL: "https://example.com/x.jpg"},
		{Name: "Blusa", Price: -1, ImageURL: "https://example.com/x.jpg"},
		{Name: "Blusa", Price: 10, ImageURL: "  "},
	}
	for _, req := range cases {
		if _, err := svc.SaveProduct(req); !errors.Is(err, ErrProductValidation) {
			t.Errorf("SaveProduct(%+v): expected validation error, got %v", req, err)
		}
	}
}

func TestSetLikesClampsNegative(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	created, err := svc.SaveProduct(SaveProductRequest{
		Name: "Blusa Lia", Price: 79.90, ImageURL: "https://example.com/lia.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SetLikes(UpdateLikesRequest{ID: created.ID, Count: -5}); err != nil {
		t.Fatalf("SetLikes: %v", err)
	}
	stored, err := svc.GetProductByID(created.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if stored.LikesCount != 0 {
		t.Fatalf("negative count must clamp to zero, got %d", stored.LikesCount)
	}
}

func TestSetLikesLastWriterWins(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	created, err := svc.SaveProduct(SaveProductRequest{
		Name: "Vestido Ana", Price: 149.90, ImageURL: "https://example.com/ana.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Two clients push different absolute values; the last one stands.
	if err := svc.SetLikes(UpdateLikesRequest{ID: created.ID, Count: 12}); err != nil {
		t.Fatalf("SetLikes: %v", err)
	}
	if err := svc.SetLikes(UpdateLikesRequest{ID: created.ID, Count: 3}); err != nil {
		t.Fatalf("SetLikes: %v", err)
	}
	stored, _ := svc.GetProductByID(created.ID)
	if stored.LikesCount != 3 {
		t.Fatalf("expected last write to win, got %d", stored.LikesCount)
	}
}

func TestSetLikesUnknownProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil)
	if err := svc.SetLikes(UpdateLikesRequest{ID: 99, Count: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGetProductsSearchFilter(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, nil)

	for _, name := range []string{"Vestido Midi Floral", "Blazer Clássico", "Vestido Longo"} {
		if _, err := svc.SaveProduct(SaveProductRequest{
			Name: name, Price: 100, ImageURL: "https://example.com/p.jpg",
		}); err != nil {
			t.Fatalf("SaveProduct(%s): %v", name, err)
		}
	}

	term := "vestido"
	results, err := svc.GetProducts(&term)
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", term, len(results))
	}
}
