// Package app holds the storefront interaction state: the catalog, likes,
// comments, stories and the registered identity, kept consistent against a
// backend reached through a gateway.
package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"jm_store_backend/internal/gateway"
	"jm_store_backend/internal/models"
	"jm_store_backend/internal/session"
	"jm_store_backend/pkg/utils"
)

// ClientCountBase is added to the real registration count so the social
// counter never starts from zero on a fresh deployment.
const ClientCountBase = 537

const (
	// StoryWindow is how long a story stays visible after posting.
	StoryWindow = 24 * time.Hour
	// MaxVisibleStories caps the story tray.
	MaxVisibleStories = 10
	// RecentFeedLimit caps the community comment feed.
	RecentFeedLimit = 10
)

var (
	ErrNotRegistered       = errors.New("client is not registered")
	ErrEmptyComment        = errors.New("comment text is empty")
	ErrInvalidRegistration = errors.New("name and whatsapp are required")
	ErrBackendUnavailable  = errors.New("no backend configured")
)

// Config wires a State to its backend and local storage.
type Config struct {
	Gateway gateway.Gateway
	// Sessions is optional; without it the identity lives only in memory.
	Sessions *session.Store
	// RevalidateOnLoad checks a restored session against the backend. When
	// the backend cannot be reached the local session is trusted as-is.
	RevalidateOnLoad bool
	// Now is overridable for tests. Defaults to time.Now.
	Now func() time.Time
}

// State is the single source of truth for the storefront UI. All methods are
// safe for concurrent use.
type State struct {
	mu sync.Mutex

	gw       gateway.Gateway
	sessions *session.Store
	now      func() time.Time

	products   []models.Product
	likeCounts map[int64]int
	liked      map[int64]bool
	comments   map[int64][]models.Comment
	recent     []models.Comment
	stories    []models.Story
	drafts     map[int64]string

	identity   *gateway.Identity
	registered bool

	clientCount int

	revalidate bool
	reconciles map[int64]context.CancelFunc
	wg         sync.WaitGroup
}

func New(cfg Config) *State {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &State{
		gw:         cfg.Gateway,
		sessions:   cfg.Sessions,
		now:        now,
		likeCounts: make(map[int64]int),
		liked:      make(map[int64]bool),
		comments:   make(map[int64][]models.Comment),
		drafts:     make(map[int64]string),
		revalidate: cfg.RevalidateOnLoad,
		reconciles: make(map[int64]context.CancelFunc),
	}
}

// RestoreSession loads a previously saved identity. A missing or invalid
// session leaves the state unregistered; it is never an error.
func (s *State) RestoreSession(ctx context.Context) {
	if s.sessions == nil {
		return
	}
	saved, err := s.sessions.Load()
	if err != nil || saved == nil {
		return
	}

	identity := &gateway.Identity{
		ID:        saved.ClientID,
		FirstName: saved.DisplayName,
		WhatsApp:  saved.WhatsApp,
	}

	if s.revalidate && s.gw != nil {
		remote, err := s.gw.LookupClient(ctx, saved.WhatsApp)
		switch {
		case errors.Is(err, gateway.ErrClientUnknown):
			// The backend no longer knows this client; drop the session.
			s.sessions.Clear()
			return
		case err == nil:
			identity = remote
		}
		// Any other error means the backend is unreachable; trust the
		// local copy rather than logging the shopper out.
	}

	s.mu.Lock()
	s.identity = identity
	s.registered = true
	s.mu.Unlock()
}

// LoadCatalog fetches the product list and seeds like counters. When the
// backend fails or returns an empty catalog the bundled fallback is used, so
// the storefront always has something to show. Comments are fetched as a
// secondary step; their failure does not empty the catalog.
func (s *State) LoadCatalog(ctx context.Context) {
	var products []models.Product
	if s.gw != nil {
		if fetched, err := s.gw.FetchProducts(ctx); err == nil && len(fetched) > 0 {
			products = fetched
		}
	}
	if len(products) == 0 {
		products = FallbackProducts()
	}

	s.mu.Lock()
	s.products = products
	for _, p := range products {
		if _, seen := s.likeCounts[p.ID]; !seen {
			s.likeCounts[p.ID] = p.LikesCount
		}
	}
	s.mu.Unlock()

	if s.gw == nil {
		return
	}
	comments, err := s.gw.FetchComments(ctx)
	if err != nil {
		return
	}
	byProduct := make(map[int64][]models.Comment)
	for _, c := range comments {
		byProduct[c.ProductID] = append(byProduct[c.ProductID], c)
	}
	s.mu.Lock()
	s.comments = byProduct
	s.recent = recentFeed(comments)
	s.mu.Unlock()
}

// Products returns the catalog with live like counts applied.
func (s *State) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	for i := range out {
		out[i].LikesCount = s.likeCounts[out[i].ID]
	}
	return out
}

// ToggleLike flips the shopper's like on a product and adjusts the counter
// immediately. The new absolute count is pushed to the backend in the
// background; if the push fails the optimistic value stands until the next
// catalog load. A second toggle for the same product replaces any push still
// in flight.
func (s *State) ToggleLike(productID int64) {
	s.mu.Lock()
	liked := !s.liked[productID]
	s.liked[productID] = liked
	count := s.likeCounts[productID]
	if liked {
		count++
	} else {
		count--
	}
	if count < 0 {
		count = 0
	}
	s.likeCounts[productID] = count

	if s.gw == nil {
		s.mu.Unlock()
		return
	}
	if cancel, ok := s.reconciles[productID]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.reconciles[productID] = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()
		err := s.gw.UpdateLikes(ctx, productID, count)
		if err != nil && !errors.Is(err, context.Canceled) {
			// No rollback: the optimistic value stands until the next
			// catalog load re-seeds from the backend.
			utils.LogError(err, "Failed to push like count")
		}
	}()
}

// Liked reports whether the shopper has liked the product in this session.
func (s *State) Liked(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[productID]
}

// LikeCount returns the current (possibly optimistic) counter for a product.
func (s *State) LikeCount(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likeCounts[productID]
}

// SetDraft stores the comment text being typed for a product.
func (s *State) SetDraft(productID int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[productID] = text
}

// Draft returns the in-progress comment text for a product.
func (s *State) Draft(productID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[productID]
}

// SubmitComment sends the product's draft to the backend. Nothing is shown
// optimistically: the comment appears only once the backend confirms it. On
// any failure the draft is preserved so the shopper can retry.
func (s *State) SubmitComment(ctx context.Context, productID int64) (*models.Comment, error) {
	s.mu.Lock()
	registered := s.registered
	var clientID string
	if s.identity != nil {
		clientID = s.identity.ID
	}
	text := strings.TrimSpace(s.drafts[productID])
	s.mu.Unlock()

	if !registered || clientID == "" {
		return nil, ErrNotRegistered
	}
	if text == "" {
		return nil, ErrEmptyComment
	}
	if s.gw == nil {
		return nil, ErrBackendUnavailable
	}

	confirmed, err := s.gw.PostComment(ctx, clientID, productID, text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.comments[productID] = append(s.comments[productID], *confirmed)
	s.recent = recentFeed(append(s.recent, *confirmed))
	delete(s.drafts, productID)
	s.mu.Unlock()
	return confirmed, nil
}

// ProductComments returns the confirmed comments for one product, oldest
// first.
func (s *State) ProductComments(productID int64) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.comments[productID]
	out := make([]models.Comment, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// RecentComments returns the newest confirmed comments across all products,
// capped at RecentFeedLimit.
func (s *State) RecentComments() []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Comment, len(s.recent))
	copy(out, s.recent)
	return out
}

// RefreshRecentComments re-fetches the community feed from the backend.
func (s *State) RefreshRecentComments(ctx context.Context) error {
	if s.gw == nil {
		return nil
	}
	comments, err := s.gw.FetchComments(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.recent = recentFeed(comments)
	s.mu.Unlock()
	return nil
}

func recentFeed(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments))
	copy(out, comments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > RecentFeedLimit {
		out = out[:RecentFeedLimit]
	}
	return out
}

// Register creates (or recovers) the shopper's identity. Registration is
// idempotent on the whatsapp number: re-registering returns the existing
// identity and access code. The local counter only moves when the backend
// reports a genuinely new registration.
func (s *State) Register(ctx context.Context, firstName, lastName, whatsapp string) (*gateway.Registration, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	whatsapp = strings.TrimSpace(whatsapp)
	if firstName == "" || lastName == "" || whatsapp == "" {
		return nil, ErrInvalidRegistration
	}
	if s.gw == nil {
		return nil, ErrBackendUnavailable
	}

	reg, err := s.gw.RegisterClient(ctx, gateway.RegisterInput{
		FirstName: firstName,
		LastName:  lastName,
		WhatsApp:  whatsapp,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.identity = &gateway.Identity{ID: reg.ID, FirstName: reg.FirstName, WhatsApp: reg.WhatsApp}
	s.registered = true
	if reg.Created {
		s.clientCount++
	}
	s.mu.Unlock()

	if s.sessions != nil {
		s.sessions.Save(session.Session{
			ClientID:    reg.ID,
			WhatsApp:    reg.WhatsApp,
			DisplayName: reg.FirstName,
		})
	}
	return reg, nil
}

// Registered reports whether a client identity is present.
func (s *State) Registered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registered
}

// Identity returns the current client identity, or nil when unregistered.
func (s *State) Identity() *gateway.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// ClientCount returns the displayed community size: the base offset plus the
// known registration count.
func (s *State) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ClientCountBase + s.clientCount
}

// RefreshClientCount pulls the real registration count from the backend.
func (s *State) RefreshClientCount(ctx context.Context) error {
	if s.gw == nil {
		return nil
	}
	count, err := s.gw.ClientCount(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.clientCount = count
	s.mu.Unlock()
	return nil
}

// RefreshStories pulls the story tray from the backend.
func (s *State) RefreshStories(ctx context.Context) error {
	if s.gw == nil {
		return nil
	}
	stories, err := s.gw.FetchStories(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.stories = stories
	s.mu.Unlock()
	return nil
}

// ActiveStories returns the stories still inside the 24h window, newest
// first, capped at MaxVisibleStories. The window check is strict: a story
// posted exactly 24h ago is already expired.
func (s *State) ActiveStories() []models.Story {
	cutoff := s.now().Add(-StoryWindow)

	s.mu.Lock()
	defer s.mu.Unlock()
	active := make([]models.Story, 0, len(s.stories))
	for _, story := range s.stories {
		if story.PostedAt.After(cutoff) {
			active = append(active, story)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].PostedAt.After(active[j].PostedAt)
	})
	if len(active) > MaxVisibleStories {
		active = active[:MaxVisibleStories]
	}
	return active
}

// Close cancels any in-flight like pushes and waits for them to finish.
func (s *State) Close() {
	s.mu.Lock()
	for _, cancel := range s.reconciles {
		cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
