package sweet

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/models"
)

var discardLog = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubRepo struct {
	mu     sync.Mutex
	sweets map[uint]*models.Sweet
	nextID uint

	createErr error // if set, Create returns this error
}

func newStubRepo() *stubRepo {
	return &stubRepo{sweets: make(map[uint]*models.Sweet), nextID: 1}
}

func (r *stubRepo) put(s models.Sweet) *models.Sweet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	} else if s.ID >= r.nextID {
		r.nextID = s.ID + 1
	}
	clone := s
	r.sweets[s.ID] = &clone
	return &clone
}

func (r *stubRepo) Create(_ context.Context, s *models.Sweet) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := r.put(*s)
	s.ID = stored.ID
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id uint) (*models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubRepo) GetByIDWithShop(ctx context.Context, id uint) (*models.Sweet, error) {
	return r.GetByID(ctx, id)
}

func (r *stubRepo) ListAll(_ context.Context) ([]models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Search mirrors the filters the gorm repository applies.
func (r *stubRepo) Search(_ context.Context, f domain.SearchFilter) ([]models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Sweet
	for _, s := range r.sweets {
		if f.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(s.Category, f.Category) {
			continue
		}
		if f.MinPrice != nil && s.Price.Cmp(*f.MinPrice) < 0 {
			continue
		}
		if f.MaxPrice != nil && s.Price.Cmp(*f.MaxPrice) > 0 {
			continue
		}
		matched = append(matched, *s)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return matched, nil
}

func (r *stubRepo) ApplyUpdate(_ context.Context, id uint, fields domain.UpdateFields) (*models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if fields.Name != nil {
		s.Name = *fields.Name
	}
	if fields.Category != nil {
		s.Category = *fields.Category
	}
	if fields.Price != nil {
		s.Price = *fields.Price
	}
	if fields.Quantity != nil {
		s.Quantity = *fields.Quantity
	}
	if fields.Image != nil {
		s.Image = *fields.Image
	}
	clone := *s
	return &clone, nil
}

func (r *stubRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sweets, id)
	return nil
}

func (r *stubRepo) IncrementStock(_ context.Context, id uint, qty int) (*models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.Quantity += qty
	clone := *s
	return &clone, nil
}

// DecrementStock applies the same conditional-update semantics as the
// SQL `UPDATE ... WHERE quantity >= ?`: zero rows matched means
// conflict, whether the row is short on stock or gone.
func (r *stubRepo) DecrementStock(_ context.Context, id uint, qty int) (*models.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok || s.Quantity < qty {
		return nil, domain.ErrStockConflict
	}
	s.Quantity -= qty
	clone := *s
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Stub image store / auditor
// ---------------------------------------------------------------------------

type stubImageStore struct {
	mu        sync.Mutex
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func (s *stubImageStore) Upload(_ context.Context, r io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++
	return fmt.Sprintf("https://img.test/sweets/%d.webp", s.uploads), nil
}

func (s *stubImageStore) Delete(_ context.Context, imageURL string) error {
	s.mu.Lock()
	s.deleted = append(s.deleted, imageURL)
	s.mu.Unlock()
	return s.deleteErr
}

type stubAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *stubAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	a.events = append(a.events, ev)
	a.mu.Unlock()
}

func (a *stubAuditor) count(action string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, ev := range a.events {
		if ev.Action == action {
			n++
		}
	}
	return n
}
