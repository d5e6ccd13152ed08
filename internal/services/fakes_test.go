package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/akarwowski/lingocards-backend/internal/types"
)

// In-memory stand-ins for the repo and client interfaces. Shared by the
// service tests in this package.

type fakeKV struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	getHits int
	setHits int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getHits++
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.data[key], nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setHits++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Close() error { return nil }

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*types.User
	ensureErr   error
	ensureCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*types.User{}}
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) EnsureExists(ctx context.Context, tx *gorm.DB, id, email string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	if f.ensureErr != nil {
		return nil, f.ensureErr
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	u := &types.User{ID: id, Email: email, DailyGoal: 10}
	f.users[id] = u
	return u, nil
}

func (f *fakeUserRepo) UpdateDailyGoal(ctx context.Context, tx *gorm.DB, id string, goal int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.DailyGoal = goal
	}
	return nil
}

type fakeFlashcardRepo struct {
	mu          sync.Mutex
	nextID      uint
	cards       []*types.Flashcard
	createErr   error
	failAfter   int // fail creates once this many rows are stored; 0 = never
	createCalls int
}

func newFakeFlashcardRepo() *fakeFlashcardRepo {
	return &fakeFlashcardRepo{}
}

func (f *fakeFlashcardRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Flashcard) ([]*types.Flashcard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.failAfter > 0 && len(f.cards) >= f.failAfter {
		return nil, fmt.Errorf("insert failed")
	}
	for _, row := range rows {
		f.nextID++
		row.ID = f.nextID
		f.cards = append(f.cards, row)
	}
	return rows, nil
}

func (f *fakeFlashcardRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.Flashcard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Flashcard
	for _, c := range f.cards {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeFlashcardRepo) GetByOwnerAndCategory(ctx context.Context, tx *gorm.DB, ownerID, category string) ([]*types.Flashcard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.Flashcard
	for _, c := range f.cards {
		if c.OwnerID == ownerID && c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeFlashcardRepo) GetByIDForOwner(ctx context.Context, tx *gorm.DB, ownerID string, id uint) (*types.Flashcard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cards {
		if c.OwnerID == ownerID && c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeFlashcardRepo) GetKeysByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]types.CardKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.CardKey
	for _, c := range f.cards {
		if c.OwnerID == ownerID {
			out = append(out, c.Key())
		}
	}
	return out, nil
}

func (f *fakeFlashcardRepo) DeleteByOwnerAndCategory(ctx context.Context, tx *gorm.DB, ownerID, category string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*types.Flashcard
	var deleted int64
	for _, c := range f.cards {
		if c.OwnerID == ownerID && c.Category == category {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	f.cards = kept
	return deleted, nil
}

type fakeProgressRepo struct {
	mu      sync.Mutex
	records []*types.ProgressRecord
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{}
}

func (f *fakeProgressRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.ProgressRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.ProgressRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) GetByOwnerAndFlashcard(ctx context.Context, tx *gorm.DB, ownerID string, flashcardID uint) (*types.ProgressRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.OwnerID == ownerID && r.FlashcardID == flashcardID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ProgressRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.records {
		if r.OwnerID == row.OwnerID && r.FlashcardID == row.FlashcardID {
			f.records[i] = row
			return nil
		}
	}
	f.records = append(f.records, row)
	return nil
}

func (f *fakeProgressRepo) DeleteByOwner(ctx context.Context, tx *gorm.DB, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*types.ProgressRecord
	for _, r := range f.records {
		if r.OwnerID != ownerID {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []*types.UserEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{}
}

func (f *fakeEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserEvent) ([]*types.UserEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, rows...)
	return rows, nil
}

func (f *fakeEventRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]*types.UserEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.UserEvent
	for _, e := range f.events {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type staticResolver struct {
	identity string
	email    string
	err      error
}

func (r staticResolver) Resolve(cookieHeader string) (string, string, error) {
	return r.identity, r.email, r.err
}

type fakeGenerator struct {
	batches [][]types.ImportableCard
	calls   int
	err     error
}

func (g *fakeGenerator) Generate(ctx context.Context, req GenerationRequest) ([]types.ImportableCard, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.calls >= len(g.batches) {
		return nil, nil
	}
	batch := g.batches[g.calls]
	g.calls++
	return batch, nil
}
