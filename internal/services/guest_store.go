package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akarwowski/lingocards-backend/internal/clients/redis"
	"github.com/akarwowski/lingocards-backend/internal/pkg/apperr"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

// GuestCardService keeps an unauthenticated visitor's cards in session-scoped
// key-value storage: one key per guest, holding a JSON array. The store holds
// at most one category's worth of cards at a time; generating for a different
// category starts over and the previous cards are discarded. Guest data is
// best-effort: reads of missing or corrupt values come back empty and write
// failures are logged, never surfaced.
type GuestCardService interface {
	GetAll(ctx context.Context, guestID string) []types.Flashcard
	ReplaceAll(ctx context.Context, guestID string, cards []types.ImportableCard) []types.Flashcard
	AppendToCategory(ctx context.Context, guestID string, cards []types.ImportableCard, category string) ([]types.Flashcard, error)
	DeleteByCategory(ctx context.Context, guestID, category string) int
	Clear(ctx context.Context, guestID string)
	CurrentCategory(ctx context.Context, guestID string) string
}

type guestCardService struct {
	log *logger.Logger
	kv  redis.KVStore
	ttl time.Duration
}

func NewGuestCardService(baseLog *logger.Logger, kv redis.KVStore, ttl time.Duration) GuestCardService {
	serviceLog := baseLog.With("service", "GuestCardService")
	return &guestCardService{log: serviceLog, kv: kv, ttl: ttl}
}

func guestCardsKey(guestID string) string {
	return "guest:cards:" + guestID
}

func (s *guestCardService) GetAll(ctx context.Context, guestID string) []types.Flashcard {
	if guestID == "" {
		return []types.Flashcard{}
	}
	raw, err := s.kv.Get(ctx, guestCardsKey(guestID))
	if err != nil {
		s.log.Warn("Guest storage unavailable, treating as empty", "guest_id", guestID, "error", err)
		return []types.Flashcard{}
	}
	if raw == "" {
		return []types.Flashcard{}
	}
	var cards []types.Flashcard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		s.log.Warn("Guest storage corrupt, treating as empty", "guest_id", guestID, "error", err)
		return []types.Flashcard{}
	}
	return cards
}

func (s *guestCardService) ReplaceAll(ctx context.Context, guestID string, cards []types.ImportableCard) []types.Flashcard {
	assigned := make([]types.Flashcard, 0, len(cards))
	for i, c := range cards {
		card := c.ToFlashcard(types.OwnerGuest)
		card.ID = uint(i + 1)
		assigned = append(assigned, *card)
	}
	s.persist(ctx, guestID, assigned)
	return assigned
}

func (s *guestCardService) AppendToCategory(ctx context.Context, guestID string, cards []types.ImportableCard, category string) ([]types.Flashcard, error) {
	if category == "" {
		return nil, apperr.New(400, apperr.CodeValidationFailure, fmt.Errorf("category must not be empty"))
	}

	existing := s.GetAll(ctx, guestID)

	// Switching category starts a fresh store; the previous category's cards
	// are dropped.
	if len(existing) == 0 || existing[0].Category != category {
		return s.ReplaceAll(ctx, guestID, cards), nil
	}

	nextID := uint(0)
	for _, card := range existing {
		if card.ID > nextID {
			nextID = card.ID
		}
	}

	for _, c := range cards {
		card := c.ToFlashcard(types.OwnerGuest)
		nextID++
		card.ID = nextID
		existing = append(existing, *card)
	}
	s.persist(ctx, guestID, existing)
	return existing, nil
}

func (s *guestCardService) DeleteByCategory(ctx context.Context, guestID, category string) int {
	existing := s.GetAll(ctx, guestID)
	remaining := make([]types.Flashcard, 0, len(existing))
	for _, card := range existing {
		if card.Category != category {
			remaining = append(remaining, card)
		}
	}
	deleted := len(existing) - len(remaining)
	if deleted > 0 {
		s.persist(ctx, guestID, remaining)
	}
	return deleted
}

func (s *guestCardService) Clear(ctx context.Context, guestID string) {
	if guestID == "" {
		return
	}
	if err := s.kv.Del(ctx, guestCardsKey(guestID)); err != nil {
		s.log.Warn("Failed to clear guest storage", "guest_id", guestID, "error", err)
	}
}

func (s *guestCardService) CurrentCategory(ctx context.Context, guestID string) string {
	cards := s.GetAll(ctx, guestID)
	if len(cards) == 0 {
		return ""
	}
	return cards[0].Category
}

func (s *guestCardService) persist(ctx context.Context, guestID string, cards []types.Flashcard) {
	if guestID == "" {
		return
	}
	raw, err := json.Marshal(cards)
	if err != nil {
		s.log.Warn("Failed to encode guest cards", "guest_id", guestID, "error", err)
		return
	}
	if err := s.kv.Set(ctx, guestCardsKey(guestID), string(raw), s.ttl); err != nil {
		s.log.Warn("Failed to persist guest cards", "guest_id", guestID, "error", err)
	}
}
