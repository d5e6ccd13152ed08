package services

import (
	"context"
	"fmt"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/repos"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

// CardService answers "what cards does this session have" regardless of where
// they live.
type CardService interface {
	List(ctx context.Context, session SessionState) ([]types.Flashcard, error)
	DeleteCategory(ctx context.Context, session SessionState, category string) (int64, error)
}

type cardService struct {
	log        *logger.Logger
	guestCards GuestCardService
	cardRepo   repos.FlashcardRepo
}

func NewCardService(baseLog *logger.Logger, guestCards GuestCardService, cardRepo repos.FlashcardRepo) CardService {
	serviceLog := baseLog.With("service", "CardService")
	return &cardService{log: serviceLog, guestCards: guestCards, cardRepo: cardRepo}
}

func (s *cardService) List(ctx context.Context, session SessionState) ([]types.Flashcard, error) {
	if session.Mode == ModeGuest {
		return s.guestCards.GetAll(ctx, session.GuestID), nil
	}

	rows, err := s.cardRepo.GetByOwner(ctx, nil, session.Identity)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	cards := make([]types.Flashcard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, *row)
	}
	return cards, nil
}

func (s *cardService) DeleteCategory(ctx context.Context, session SessionState, category string) (int64, error) {
	if session.Mode == ModeGuest {
		return int64(s.guestCards.DeleteByCategory(ctx, session.GuestID, category)), nil
	}

	deleted, err := s.cardRepo.DeleteByOwnerAndCategory(ctx, nil, session.Identity, category)
	if err != nil {
		return 0, fmt.Errorf("deleting category: %w", err)
	}
	return deleted, nil
}
