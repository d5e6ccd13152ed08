package services

import (
	"context"
	"fmt"

	"github.com/akarwowski/lingocards-backend/internal/pkg/apperr"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/repos"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type GenerationRequest struct {
	Category        string `json:"category"`
	SourceLanguage  string `json:"source_language"`
	TargetLanguage  string `json:"target_language"`
	DifficultyLevel string `json:"difficulty_level"`
	Count           int    `json:"count"`
}

// CardGenerator is the language-model boundary. It returns raw candidate
// cards; whether they are new is this service's problem, not the generator's.
type CardGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]types.ImportableCard, error)
}

type GenerationOutput struct {
	Cards          []types.Flashcard `json:"cards"`
	DuplicateCount int               `json:"duplicate_count"`
}

// GenerationService runs the full pipeline: generate candidates, drop the
// ones the session already has, store the remainder wherever the session
// keeps its cards (guest store for guests, durable rows for demo and
// authenticated sessions).
type GenerationService interface {
	Generate(ctx context.Context, session SessionState, req GenerationRequest) (GenerationOutput, error)
}

type generationService struct {
	log        *logger.Logger
	generator  CardGenerator
	dedup      DedupService
	guestCards GuestCardService
	cardRepo   repos.FlashcardRepo
}

func NewGenerationService(baseLog *logger.Logger, generator CardGenerator, dedup DedupService, guestCards GuestCardService, cardRepo repos.FlashcardRepo) GenerationService {
	serviceLog := baseLog.With("service", "GenerationService")
	return &generationService{
		log:        serviceLog,
		generator:  generator,
		dedup:      dedup,
		guestCards: guestCards,
		cardRepo:   cardRepo,
	}
}

func (s *generationService) Generate(ctx context.Context, session SessionState, req GenerationRequest) (GenerationOutput, error) {
	if req.Category == "" {
		return GenerationOutput{}, apperr.New(400, apperr.CodeValidationFailure, fmt.Errorf("category must not be empty"))
	}

	candidates, err := s.generator.Generate(ctx, req)
	if err != nil {
		return GenerationOutput{}, fmt.Errorf("generating candidates: %w", err)
	}

	existing, err := s.existingKeys(ctx, session)
	if err != nil {
		return GenerationOutput{}, err
	}

	unique, duplicates := s.dedup.FilterDuplicates(candidates, existing)

	stored, err := s.store(ctx, session, unique, req.Category)
	if err != nil {
		return GenerationOutput{}, err
	}

	s.log.Info("Generated flashcards",
		"mode", session.Mode,
		"category", req.Category,
		"stored", len(stored),
		"duplicates", duplicates)
	return GenerationOutput{Cards: stored, DuplicateCount: duplicates}, nil
}

func (s *generationService) existingKeys(ctx context.Context, session SessionState) ([]types.CardKey, error) {
	if session.Mode == ModeGuest {
		cards := s.guestCards.GetAll(ctx, session.GuestID)
		keys := make([]types.CardKey, 0, len(cards))
		for _, card := range cards {
			keys = append(keys, card.Key())
		}
		return keys, nil
	}

	keys, err := s.cardRepo.GetKeysByOwner(ctx, nil, session.Identity)
	if err != nil {
		return nil, fmt.Errorf("loading existing cards: %w", err)
	}
	return keys, nil
}

func (s *generationService) store(ctx context.Context, session SessionState, cards []types.ImportableCard, category string) ([]types.Flashcard, error) {
	if session.Mode == ModeGuest {
		return s.guestCards.AppendToCategory(ctx, session.GuestID, cards, category)
	}

	rows := make([]*types.Flashcard, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, c.ToFlashcard(session.Identity))
	}
	created, err := s.cardRepo.Create(ctx, nil, rows)
	if err != nil {
		return nil, fmt.Errorf("storing cards: %w", err)
	}

	stored := make([]types.Flashcard, 0, len(created))
	for _, row := range created {
		stored = append(stored, *row)
	}
	return stored, nil
}
