package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/repos"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

// reviewIntervalDays maps a mastery level to the delay before the card comes
// up again. Indexed by the level reached after the answer.
var reviewIntervalDays = [types.MaxMasteryLevel + 1]int{1, 1, 2, 4, 7, 14}

// ReviewService applies one answer to an owner's progress record. The record
// is created on the first answer; a correct answer moves the card one step up
// the mastery ladder, a wrong one moves it one step down, both clamped.
type ReviewService interface {
	RecordAnswer(ctx context.Context, identity string, flashcardID uint, correct bool) (*types.ProgressRecord, error)
}

type reviewService struct {
	log          *logger.Logger
	cardRepo     repos.FlashcardRepo
	progressRepo repos.ProgressRepo
	eventRepo    repos.UserEventRepo
	now          func() time.Time
}

func NewReviewService(baseLog *logger.Logger, cardRepo repos.FlashcardRepo, progressRepo repos.ProgressRepo, eventRepo repos.UserEventRepo) ReviewService {
	serviceLog := baseLog.With("service", "ReviewService")
	return &reviewService{
		log:          serviceLog,
		cardRepo:     cardRepo,
		progressRepo: progressRepo,
		eventRepo:    eventRepo,
		now:          time.Now,
	}
}

func (s *reviewService) RecordAnswer(ctx context.Context, identity string, flashcardID uint, correct bool) (*types.ProgressRecord, error) {
	if identity == "" {
		return nil, fmt.Errorf("identity is required")
	}

	card, err := s.cardRepo.GetByIDForOwner(ctx, nil, identity, flashcardID)
	if err != nil {
		return nil, fmt.Errorf("fetching flashcard: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("flashcard %d not found for owner", flashcardID)
	}

	record, err := s.progressRepo.GetByOwnerAndFlashcard(ctx, nil, identity, flashcardID)
	if err != nil {
		return nil, fmt.Errorf("fetching progress record: %w", err)
	}
	if record == nil {
		record = &types.ProgressRecord{
			FlashcardID: flashcardID,
			OwnerID:     identity,
		}
	}

	if correct {
		record.CorrectAnswers++
		if record.MasteryLevel < types.MaxMasteryLevel {
			record.MasteryLevel++
		}
	} else {
		record.IncorrectAnswers++
		if record.MasteryLevel > 0 {
			record.MasteryLevel--
		}
	}
	record.NextReviewDate = s.now().AddDate(0, 0, reviewIntervalDays[record.MasteryLevel])

	if err := s.progressRepo.Upsert(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("saving progress record: %w", err)
	}

	s.recordAnswerEvent(ctx, identity, flashcardID, correct)
	return record, nil
}

func (s *reviewService) recordAnswerEvent(ctx context.Context, identity string, flashcardID uint, correct bool) {
	payload, err := json.Marshal(map[string]interface{}{
		"flashcard_id": flashcardID,
		"correct":      correct,
	})
	if err != nil {
		return
	}
	event := &types.UserEvent{
		OwnerID:   identity,
		EventType: types.EventAnswerRecorded,
		Payload:   payload,
	}
	if _, err := s.eventRepo.Create(ctx, nil, []*types.UserEvent{event}); err != nil {
		s.log.Warn("Failed to record answer event", "identity", identity, "error", err)
	}
}
