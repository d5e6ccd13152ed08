package services

import (
	"context"
	"testing"
	"time"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

func newTestReviewService(cards *fakeFlashcardRepo, progress *fakeProgressRepo, now time.Time) ReviewService {
	svc := NewReviewService(logger.NewNop(), cards, progress, newFakeEventRepo()).(*reviewService)
	svc.now = func() time.Time { return now }
	return svc
}

func seedCard(t *testing.T, cards *fakeFlashcardRepo, owner string) uint {
	t.Helper()
	created, err := cards.Create(context.Background(), nil, []*types.Flashcard{
		{OwnerID: owner, OriginText: "dog", TranslateText: "pies", Category: "Animals"},
	})
	if err != nil {
		t.Fatalf("seeding card: %v", err)
	}
	return created[0].ID
}

func TestRecordAnswerCreatesRecordLazily(t *testing.T) {
	ctx := context.Background()
	cards := newFakeFlashcardRepo()
	progress := newFakeProgressRepo()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestReviewService(cards, progress, now)

	cardID := seedCard(t, cards, "user-1")

	record, err := svc.RecordAnswer(ctx, "user-1", cardID, true)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if record.MasteryLevel != 1 || record.CorrectAnswers != 1 || record.IncorrectAnswers != 0 {
		t.Fatalf("record = %+v, want level 1 after first correct answer", record)
	}
	if !record.NextReviewDate.Equal(now.AddDate(0, 0, 1)) {
		t.Fatalf("NextReviewDate = %v, want next day", record.NextReviewDate)
	}
}

func TestRecordAnswerLadderClamps(t *testing.T) {
	ctx := context.Background()
	cards := newFakeFlashcardRepo()
	progress := newFakeProgressRepo()
	svc := newTestReviewService(cards, progress, time.Now())

	cardID := seedCard(t, cards, "user-1")

	// Climb past the top.
	for i := 0; i < types.MaxMasteryLevel+3; i++ {
		if _, err := svc.RecordAnswer(ctx, "user-1", cardID, true); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	record, _ := progress.GetByOwnerAndFlashcard(ctx, nil, "user-1", cardID)
	if record.MasteryLevel != types.MaxMasteryLevel {
		t.Fatalf("MasteryLevel = %d, want clamped at %d", record.MasteryLevel, types.MaxMasteryLevel)
	}
	if !record.Mastered() {
		t.Fatal("expected the card to be mastered")
	}

	// Fall past the bottom.
	for i := 0; i < types.MaxMasteryLevel+3; i++ {
		if _, err := svc.RecordAnswer(ctx, "user-1", cardID, false); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	record, _ = progress.GetByOwnerAndFlashcard(ctx, nil, "user-1", cardID)
	if record.MasteryLevel != 0 {
		t.Fatalf("MasteryLevel = %d, want clamped at 0", record.MasteryLevel)
	}
	if record.CorrectAnswers != types.MaxMasteryLevel+3 || record.IncorrectAnswers != types.MaxMasteryLevel+3 {
		t.Fatalf("counters = %d/%d, want both %d", record.CorrectAnswers, record.IncorrectAnswers, types.MaxMasteryLevel+3)
	}
}

func TestRecordAnswerUnknownCard(t *testing.T) {
	svc := newTestReviewService(newFakeFlashcardRepo(), newFakeProgressRepo(), time.Now())

	if _, err := svc.RecordAnswer(context.Background(), "user-1", 42, true); err == nil {
		t.Fatal("expected error for unknown flashcard")
	}
}

func TestRecordAnswerOtherOwnersCard(t *testing.T) {
	cards := newFakeFlashcardRepo()
	cardID := seedCard(t, cards, "someone-else")
	svc := newTestReviewService(cards, newFakeProgressRepo(), time.Now())

	if _, err := svc.RecordAnswer(context.Background(), "user-1", cardID, true); err == nil {
		t.Fatal("expected error when reviewing another owner's card")
	}
}
