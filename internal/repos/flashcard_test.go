package repos

import (
	"context"
	"testing"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

func seedCards(t *testing.T, repo FlashcardRepo, owner, category string, pairs ...[2]string) []*types.Flashcard {
	t.Helper()
	rows := make([]*types.Flashcard, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, &types.Flashcard{
			OwnerID:       owner,
			OriginText:    p[0],
			TranslateText: p[1],
			Category:      category,
		})
	}
	created, err := repo.Create(context.Background(), nil, rows)
	if err != nil {
		t.Fatalf("seeding cards: %v", err)
	}
	return created
}

func TestFlashcardCreateAssignsIDs(t *testing.T) {
	repo := NewFlashcardRepo(openTestDB(t), logger.NewNop())

	created := seedCards(t, repo, "user-1", "Animals",
		[2]string{"dog", "pies"},
		[2]string{"cat", "kot"},
	)

	for _, row := range created {
		if row.ID == 0 {
			t.Fatalf("row %q kept a zero ID", row.OriginText)
		}
	}
	if created[0].ID == created[1].ID {
		t.Fatal("rows share an ID")
	}
}

func TestFlashcardGetByOwnerScopes(t *testing.T) {
	repo := NewFlashcardRepo(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	seedCards(t, repo, "user-1", "Animals", [2]string{"dog", "pies"})
	seedCards(t, repo, "user-2", "Animals", [2]string{"cat", "kot"})

	mine, err := repo.GetByOwner(ctx, nil, "user-1")
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if len(mine) != 1 || mine[0].OriginText != "dog" {
		t.Fatalf("GetByOwner = %+v, want only user-1's card", mine)
	}

	if none, _ := repo.GetByOwner(ctx, nil, ""); len(none) != 0 {
		t.Fatalf("GetByOwner with empty owner = %d rows, want 0", len(none))
	}
}

func TestFlashcardGetKeysByOwner(t *testing.T) {
	repo := NewFlashcardRepo(openTestDB(t), logger.NewNop())

	seedCards(t, repo, "user-1", "Animals",
		[2]string{"dog", "pies"},
		[2]string{"cat", "kot"},
	)

	keys, err := repo.GetKeysByOwner(context.Background(), nil, "user-1")
	if err != nil {
		t.Fatalf("GetKeysByOwner: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("keys = %d, want 2", len(keys))
	}
	if keys[0].OriginText == "" || keys[0].TranslateText == "" {
		t.Fatalf("key fields not populated: %+v", keys[0])
	}
}

func TestFlashcardGetByIDForOwner(t *testing.T) {
	repo := NewFlashcardRepo(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	created := seedCards(t, repo, "user-1", "Animals", [2]string{"dog", "pies"})

	found, err := repo.GetByIDForOwner(ctx, nil, "user-1", created[0].ID)
	if err != nil {
		t.Fatalf("GetByIDForOwner: %v", err)
	}
	if found == nil || found.OriginText != "dog" {
		t.Fatalf("found = %+v, want the seeded card", found)
	}

	// Another owner cannot reach it; no error, just absence.
	other, err := repo.GetByIDForOwner(ctx, nil, "user-2", created[0].ID)
	if err != nil {
		t.Fatalf("GetByIDForOwner: %v", err)
	}
	if other != nil {
		t.Fatalf("other = %+v, want nil for foreign owner", other)
	}
}

func TestFlashcardDeleteByOwnerAndCategory(t *testing.T) {
	repo := NewFlashcardRepo(openTestDB(t), logger.NewNop())
	ctx := context.Background()

	seedCards(t, repo, "user-1", "Animals",
		[2]string{"dog", "pies"},
		[2]string{"cat", "kot"},
	)
	seedCards(t, repo, "user-1", "Travel", [2]string{"train", "pociąg"})

	deleted, err := repo.DeleteByOwnerAndCategory(ctx, nil, "user-1", "Animals")
	if err != nil {
		t.Fatalf("DeleteByOwnerAndCategory: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	remaining, _ := repo.GetByOwner(ctx, nil, "user-1")
	if len(remaining) != 1 || remaining[0].Category != "Travel" {
		t.Fatalf("remaining = %+v, want only the Travel card", remaining)
	}
}
