package services

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/akarwowski/lingocards-backend/internal/pkg/apperr"
	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/repos"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type ImportInput struct {
	Identity string
	Email    string
	Cards    []types.ImportableCard
}

type ImportResult struct {
	Success  bool   `json:"success"`
	Imported int    `json:"imported"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ImportService moves a guest's locally held cards into durable storage under
// a real identity. The per-card writes run concurrently and there is no
// rollback: a partial failure leaves the cards that did land, and re-running
// the import would duplicate them (durable IDs are freshly assigned). Callers
// must therefore clear the guest store only after a fully successful result.
// This service never touches guest storage itself.
type ImportService interface {
	Execute(ctx context.Context, input ImportInput) ImportResult
}

type importService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	cardRepo  repos.FlashcardRepo
	eventRepo repos.UserEventRepo
}

func NewImportService(baseLog *logger.Logger, userRepo repos.UserRepo, cardRepo repos.FlashcardRepo, eventRepo repos.UserEventRepo) ImportService {
	serviceLog := baseLog.With("service", "ImportService")
	return &importService{
		log:       serviceLog,
		userRepo:  userRepo,
		cardRepo:  cardRepo,
		eventRepo: eventRepo,
	}
}

func (s *importService) Execute(ctx context.Context, input ImportInput) ImportResult {
	if input.Identity == "" || input.Email == "" {
		return ImportResult{
			Success: false,
			Code:    apperr.CodeNotAuthenticated,
			Error:   "identity and email are required",
		}
	}

	if _, err := s.userRepo.EnsureExists(ctx, nil, input.Identity, input.Email); err != nil {
		s.log.Error("User provisioning failed", "identity", input.Identity, "error", err)
		return ImportResult{
			Success: false,
			Code:    apperr.CodeProvisioningFailed,
			Error:   "could not provision user record: " + err.Error(),
		}
	}

	if len(input.Cards) == 0 {
		return ImportResult{Success: true, Imported: 0}
	}

	var written atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for _, card := range input.Cards {
		row := card.ToFlashcard(input.Identity)
		g.Go(func() error {
			if _, err := s.cardRepo.Create(gctx, nil, []*types.Flashcard{row}); err != nil {
				return err
			}
			written.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("Card import partially failed",
			"identity", input.Identity,
			"written", written.Load(),
			"requested", len(input.Cards),
			"error", err)
		return ImportResult{
			Success:  false,
			Imported: int(written.Load()),
			Code:     apperr.CodePartialWriteFailure,
			Error:    err.Error(),
		}
	}

	s.recordImportEvent(ctx, input.Identity, len(input.Cards))
	return ImportResult{Success: true, Imported: len(input.Cards)}
}

func (s *importService) recordImportEvent(ctx context.Context, identity string, count int) {
	payload, err := json.Marshal(map[string]int{"count": count})
	if err != nil {
		return
	}
	event := &types.UserEvent{
		OwnerID:   identity,
		EventType: types.EventFlashcardsImported,
		Payload:   payload,
	}
	if _, err := s.eventRepo.Create(ctx, nil, []*types.UserEvent{event}); err != nil {
		s.log.Warn("Failed to record import event", "identity", identity, "error", err)
	}
}
