package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/repos"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

const (
	masteredCardsPerLevel = 10
	pointsPerMasteredCard = 50
	pointsPerLevel        = 500
	defaultDailyGoal      = 10
)

// StatsProvider yields the raw per-category counts for an owner. The default
// implementation sits on the flashcard and progress repos; anything that can
// count cards per category can stand in.
type StatsProvider interface {
	CategoryStats(ctx context.Context, ownerID string) (types.CategorySummary, error)
}

// ProgressService derives the stats shown in the UI. Pure aggregation over
// its collaborators, no mutation, safe to call concurrently.
type ProgressService interface {
	UserStats(ctx context.Context, identity string) (types.UserProgressStats, error)
}

type progressService struct {
	log      *logger.Logger
	stats    StatsProvider
	userRepo repos.UserRepo
}

func NewProgressService(baseLog *logger.Logger, stats StatsProvider, userRepo repos.UserRepo) ProgressService {
	serviceLog := baseLog.With("service", "ProgressService")
	return &progressService{log: serviceLog, stats: stats, userRepo: userRepo}
}

func (s *progressService) UserStats(ctx context.Context, identity string) (types.UserProgressStats, error) {
	var summary types.CategorySummary
	var dailyGoal int

	// Both reads are independent, fetch them together.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.stats.CategoryStats(gctx, identity)
		return err
	})
	g.Go(func() error {
		var err error
		dailyGoal, err = s.lookupDailyGoal(gctx, identity)
		return err
	})
	if err := g.Wait(); err != nil {
		return types.UserProgressStats{}, err
	}

	level := summary.MasteredFlashcards/masteredCardsPerLevel + 1
	if level < 1 {
		level = 1
	}

	return types.UserProgressStats{
		CategorySummary:  summary,
		UserLevel:        level,
		ExperiencePoints: summary.MasteredFlashcards * pointsPerMasteredCard,
		NextLevelPoints:  level * pointsPerLevel,
		DailyGoal:        dailyGoal,
	}, nil
}

func (s *progressService) lookupDailyGoal(ctx context.Context, identity string) (int, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []string{identity})
	if err != nil {
		return 0, err
	}
	if len(users) == 0 || users[0].DailyGoal <= 0 {
		return defaultDailyGoal, nil
	}
	return users[0].DailyGoal, nil
}

// repoStatsProvider computes the category summary from the durable rows.
type repoStatsProvider struct {
	log          *logger.Logger
	cardRepo     repos.FlashcardRepo
	progressRepo repos.ProgressRepo
}

func NewRepoStatsProvider(baseLog *logger.Logger, cardRepo repos.FlashcardRepo, progressRepo repos.ProgressRepo) StatsProvider {
	providerLog := baseLog.With("service", "RepoStatsProvider")
	return &repoStatsProvider{log: providerLog, cardRepo: cardRepo, progressRepo: progressRepo}
}

func (p *repoStatsProvider) CategoryStats(ctx context.Context, ownerID string) (types.CategorySummary, error) {
	var cards []*types.Flashcard
	var records []*types.ProgressRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = p.cardRepo.GetByOwner(gctx, nil, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = p.progressRepo.GetByOwner(gctx, nil, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return types.CategorySummary{}, err
	}

	recordByCard := make(map[uint]*types.ProgressRecord, len(records))
	for _, rec := range records {
		recordByCard[rec.FlashcardID] = rec
	}

	perCategory := map[string]*types.CategoryProgress{}
	masterySum := map[string]float64{}
	var summary types.CategorySummary

	for _, card := range cards {
		cp := perCategory[card.Category]
		if cp == nil {
			cp = &types.CategoryProgress{Name: card.Category}
			perCategory[card.Category] = cp
		}
		cp.Total++
		summary.TotalFlashcards++

		rec, reviewed := recordByCard[card.ID]
		switch {
		case !reviewed:
			cp.Untouched++
			summary.UntouchedFlashcards++
		case rec.Mastered():
			cp.Mastered++
			summary.MasteredFlashcards++
			masterySum[card.Category] += float64(rec.MasteryLevel)
		default:
			cp.InProgress++
			summary.InProgressFlashcards++
			masterySum[card.Category] += float64(rec.MasteryLevel)
		}
	}

	names := make([]string, 0, len(perCategory))
	for name := range perCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	summary.Categories = make([]types.CategoryProgress, 0, len(names))
	for _, name := range names {
		cp := perCategory[name]
		if cp.Total > 0 {
			cp.AverageMasteryLevel = masterySum[name] / float64(cp.Total)
		}
		summary.Categories = append(summary.Categories, *cp)
	}
	return summary, nil
}
