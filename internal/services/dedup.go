package services

import (
	"strings"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type DedupService interface {
	// FilterDuplicates drops candidates whose origin/translation pair is
	// already known, or already seen earlier in the same batch. Order and
	// contents of the surviving candidates are untouched.
	FilterDuplicates(candidates []types.ImportableCard, existing []types.CardKey) (unique []types.ImportableCard, duplicateCount int)
}

type dedupService struct {
	log *logger.Logger
}

func NewDedupService(baseLog *logger.Logger) DedupService {
	serviceLog := baseLog.With("service", "DedupService")
	return &dedupService{log: serviceLog}
}

func (s *dedupService) FilterDuplicates(candidates []types.ImportableCard, existing []types.CardKey) ([]types.ImportableCard, int) {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, key := range existing {
		seen[normalizeCardKey(key.OriginText, key.TranslateText)] = struct{}{}
	}

	unique := make([]types.ImportableCard, 0, len(candidates))
	duplicates := 0
	for _, c := range candidates {
		key := normalizeCardKey(c.OriginText, c.TranslateText)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}

	if duplicates > 0 {
		s.log.Debug("Filtered duplicate candidates", "duplicates", duplicates, "unique", len(unique))
	}
	return unique, duplicates
}

// normalizeCardKey joins the trimmed, lowercased pair with a separator that
// cannot appear in either side, so "ab"+"c" and "a"+"bc" never collide.
func normalizeCardKey(origin, translation string) string {
	return strings.ToLower(strings.TrimSpace(origin)) + "\x00" + strings.ToLower(strings.TrimSpace(translation))
}
