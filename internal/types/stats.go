package types

// CategoryProgress is derived per stats request, never persisted.
type CategoryProgress struct {
	Name                string  `json:"name"`
	Total               int     `json:"total"`
	Mastered            int     `json:"mastered"`
	InProgress          int     `json:"in_progress"`
	Untouched           int     `json:"untouched"`
	AverageMasteryLevel float64 `json:"average_mastery_level"`
}

// CategorySummary is the raw per-owner aggregation the progress service
// builds its stats from.
type CategorySummary struct {
	TotalFlashcards      int                `json:"total_flashcards"`
	MasteredFlashcards   int                `json:"mastered_flashcards"`
	InProgressFlashcards int                `json:"in_progress_flashcards"`
	UntouchedFlashcards  int                `json:"untouched_flashcards"`
	Categories           []CategoryProgress `json:"categories"`
}

// UserProgressStats is the aggregate the UI consumes.
type UserProgressStats struct {
	CategorySummary
	UserLevel        int `json:"user_level"`
	ExperiencePoints int `json:"experience_points"`
	NextLevelPoints  int `json:"next_level_points"`
	DailyGoal        int `json:"daily_goal"`
}
