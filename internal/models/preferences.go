package models

// Preferences are per-user learning settings surfaced to the frontend during
// onboarding.
type Preferences struct {
	UserID             int64 `db:"user_id" json:"user_id"`
	Visual             bool  `db:"visual" json:"visual"`
	ADHD               bool  `db:"adhd" json:"adhd"`
	DueDates           bool  `db:"due_dates" json:"due_dates"`
	OnboardingComplete bool  `db:"onboarding_complete" json:"onboarding_complete"`
}
