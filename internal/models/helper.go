package models

// AllModels lists every table for auto-migration.
func AllModels() []any {
	return []any{
		&Tag{},
		&Material{},
		&Question{},
		&Assessment{},
		&AssessmentQuestion{},
		&MatchAttempt{},
	}
}
