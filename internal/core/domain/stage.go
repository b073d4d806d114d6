package domain

// Stage is a deployment label for a model version. At most one non-archived
// version per model may occupy staging or production at a time.
type Stage string

const (
	StageNone       Stage = "none"
	StageStaging    Stage = "staging"
	StageProduction Stage = "production"
	StageLatest     Stage = "latest"
	StageArchived   Stage = "archived"
)

// ParseStage validates a raw stage value against the enumeration.
func ParseStage(raw string) (Stage, error) {
	switch Stage(raw) {
	case StageNone, StageStaging, StageProduction, StageLatest, StageArchived:
		return Stage(raw), nil
	}
	return "", ErrInvalidStage
}

// Assignable reports whether the stage may be written to a model version.
// StageLatest is a query alias for the highest-numbered version and is never
// stored.
func (s Stage) Assignable() bool {
	return s != StageLatest
}

// Exclusive reports whether the stage is subject to single-occupancy per
// model. Any number of versions may sit in none or archived.
func (s Stage) Exclusive() bool {
	return s == StageStaging || s == StageProduction
}
