package domain

// Application status constants
const (
	ApplicationStatusApplied    = "applied"
	ApplicationStatusNotApplied = "not_applied"
)

// ValidApplicationStatus reports whether s is one of the allowed application statuses.
func ValidApplicationStatus(s string) bool {
	return s == ApplicationStatusApplied || s == ApplicationStatusNotApplied
}

// Pipeline stage names, used in logs and error messages
const (
	StageValidating  = "validating"
	StageFetching    = "fetching"
	StageScoring     = "scoring"
	StageReconciling = "reconciling"
)
