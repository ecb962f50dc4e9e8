package model

// PlanCounts holds the resource change counts the plan step exports.
// The counts arrive as opaque strings from the workflow environment and are
// rendered verbatim; this tool never re-derives them from the plan text.
type PlanCounts struct {
	Add     string
	Change  string
	Destroy string
}
