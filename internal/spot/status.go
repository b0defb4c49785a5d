package spot

// TaskFacts are the structural observations about a task block that decide its status.
type TaskFacts struct {
	// HasStatusPanel is true when the element right after the task's instruction table
	// is a submission panel.
	HasStatusPanel bool
	// HasScoreRow is true when that panel has a "Nilai" row.
	HasScoreRow bool
}

// DeriveTaskStatus maps the structure around a task to its status. A score row without a
// panel cannot happen since the row is read from the panel.
func DeriveTaskStatus(facts TaskFacts) TaskStatus {
	switch {
	case facts.HasStatusPanel && facts.HasScoreRow:
		return TaskGraded
	case facts.HasStatusPanel:
		return TaskSubmitted
	default:
		return TaskNotSubmitted
	}
}

// DeriveAccessibility decides whether a topic is open to the student. The access link is
// authoritative, the portal shows no other reliable marker.
func DeriveAccessibility(hasAccessLink bool) bool {
	return hasAccessLink
}
