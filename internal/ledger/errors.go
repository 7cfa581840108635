package ledger

import "fmt"

// ValidationError is a caller input error, reported before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ReconciliationError means the invoice total does not match collections plus
// dues within tolerance. It blocks the entire write; no rows are persisted.
type ReconciliationError struct {
	Total           float64
	CollectionTotal float64
	DueTotal        float64
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("Total (%.2f) must equal Collections (%.2f) + Dues (%.2f).",
		e.Total, e.CollectionTotal, e.DueTotal)
}
