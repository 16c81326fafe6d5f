package services

import "github.com/mrlokans/envport/internal/entities"

// OutcomeStatus describes what happened to one import item.
type OutcomeStatus string

const (
	OutcomeCommitted     OutcomeStatus = "committed"
	OutcomeRepaired      OutcomeStatus = "repaired"
	OutcomeSkippedTooNew OutcomeStatus = "skipped_too_new"
	OutcomeIgnored       OutcomeStatus = "ignored"
	OutcomeFailed        OutcomeStatus = "failed"
)

// ItemOutcome is the result of processing a single import item.
// Outcomes are reported in document order.
type ItemOutcome struct {
	Index  int                     `json:"index"`
	Type   entities.ImportItemType `json:"type"`
	UUID   string                  `json:"uuid,omitempty"`
	Name   string                  `json:"name,omitempty"`
	Status OutcomeStatus           `json:"status"`
	Err    error                   `json:"-"`
}

// Committed reports whether the item reached the store.
func (o ItemOutcome) Committed() bool {
	return o.Status == OutcomeCommitted || o.Status == OutcomeRepaired
}

// ImportSummary counts outcomes by status.
type ImportSummary struct {
	Committed int `json:"committed"`
	Repaired  int `json:"repaired"`
	Skipped   int `json:"skipped"`
	Ignored   int `json:"ignored"`
	Failed    int `json:"failed"`
}

// Summarize tallies a list of outcomes.
func Summarize(outcomes []ItemOutcome) ImportSummary {
	var s ImportSummary
	for _, o := range outcomes {
		switch o.Status {
		case OutcomeCommitted:
			s.Committed++
		case OutcomeRepaired:
			s.Repaired++
		case OutcomeSkippedTooNew:
			s.Skipped++
		case OutcomeIgnored:
			s.Ignored++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}
