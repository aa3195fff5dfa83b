package model

import "time"

// ChangeSetSummary is one header line of a changes listing.
type ChangeSetSummary struct {
	Number int
	User   string
	Client string
	Date   time.Time
}

type ChangesList struct {
	Changes []*ChangeSetSummary

	// Truncated is set when a malformed header stopped the parse before the end of the output.
	Truncated bool
}
