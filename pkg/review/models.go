package review

import "time"

// Run records one invocation of the engine and its aggregate counts.
type Run struct {
	ID              int64
	StartedAt       time.Time
	FinishedAt      time.Time
	LinesProcessed  int
	LinesMalformed  int
	CharsUnresolved int
}

// FlaggedLine is one line worth a maintainer's attention.
type FlaggedLine struct {
	ID      int64
	RunID   int64
	File    string
	LineNo  int
	Reason  string
	Content string
}
