package process

// Stats aggregates per-file diagnostic counts. Recoverable conditions are
// surfaced as counts, never as per-line errors.
type Stats struct {
	LinesProcessed  int
	LinesMalformed  int
	CharsUnresolved int
}

// Add accumulates another file's counts into s.
func (s *Stats) Add(o Stats) {
	s.LinesProcessed += o.LinesProcessed
	s.LinesMalformed += o.LinesMalformed
	s.CharsUnresolved += o.CharsUnresolved
}
