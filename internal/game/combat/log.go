package combat

// Entry is one line of a combat log.
type Entry struct {
	Round  int
	Actor  string
	Action ActionType
	// Result is set for attacks and shots that were resolved.
	Result *Result
	// Err is set when the action was refused by a rule.
	Err       error
	Narrative string
}

// Log accumulates the entries of one combat. It is owned by the session that
// writes to it and is not safe for concurrent use.
type Log struct {
	entries []Entry
}

// NewLog returns an empty log.
func NewLog() *Log { return &Log{} }

// Append adds e to the log.
func (l *Log) Append(e Entry) { l.entries = append(l.entries, e) }

// Len returns the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// Entries returns a copy of every entry in order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Round returns the entries recorded for round n.
func (l *Log) Round(n int) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Round == n {
			out = append(out, e)
		}
	}
	return out
}

// Narrative returns the narrative lines of every entry in order.
func (l *Log) Narrative() []string {
	lines := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		lines = append(lines, e.Narrative)
	}
	return lines
}
