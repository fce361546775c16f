package editor

// DefaultUndoLimit bounds the number of snapshots kept.
const DefaultUndoLimit = 30

// History is a bounded stack of serialized scene snapshots. The last entry
// is the current state; the oldest is dropped once the limit is exceeded.
type History struct {
	limit   int
	entries []string
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &History{limit: limit}
}

func (h *History) Push(snapshot string) {
	h.entries = append(h.entries, snapshot)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Undo drops the current snapshot and returns the one before it. It is a
// no-op with fewer than two entries.
func (h *History) Undo() (string, bool) {
	if len(h.entries) < 2 {
		return "", false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Len() int   { return len(h.entries) }
func (h *History) Limit() int { return h.limit }

func (h *History) Clear() { h.entries = nil }
