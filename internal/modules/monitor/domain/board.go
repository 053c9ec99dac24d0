package domain

// Board is the dashboard's session state: the loaded list plus the current
// selection. Reducers take and return Board by value and never alias the
// incoming slice, so a previous Board stays valid after any transition.
type Board struct {
	Sessions   []Session
	SelectedID string
}

// ReplaceAll discards the current list and installs a new one. Selection
// jumps to the first critical session in list order, or clears when the
// batch contains none. This is the only bulk-load path; nothing merges.
func (b Board) ReplaceAll(sessions []Session) Board {
	b.Sessions = make([]Session, len(sessions))
	copy(b.Sessions, sessions)
	b.SelectedID = ""
	for _, s := range b.Sessions {
		if s.Status == StatusCritical {
			b.SelectedID = s.SessionID
			break
		}
	}
	return b
}

// Select sets the viewed session. Any id is accepted; Selected simply
// reports nothing when the id is not in the list.
func (b Board) Select(sessionID string) Board {
	b.SelectedID = sessionID
	return b
}

// Selected returns the currently viewed session, if it exists in the list.
func (b Board) Selected() (Session, bool) {
	if b.SelectedID == "" {
		return Session{}, false
	}
	for _, s := range b.Sessions {
		if s.SessionID == b.SelectedID {
			return s, true
		}
	}
	return Session{}, false
}

// Flag forces a session's status to critical. Reapplying is a no-op.
func (b Board) Flag(sessionID string) Board {
	return b.rewrite(sessionID, func(s Session) Session {
		s.Status = StatusCritical
		return s
	})
}

// Acknowledge resets a session to normal and clears its anomaly category.
// Reapplying is a no-op.
func (b Board) Acknowledge(sessionID string) Board {
	return b.rewrite(sessionID, func(s Session) Session {
		s.Status = StatusNormal
		s.Category = CategoryNone
		return s
	})
}

func (b Board) rewrite(sessionID string, fn func(Session) Session) Board {
	out := make([]Session, len(b.Sessions))
	copy(out, b.Sessions)
	for i := range out {
		if out[i].SessionID == sessionID {
			out[i] = fn(out[i])
		}
	}
	b.Sessions = out
	return b
}

// ByCategory returns the sessions carrying the given category.
func (b Board) ByCategory(cat Category) []Session {
	var out []Session
	for _, s := range b.Sessions {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// Anomalous returns every session with any anomaly category set.
func (b Board) Anomalous() []Session {
	var out []Session
	for _, s := range b.Sessions {
		if s.Anomalous() {
			out = append(out, s)
		}
	}
	return out
}

// StatusCounts tallies sessions per severity bucket.
func (b Board) StatusCounts() StatusCounts {
	var c StatusCounts
	for _, s := range b.Sessions {
		switch s.Status {
		case StatusCritical:
			c.Critical++
		case StatusWarning:
			c.Warning++
		default:
			c.Normal++
		}
	}
	return c
}

// ActiveCount counts sessions not escalated to critical, the dashboard's
// notion of "still serving".
func (b Board) ActiveCount() int {
	n := 0
	for _, s := range b.Sessions {
		if s.Status != StatusCritical {
			n++
		}
	}
	return n
}

// Aggregate recomputes the statistics row from the current list.
func (b Board) Aggregate() Stats {
	return Aggregate(b.Sessions)
}
