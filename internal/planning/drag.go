package planning

// Selection is a normalised date range; StartDate <= EndDate always holds.
type Selection struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewSelection orders two dates into a Selection.
func NewSelection(a, b string) Selection {
	return Selection{StartDate: minDate(a, b), EndDate: maxDate(a, b)}
}

// Contains reports whether date falls inside the selection. A nil selection contains nothing.
func (s *Selection) Contains(date string) bool {
	if s == nil {
		return false
	}
	return date >= s.StartDate && date <= s.EndDate
}

// SingleDay reports whether the selection covers one day, as a plain click does.
func (s Selection) SingleDay() bool {
	return s.StartDate == s.EndDate
}

// DragPhase is the lifecycle state of a drag gesture.
type DragPhase string

const (
	DragIdle     DragPhase = "idle"
	DragDragging DragPhase = "dragging"
	DragSelected DragPhase = "selected"
)

// Drag is the drag-select state machine. It is a value: every transition
// returns the next Drag and leaves the receiver untouched.
//
// The zero value is idle with no selection.
type Drag struct {
	Phase     DragPhase  `json:"phase"`
	Anchor    string     `json:"anchor,omitempty"`
	Selection *Selection `json:"selection,omitempty"`
}

func (d Drag) phase() DragPhase {
	if d.Phase == "" {
		return DragIdle
	}
	return d.Phase
}

// Dragging reports whether a gesture is in progress.
func (d Drag) Dragging() bool {
	return d.phase() == DragDragging
}

// Start begins a gesture on date from any phase. The selection is the single day.
func (d Drag) Start(date string) Drag {
	sel := NewSelection(date, date)
	return Drag{Phase: DragDragging, Anchor: date, Selection: &sel}
}

// Move extends the gesture to date. It is ignored unless a gesture is in progress.
// Dragging backwards is allowed; the selection is re-normalised.
func (d Drag) Move(date string) Drag {
	if !d.Dragging() {
		return d
	}
	sel := NewSelection(d.Anchor, date)
	return Drag{Phase: DragDragging, Anchor: d.Anchor, Selection: &sel}
}

// End completes the gesture and returns the final selection. ok is false when
// no gesture was in progress; the engine is then returned unchanged.
// A gesture that never moved yields a one-day selection; callers that must
// tell a click from a drag check Selection.SingleDay.
func (d Drag) End() (Drag, Selection, bool) {
	if !d.Dragging() || d.Selection == nil {
		return d, Selection{}, false
	}
	sel := *d.Selection
	return Drag{Phase: DragSelected, Selection: &sel}, sel, true
}

// Clear discards any gesture or selection.
func (d Drag) Clear() Drag {
	return Drag{Phase: DragIdle}
}
