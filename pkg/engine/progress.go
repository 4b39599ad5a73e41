package engine

import "fmt"

// StepStatus describes a step relative to the cursor.
type StepStatus string

const (
	StepComplete StepStatus = "complete"
	StepActive   StepStatus = "active"
	StepPending  StepStatus = "pending"
)

// StepProgress is one entry of the progress indicator.
type StepProgress struct {
	Index  int        `json:"index"`
	Number int        `json:"number"`
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status StepStatus `json:"status"`
}

// StatusOf derives the status of step i for a cursor position.
func StatusOf(current, i int) StepStatus {
	switch {
	case current > i:
		return StepComplete
	case current == i:
		return StepActive
	default:
		return StepPending
	}
}

// Progress derives the indicator entries from the cursor. It holds no state of
// its own.
func (e *Engine) Progress() []StepProgress {
	out := make([]StepProgress, len(e.steps))
	for i, step := range e.steps {
		out[i] = StepProgress{
			Index:  i,
			Number: i + 1,
			ID:     step.ID,
			Title:  step.Title,
			Status: StatusOf(e.current, i),
		}
	}
	return out
}

// Indicator returns the compact "Step i of n" label.
func (e *Engine) Indicator() string {
	return fmt.Sprintf("Step %d of %d", e.current+1, len(e.steps))
}
