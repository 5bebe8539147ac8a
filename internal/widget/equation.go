package widget

const EquationKey = "equations"

type Step struct {
	Expression string
	Annotation string
}

// StepView is a step as it should be shown. Annotation is empty for steps
// the cursor has not reached.
type StepView struct {
	Expression string
	Annotation string
	Visible    bool
	Current    bool
}

var balanceSteps = []Step{
	{Expression: "2x + 5 = 13", Annotation: "Our starting equation"},
	{Expression: "2x + 5 - 5 = 13 - 5", Annotation: "Subtract 5 from both sides"},
	{Expression: "2x = 8", Annotation: "Simplify"},
	{Expression: "2x ÷ 2 = 8 ÷ 2", Annotation: "Divide both sides by 2"},
	{Expression: "x = 4", Annotation: "Solution!"},
}

// EquationSteps reveals a worked solution one step at a time.
type EquationSteps struct {
	steps  []Step
	cursor int
}

func NewEquationSteps() EquationSteps {
	return NewEquationStepsFrom(balanceSteps)
}

func NewEquationStepsFrom(steps []Step) EquationSteps {
	return EquationSteps{steps: append([]Step(nil), steps...)}
}

func (e EquationSteps) Key() string { return EquationKey }

func (e EquationSteps) Len() int { return len(e.steps) }

func (e EquationSteps) Cursor() int { return e.cursor }

func (e EquationSteps) Next() EquationSteps { return e.SetCursor(e.cursor + 1) }

func (e EquationSteps) Prev() EquationSteps { return e.SetCursor(e.cursor - 1) }

func (e EquationSteps) SetCursor(i int) EquationSteps {
	if len(e.steps) == 0 {
		e.cursor = 0
		return e
	}
	e.cursor = clampInt(i, 0, len(e.steps)-1)
	return e
}

func (e EquationSteps) AtStart() bool { return e.cursor == 0 }

func (e EquationSteps) AtEnd() bool { return len(e.steps) == 0 || e.cursor == len(e.steps)-1 }

func (e EquationSteps) Revealed() []StepView {
	out := make([]StepView, len(e.steps))
	for i, s := range e.steps {
		v := StepView{Expression: s.Expression, Visible: i <= e.cursor, Current: i == e.cursor}
		if v.Visible {
			v.Annotation = s.Annotation
		}
		out[i] = v
	}
	return out
}

func (e EquationSteps) Controls() []Control {
	return []Control{{Label: "Step", Value: float64(e.cursor), Min: 0, Max: float64(max(0, len(e.steps)-1)), Step: 1}}
}

// Nudge only ever moves the cursor by one, whatever the step count asked for.
func (e EquationSteps) Nudge(control, steps int) Model {
	if control != 0 {
		return e
	}
	switch {
	case steps > 0:
		return e.Next()
	case steps < 0:
		return e.Prev()
	}
	return e
}

func (e EquationSteps) Reset() Model { return e.SetCursor(0) }
