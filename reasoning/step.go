package reasoning

// Phase names a point in the reasoning loop.
type Phase string

const (
	PhaseThought    Phase = "thought"
	PhaseRetry      Phase = "retry"
	PhaseValidation Phase = "validation"
	PhaseAnswer     Phase = "answer"
)

// Step is one observable event while a turn is being reasoned about.
type Step struct {
	Phase    Phase
	Round    int
	Attempt  int
	Text     string
	Answered bool  // PhaseValidation only
	Err      error // PhaseRetry only
}

// StepFunc receives steps synchronously, on the goroutine running Think.
type StepFunc func(Step)
