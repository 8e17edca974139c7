package aptitude

import "fmt"

// State is the phase of an assessment session.
type State int

const (
	Collecting State = iota // Questions remain to be answered
	Completed               // All questions answered, result assigned
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is one respondent's run through a bank. It is owned by a single
// caller and is not safe for concurrent use.
type Session struct {
	bank      *Bank
	index     int
	responses []int
	result    *Result
}

// NewSession starts a session over b in the Collecting state.
func NewSession(b *Bank) *Session {
	return &Session{
		bank:      b,
		responses: make([]int, 0, b.Count()),
	}
}

// Bank returns the bank the session runs over.
func (s *Session) Bank() *Bank {
	return s.bank
}

// State returns the current phase.
func (s *Session) State() State {
	if s.result != nil {
		return Completed
	}
	return Collecting
}

// Index returns the number of answered questions, which is also the index
// of the current question while collecting.
func (s *Session) Index() int {
	return s.index
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.State() == Completed {
		return Question{}, fmt.Errorf("current question: session %s: %w", Completed, ErrInvalidState)
	}
	return s.bank.ItemAt(s.index)
}

// Submit records score for the current question and advances. Answering
// the last question computes the result and completes the session. On error
// the session is left unchanged.
func (s *Session) Submit(score int) error {
	if s.State() == Completed {
		return fmt.Errorf("submit: session %s: %w", Completed, ErrInvalidState)
	}
	if !ValidScore(score) {
		return fmt.Errorf("submit %d (want %d-%d): %w", score, MinScore, MaxScore, ErrInvalidScore)
	}

	responses := append(s.responses, score)
	if len(responses) < s.bank.Count() {
		s.responses = responses
		s.index++
		return nil
	}

	result, err := Recommend(s.bank, responses)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	s.responses = responses
	s.index++
	s.result = &result
	return nil
}

// Progress returns the fraction of questions answered, in [0, 1].
func (s *Session) Progress() float64 {
	if s.bank.Count() == 0 {
		return 0
	}
	return float64(s.index) / float64(s.bank.Count())
}

// Responses returns a copy of the scores submitted so far.
func (s *Session) Responses() []int {
	out := make([]int, len(s.responses))
	copy(out, s.responses)
	return out
}

// Result returns the recommendation once the session is completed.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	r := *s.result
	r.Tally = append(Tally(nil), r.Tally...)
	r.Info = cloneInfo(r.Info)
	return r, true
}

// Reset discards all responses and the result, returning to the first
// question.
func (s *Session) Reset() {
	s.index = 0
	s.responses = make([]int, 0, s.bank.Count())
	s.result = nil
}
