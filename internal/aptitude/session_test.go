package aptitude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitAll(t *testing.T, s *Session, scores []int) {
	t.Helper()
	for i, score := range scores {
		require.NoError(t, s.Submit(score), "submit #%d", i)
	}
}

func TestSession_StartsCollecting(t *testing.T) {
	s := NewSession(DefaultBank())

	assert.Equal(t, Collecting, s.State())
	assert.Equal(t, 0, s.Index())
	assert.Empty(t, s.Responses())
	assert.Equal(t, 0.0, s.Progress())

	q, err := s.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, Science, q.Category)

	_, ok := s.Result()
	assert.False(t, ok)
}

func TestSession_CompletesWithReferenceScenario(t *testing.T) {
	s := NewSession(DefaultBank())
	submitAll(t, s, []int{5, 1, 1, 1, 5, 1, 1, 1, 5, 1})

	assert.Equal(t, Completed, s.State())
	assert.Equal(t, 10, s.Index())
	assert.Equal(t, 1.0, s.Progress())

	r, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, Science, r.Category)
	assert.Equal(t, map[Category]int{Science: 15, Arts: 3, Commerce: 2, Vocational: 2}, r.Tally.Map())
	assert.Equal(t, []string{"Physics", "Chemistry", "Mathematics", "Biology"}, r.Info.Subjects)
}

func TestSession_EveryValidSequenceCompletes(t *testing.T) {
	b := DefaultBank()
	members := map[Category]bool{}
	for _, c := range b.Categories() {
		members[c] = true
	}

	// Walk a deterministic spread of sequences: each position cycles
	// through the scale at a different rate.
	for seed := 0; seed < 200; seed++ {
		scores := make([]int, b.Count())
		for i := range scores {
			scores[i] = MinScore + (seed*(i+1)+i)%MaxScore
		}

		s := NewSession(b)
		submitAll(t, s, scores)

		require.Equal(t, Completed, s.State(), "seed %d", seed)
		r, ok := s.Result()
		require.True(t, ok)
		assert.True(t, members[r.Category], "seed %d: %q not a member", seed, r.Category)
	}
}

func TestSession_SubmitInvalidScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
	}{
		{"zero", 0},
		{"six", 6},
		{"negative", -3},
		{"large", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(DefaultBank())
			require.NoError(t, s.Submit(4))

			err := s.Submit(tt.score)
			require.ErrorIs(t, err, ErrInvalidScore)

			assert.Equal(t, Collecting, s.State())
			assert.Equal(t, 1, s.Index())
			assert.Equal(t, []int{4}, s.Responses())
		})
	}
}

func TestSession_SubmitAfterCompletion(t *testing.T) {
	s := NewSession(DefaultBank())
	submitAll(t, s, []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2})
	before, _ := s.Result()

	err := s.Submit(3)
	require.ErrorIs(t, err, ErrInvalidState)

	after, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Len(t, s.Responses(), 10)
	assert.Equal(t, 10, s.Index())
}

func TestSession_CurrentQuestionAfterCompletion(t *testing.T) {
	s := NewSession(DefaultBank())
	submitAll(t, s, []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3})

	_, err := s.CurrentQuestion()
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestSession_Reset(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
	}{
		{"fresh", nil},
		{"midway", []int{5, 4, 3}},
		{"completed", []int{5, 4, 3, 2, 1, 5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(DefaultBank())
			submitAll(t, s, tt.scores)

			s.Reset()

			assert.Equal(t, Collecting, s.State())
			assert.Equal(t, 0, s.Index())
			assert.Empty(t, s.Responses())
			_, ok := s.Result()
			assert.False(t, ok)

			q, err := s.CurrentQuestion()
			require.NoError(t, err)
			first, _ := s.Bank().ItemAt(0)
			assert.Equal(t, first, q)
		})
	}
}

func TestSession_ReadOnlyOpsAreIdempotent(t *testing.T) {
	s := NewSession(DefaultBank())
	submitAll(t, s, []int{5, 5, 1})

	p1 := s.Progress()
	q1, err1 := s.CurrentQuestion()
	p2 := s.Progress()
	q2, err2 := s.CurrentQuestion()

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, p1, p2)
	assert.Equal(t, q1, q2)
	assert.InDelta(t, 0.3, p1, 1e-9)
	assert.Equal(t, 3, s.Index())
}

func TestSession_ResponsesIsACopy(t *testing.T) {
	s := NewSession(DefaultBank())
	submitAll(t, s, []int{5, 4})

	got := s.Responses()
	got[0] = 1

	assert.Equal(t, []int{5, 4}, s.Responses())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "collecting", Collecting.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "state(7)", State(7).String())
}
