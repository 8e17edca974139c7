package aptitude

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_ReferenceScenario(t *testing.T) {
	b := DefaultBank()
	responses := []int{5, 1, 1, 1, 5, 1, 1, 1, 5, 1}

	tally, err := Score(b, responses)
	require.NoError(t, err)

	assert.Equal(t, Tally{
		{Category: Science, Score: 15},
		{Category: Arts, Score: 3},
		{Category: Commerce, Score: 2},
		{Category: Vocational, Score: 2},
	}, tally)
	assert.Equal(t, Science, Select(tally))
}

func TestScore_IncompleteData(t *testing.T) {
	b := DefaultBank()

	tests := []struct {
		name      string
		responses []int
	}{
		{"empty", nil},
		{"one short", []int{3, 3, 3, 3, 3, 3, 3, 3, 3}},
		{"one long", []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(b, tt.responses)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncompleteData), "got %v", err)
		})
	}
}

func TestScore_RejectsOutOfRangeResponse(t *testing.T) {
	b := DefaultBank()
	responses := []int{3, 3, 3, 3, 0, 3, 3, 3, 3, 3}

	_, err := Score(b, responses)
	require.ErrorIs(t, err, ErrInvalidScore)
}

func TestSelect_TieBreakCanonicalOrder(t *testing.T) {
	tests := []struct {
		name  string
		tally Tally
		want  Category
	}{
		{
			name: "all equal picks first",
			tally: Tally{
				{Science, 10}, {Arts, 10}, {Commerce, 10}, {Vocational, 10},
			},
			want: Science,
		},
		{
			name: "arts and vocational tie",
			tally: Tally{
				{Science, 3}, {Arts, 12}, {Commerce, 4}, {Vocational, 12},
			},
			want: Arts,
		},
		{
			name: "commerce and vocational tie",
			tally: Tally{
				{Science, 1}, {Arts, 2}, {Commerce, 9}, {Vocational, 9},
			},
			want: Commerce,
		},
		{
			name: "order follows tally not name",
			tally: Tally{
				{Vocational, 7}, {Commerce, 7}, {Arts, 1}, {Science, 7},
			},
			want: Vocational,
		},
		{
			name:  "empty",
			tally: nil,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.tally))
		})
	}
}

func TestRecommend_TieIsDeterministic(t *testing.T) {
	b := DefaultBank()
	// Science gets 1+1+1 = 3, commerce 2+1 = 3, vocational 1+2 = 3,
	// arts 1+1+1 = 3. A full tie must always resolve to science.
	responses := []int{1, 1, 2, 1, 1, 1, 1, 2, 1, 1}

	first, err := Recommend(b, responses)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		r, err := Recommend(b, responses)
		require.NoError(t, err)
		assert.Equal(t, first.Category, r.Category)
	}
	assert.Equal(t, Science, first.Category)
	assert.Equal(t, "Science Stream", first.Info.Title)
}

func TestRecommend_TwoWayTieAtMaximum(t *testing.T) {
	b := DefaultBank()
	// science 3, arts 12, commerce 10, vocational 10: the tie below the
	// maximum does not matter.
	responses := []int{1, 5, 5, 5, 1, 5, 5, 5, 1, 2}

	r, err := Recommend(b, responses)
	require.NoError(t, err)
	assert.Equal(t, Arts, r.Category)
	assert.Equal(t, 10, r.Tally.Get(Commerce))
	assert.Equal(t, 10, r.Tally.Get(Vocational))

	// commerce and vocational both reach the maximum when arts is low.
	responses = []int{1, 1, 5, 5, 1, 1, 5, 5, 1, 1}
	r, err = Recommend(b, responses)
	require.NoError(t, err)
	assert.Equal(t, Commerce, r.Category)
}

func TestTally_Map(t *testing.T) {
	tally := Tally{{Science, 4}, {Arts, 2}}
	assert.Equal(t, map[Category]int{Science: 4, Arts: 2}, tally.Map())
	assert.Equal(t, 0, tally.Get(Commerce))
	assert.Equal(t, 4, tally.Max())
}
