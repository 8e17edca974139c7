package aptitude

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()

	require.Equal(t, 10, b.Count())
	assert.Equal(t, DefaultCategories(), b.Categories())

	want := []Category{
		Science, Arts, Commerce, Vocational,
		Science, Arts, Commerce, Vocational,
		Science, Arts,
	}
	for i, c := range want {
		q, err := b.ItemAt(i)
		require.NoError(t, err)
		assert.Equal(t, c, q.Category, "item %d", i)
		assert.NotEmpty(t, q.Text)
	}
}

func TestBank_ItemAtOutOfRange(t *testing.T) {
	b := DefaultBank()
	for _, i := range []int{-1, 10, 42} {
		_, err := b.ItemAt(i)
		assert.ErrorIs(t, err, ErrOutOfRange, "index %d", i)
	}
}

func TestBank_InfoLookup(t *testing.T) {
	b := DefaultBank()

	info, ok := b.Info(Commerce)
	require.True(t, ok)
	assert.Equal(t, "Commerce Stream", info.Title)
	assert.Contains(t, info.Careers, "Banking")

	_, ok = b.Info(Category("music"))
	assert.False(t, ok)

	infos := b.Infos()
	require.Len(t, infos, 4)
	assert.Equal(t, Vocational, infos[3].Category)
}

func TestBank_AccessorsReturnCopies(t *testing.T) {
	b := DefaultBank()

	qs := b.Questions()
	qs[0].Text = "changed"
	cats := b.Categories()
	cats[0] = Vocational
	info, _ := b.Info(Science)
	info.Subjects[0] = "Astrology"

	q, _ := b.ItemAt(0)
	assert.NotEqual(t, "changed", q.Text)
	assert.Equal(t, Science, b.Categories()[0])
	again, _ := b.Info(Science)
	assert.Equal(t, "Physics", again.Subjects[0])
}

func TestNewBank_Validation(t *testing.T) {
	sci := Info{Category: Science, Title: "Science"}
	arts := Info{Category: Arts, Title: "Arts"}

	tests := []struct {
		name       string
		categories []Info
		questions  []Question
		wantErr    []string
	}{
		{
			name:       "no categories",
			categories: nil,
			questions:  []Question{{Text: "x", Category: Science}},
			wantErr:    []string{"no categories", "undeclared category"},
		},
		{
			name:       "duplicate category",
			categories: []Info{sci, sci},
			questions:  []Question{{Text: "x", Category: Science}},
			wantErr:    []string{"duplicate category \"science\""},
		},
		{
			name:       "no questions",
			categories: []Info{sci},
			wantErr:    []string{"no questions"},
		},
		{
			name:       "blank text",
			categories: []Info{sci},
			questions:  []Question{{Text: "  ", Category: Science}},
			wantErr:    []string{"question 0 has empty text"},
		},
		{
			name:       "undeclared category",
			categories: []Info{sci, arts},
			questions:  []Question{{Text: "ok", Category: Science}, {Text: "x", Category: Commerce}},
			wantErr:    []string{"question 1 references undeclared category \"commerce\""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBank(tt.categories, tt.questions)
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestNewBank_CustomCategoryOrderDrivesTieBreak(t *testing.T) {
	b, err := NewBank(
		[]Info{{Category: Arts}, {Category: Science}},
		[]Question{{Text: "a", Category: Science}, {Text: "b", Category: Arts}},
	)
	require.NoError(t, err)

	r, err := Recommend(b, []int{4, 4})
	require.NoError(t, err)
	assert.Equal(t, Arts, r.Category)
}

const testBankYAML = `
categories:
  - id: design
    title: Design Stream
    description: For visual thinkers.
    subjects: [Drawing, Typography]
    careers: [Architect, Illustrator]
  - id: science
    title: Science Stream
questions:
  - text: I sketch in my free time.
    category: design
  - text: I like lab work.
    category: science
  - text: I notice fonts.
    category: design
`

func TestLoadBank(t *testing.T) {
	b, err := LoadBank(strings.NewReader(testBankYAML))
	require.NoError(t, err)

	assert.Equal(t, 3, b.Count())
	assert.Equal(t, []Category{"design", Science}, b.Categories())

	info, ok := b.Info("design")
	require.True(t, ok)
	assert.Equal(t, "Design Stream", info.Title)
	assert.Equal(t, []string{"Architect", "Illustrator"}, info.Careers)

	r, err := Recommend(b, []int{2, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, Category("design"), r.Category)
}

func TestLoadBank_RejectsUnknownFields(t *testing.T) {
	_, err := LoadBank(strings.NewReader("categories: []\nquestionz: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode bank")
}

func TestLoadBankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testBankYAML), 0o644))

	b, err := LoadBankFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Count())

	_, err = LoadBankFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Commerce ")
	require.NoError(t, err)
	assert.Equal(t, Commerce, c)

	_, err = ParseCategory("music")
	require.Error(t, err)
}

func TestScale(t *testing.T) {
	opts := Scale()
	require.Len(t, opts, 5)
	assert.Equal(t, MaxScore, opts[0].Score)
	assert.Equal(t, MinScore, opts[4].Score)
	for _, o := range opts {
		assert.True(t, ValidScore(o.Score))
	}
	assert.False(t, ValidScore(0))
	assert.False(t, ValidScore(6))
}
