package aptitude

import (
	"errors"
	"fmt"
	"strings"
)

// Question is a single assessment statement tagged with the category it
// measures.
type Question struct {
	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"category" yaml:"category"`
}

// Bank is an immutable, ordered set of questions together with the
// canonical category order used for scoring.
type Bank struct {
	categories []Category
	infos      map[Category]Info
	questions  []Question
}

// NewBank builds a bank from category metadata (in canonical order) and
// questions (in presentation order). All structural problems are reported
// together.
func NewBank(categories []Info, questions []Question) (*Bank, error) {
	if err := validateBank(categories, questions); err != nil {
		return nil, err
	}

	b := &Bank{
		categories: make([]Category, 0, len(categories)),
		infos:      make(map[Category]Info, len(categories)),
		questions:  make([]Question, len(questions)),
	}
	for _, info := range categories {
		b.categories = append(b.categories, info.Category)
		b.infos[info.Category] = cloneInfo(info)
	}
	copy(b.questions, questions)
	return b, nil
}

// validateBank checks the bank definition and returns a combined error
// describing every problem found, or nil.
func validateBank(categories []Info, questions []Question) error {
	var errs []string

	if len(categories) == 0 {
		errs = append(errs, "no categories defined")
	}
	declared := make(map[Category]bool, len(categories))
	for _, info := range categories {
		if info.Category == "" {
			errs = append(errs, "category with empty id")
			continue
		}
		if declared[info.Category] {
			errs = append(errs, fmt.Sprintf("duplicate category %q", info.Category))
		}
		declared[info.Category] = true
	}

	if len(questions) == 0 {
		errs = append(errs, "no questions defined")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %d has empty text", i))
		}
		if !declared[q.Category] {
			errs = append(errs, fmt.Sprintf("question %d references undeclared category %q", i, q.Category))
		}
	}

	if len(errs) > 0 {
		return errors.New("invalid question bank:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}

// Count returns the number of questions in the bank.
func (b *Bank) Count() int {
	return len(b.questions)
}

// ItemAt returns the question at index i.
func (b *Bank) ItemAt(i int) (Question, error) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, fmt.Errorf("item %d of %d: %w", i, len(b.questions), ErrOutOfRange)
	}
	return b.questions[i], nil
}

// Questions returns a copy of all questions in presentation order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Categories returns the categories in canonical order.
func (b *Bank) Categories() []Category {
	out := make([]Category, len(b.categories))
	copy(out, b.categories)
	return out
}

// Info returns the presentation metadata for c.
func (b *Bank) Info(c Category) (Info, bool) {
	info, ok := b.infos[c]
	if !ok {
		return Info{}, false
	}
	return cloneInfo(info), true
}

// Infos returns metadata for every category in canonical order.
func (b *Bank) Infos() []Info {
	out := make([]Info, 0, len(b.categories))
	for _, c := range b.categories {
		out = append(out, cloneInfo(b.infos[c]))
	}
	return out
}

func cloneInfo(info Info) Info {
	info.Subjects = append([]string(nil), info.Subjects...)
	info.Careers = append([]string(nil), info.Careers...)
	return info
}

// defaultQuestions is the reference ten-item assessment.
var defaultQuestions = []Question{
	{Text: "I enjoy solving mathematical problems and working with numbers.", Category: Science},
	{Text: "I prefer reading literature and writing essays over solving equations.", Category: Arts},
	{Text: "I am interested in business, finance, and economics.", Category: Commerce},
	{Text: "I enjoy hands-on activities and working with tools or machinery.", Category: Vocational},
	{Text: "I like conducting experiments and understanding how things work.", Category: Science},
	{Text: "I enjoy creating art, music, or other creative expressions.", Category: Arts},
	{Text: "I am good at managing money and understanding market trends.", Category: Commerce},
	{Text: "I prefer practical skills over theoretical knowledge.", Category: Vocational},
	{Text: "I enjoy studying physics, chemistry, or biology.", Category: Science},
	{Text: "I like discussing social issues and human behavior.", Category: Arts},
}

// DefaultBank returns the reference bank: ten questions over the four
// default categories.
func DefaultBank() *Bank {
	b, err := NewBank(defaultInfos(), defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("default question bank: %v", err))
	}
	return b
}
