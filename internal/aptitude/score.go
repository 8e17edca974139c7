package aptitude

import "fmt"

// CategoryScore is the accumulated score for one category.
type CategoryScore struct {
	Category Category `json:"category"`
	Score    int      `json:"score"`
}

// Tally holds per-category totals in the bank's canonical category order.
type Tally []CategoryScore

// Get returns the total for c, or 0 if c is not in the tally.
func (t Tally) Get(c Category) int {
	for _, cs := range t {
		if cs.Category == c {
			return cs.Score
		}
	}
	return 0
}

// Max returns the highest total in the tally, or 0 for an empty tally.
func (t Tally) Max() int {
	top := 0
	for i, cs := range t {
		if i == 0 || cs.Score > top {
			top = cs.Score
		}
	}
	return top
}

// Map returns the tally as a category-keyed map. Order is lost; use the
// Tally itself wherever order matters.
func (t Tally) Map() map[Category]int {
	m := make(map[Category]int, len(t))
	for _, cs := range t {
		m[cs.Category] = cs.Score
	}
	return m
}

// Result is the outcome of a completed assessment.
type Result struct {
	Category Category `json:"category"`
	Tally    Tally    `json:"tally"`
	Info     Info     `json:"info"`
}

// Score sums responses into per-category totals. responses must contain
// exactly one valid score per bank question, in bank order.
func Score(b *Bank, responses []int) (Tally, error) {
	if len(responses) != b.Count() {
		return nil, fmt.Errorf("scoring %d responses for %d questions: %w",
			len(responses), b.Count(), ErrIncompleteData)
	}

	tally := make(Tally, len(b.categories))
	index := make(map[Category]int, len(b.categories))
	for i, c := range b.categories {
		tally[i] = CategoryScore{Category: c}
		index[c] = i
	}

	for i, score := range responses {
		if !ValidScore(score) {
			return nil, fmt.Errorf("response %d is %d: %w", i, score, ErrInvalidScore)
		}
		tally[index[b.questions[i].Category]].Score += score
	}
	return tally, nil
}

// Select returns the first category, in tally order, whose total equals the
// maximum. An empty tally yields "".
func Select(t Tally) Category {
	if len(t) == 0 {
		return ""
	}
	top := t.Max()
	for _, cs := range t {
		if cs.Score == top {
			return cs.Category
		}
	}
	return ""
}

// Recommend scores responses and selects the recommended category together
// with its presentation metadata.
func Recommend(b *Bank, responses []int) (Result, error) {
	tally, err := Score(b, responses)
	if err != nil {
		return Result{}, err
	}
	c := Select(tally)
	// Every tally category comes from the bank, so the lookup cannot miss.
	info, _ := b.Info(c)
	return Result{Category: c, Tally: tally, Info: info}, nil
}
