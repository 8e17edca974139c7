package aptitude

const (
	MinScore = 1
	MaxScore = 5
)

// ValidScore reports whether n is an accepted response.
func ValidScore(n int) bool {
	return n >= MinScore && n <= MaxScore
}

// ScaleOption is one answer choice on the agreement scale.
type ScaleOption struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
}

// Scale returns the answer choices in display order, strongest agreement
// first.
func Scale() []ScaleOption {
	return []ScaleOption{
		{Score: 5, Label: "Strongly Agree", Hint: "This perfectly describes me"},
		{Score: 4, Label: "Agree", Hint: "This mostly describes me"},
		{Score: 3, Label: "Neutral", Hint: "I'm not sure about this"},
		{Score: 2, Label: "Disagree", Hint: "This doesn't describe me well"},
		{Score: 1, Label: "Strongly Disagree", Hint: "This doesn't describe me at all"},
	}
}
