package aptitude

import (
	"fmt"
	"strings"
)

// Category is an academic stream a respondent can be matched to.
type Category string

const (
	Science    Category = "science"
	Arts       Category = "arts"
	Commerce   Category = "commerce"
	Vocational Category = "vocational"
)

// DefaultCategories returns the reference categories in canonical order.
// Ties in the tally resolve to the earliest category in this order.
func DefaultCategories() []Category {
	return []Category{Science, Arts, Commerce, Vocational}
}

// ParseCategory parses a category name case-insensitively against the
// reference set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DefaultCategories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Info is the presentation metadata for a category. It plays no part in
// scoring.
type Info struct {
	Category    Category `json:"category" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Subjects    []string `json:"subjects" yaml:"subjects"`
	Careers     []string `json:"careers" yaml:"careers"`
}

// DefaultInfo returns the reference metadata for c. Unknown categories get
// an Info carrying only the category name as title.
func DefaultInfo(c Category) Info {
	switch c {
	case Science:
		return Info{
			Category:    Science,
			Title:       "Science Stream",
			Description: "Perfect for analytical minds who love problem-solving and research.",
			Subjects:    []string{"Physics", "Chemistry", "Mathematics", "Biology"},
			Careers:     []string{"Engineering", "Medicine", "Research", "Technology"},
		}
	case Arts:
		return Info{
			Category:    Arts,
			Title:       "Arts/Humanities Stream",
			Description: "Ideal for creative and socially aware individuals.",
			Subjects:    []string{"History", "Literature", "Psychology", "Political Science"},
			Careers:     []string{"Law", "Journalism", "Social Work", "Teaching"},
		}
	case Commerce:
		return Info{
			Category:    Commerce,
			Title:       "Commerce Stream",
			Description: "Great for business-minded individuals with numerical aptitude.",
			Subjects:    []string{"Accountancy", "Business Studies", "Economics", "Mathematics"},
			Careers:     []string{"CA", "Banking", "Marketing", "Business Management"},
		}
	case Vocational:
		return Info{
			Category:    Vocational,
			Title:       "Vocational Training",
			Description: "Perfect for hands-on learners who prefer practical skills.",
			Subjects:    []string{"IT", "Hospitality", "Healthcare", "Automotive"},
			Careers:     []string{"Technical Jobs", "Skilled Trades", "Entrepreneurship", "Service Industry"},
		}
	default:
		return Info{Category: c, Title: string(c)}
	}
}

// defaultInfos returns DefaultInfo for every reference category in
// canonical order.
func defaultInfos() []Info {
	cats := DefaultCategories()
	infos := make([]Info, 0, len(cats))
	for _, c := range cats {
		infos = append(infos, DefaultInfo(c))
	}
	return infos
}
