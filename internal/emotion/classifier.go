package emotion

import (
	"strings"
)

// NeutralIntensity is reported when the text carries no keyword signal.
const NeutralIntensity = 0.5

// Result is the outcome of classifying one piece of text.
type Result struct {
	Primary   Category         `json:"primary"`
	Intensity float64          `json:"intensity"`
	Mixed     bool             `json:"mixed"`
	Scores    map[Category]int `json:"scores"`
	// Significant lists every category with a non-zero score, in priority order.
	Significant []Category `json:"significant,omitempty"`
}

// Classifier scores text against a compiled lexicon.
// A Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	matchers map[Category][]matcher
}

// NewClassifier compiles lex into a classifier. A nil lexicon uses DefaultLexicon.
// Categories outside the closed set are ignored.
func NewClassifier(lex Lexicon) *Classifier {
	if lex == nil {
		lex = DefaultLexicon
	}
	return &Classifier{matchers: lex.compile()}
}

var defaultClassifier = NewClassifier(DefaultLexicon)

// Classify runs the default classifier over text.
func Classify(text string) Result {
	return defaultClassifier.Classify(text)
}

// Classify scores text. It never fails: empty or zero-signal text yields
// the default category at NeutralIntensity.
func (c *Classifier) Classify(text string) Result {
	normalized := strings.ToLower(text)

	scores := make(map[Category]int, len(Priority))
	total := 0
	for _, cat := range Priority {
		n := 0
		if strings.TrimSpace(normalized) != "" {
			for _, m := range c.matchers[cat] {
				n += len(m.re.FindAllStringIndex(normalized, -1))
			}
		}
		scores[cat] = n
		total += n
	}

	res := Result{
		Primary:   Default,
		Intensity: NeutralIntensity,
		Scores:    scores,
	}
	if total == 0 {
		return res
	}

	best := 0
	for _, cat := range Priority {
		score := scores[cat]
		if score > 0 {
			res.Significant = append(res.Significant, cat)
		}
		// strict > keeps the earlier category on a tie
		if score > best {
			best = score
			res.Primary = cat
		}
	}

	res.Intensity = clamp01(float64(best) / float64(total))
	res.Mixed = len(res.Significant) > 1
	return res
}

// Matches returns the keywords of cat found in text, one element per occurrence.
func (c *Classifier) Matches(text string, cat Category) []string {
	normalized := strings.ToLower(text)
	var found []string
	for _, m := range c.matchers[cat] {
		for range m.re.FindAllStringIndex(normalized, -1) {
			found = append(found, m.keyword)
		}
	}
	return found
}

func clamp01(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
