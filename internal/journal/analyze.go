package journal

import (
	"emotree/internal/emotion"
	"emotree/internal/logging"
)

// Analysis previews what SubmitEntry would record for a text, without saving.
type Analysis struct {
	emotion.Result
	Reflection string                        `json:"reflection"`
	Ornament   emotion.OrnamentKind          `json:"ornament"`
	Character  emotion.CharacterKind         `json:"character"`
	Visual     emotion.VisualElement         `json:"visualElement"`
	Matches    map[emotion.Category][]string `json:"matches,omitempty"`
}

// Analyze classifies text and composes its reflection and visuals.
func (s *Session) Analyze(text string) Analysis {
	res := s.classifier.Classify(text)
	logging.EmotionDebug("Preview classified as %s (intensity=%.2f)", res.Primary, res.Intensity)
	a := Analysis{
		Result:     res,
		Reflection: s.reflections.Generate(res.Primary, res.Intensity),
		Ornament:   emotion.OrnamentFor(res.Primary),
		Character:  emotion.CharacterFor(res.Primary),
		Visual:     emotion.VisualFor(res.Primary),
	}
	for _, c := range res.Significant {
		if a.Matches == nil {
			a.Matches = make(map[emotion.Category][]string)
		}
		a.Matches[c] = s.classifier.Matches(text, c)
	}
	return a
}
