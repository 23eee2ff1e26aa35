package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"emotree/internal/calendar"
	"emotree/internal/emotion"
	"emotree/internal/journal"
	"emotree/internal/placement"
	"emotree/internal/types"
)

var glyphs = map[emotion.OrnamentKind]string{
	emotion.OrnamentJoyStar:            "★",
	emotion.OrnamentCalmLeaf:           "❦",
	emotion.OrnamentMelancholyRaindrop: "☂",
	emotion.OrnamentAnxietyMist:        "≈",
	emotion.OrnamentHopeBubble:         "○",
	emotion.OrnamentWonderSparkle:      "✦",
	emotion.OrnamentGratitudeLight:     "☀",
}

// Glyph is the terminal stand-in for an ornament asset.
func Glyph(k emotion.OrnamentKind) string {
	if g, ok := glyphs[k]; ok {
		return g
	}
	return glyphs[emotion.OrnamentCalmLeaf]
}

// Entry renders one journal entry with its reflection.
func (s Styles) Entry(e types.Entry) string {
	var sb strings.Builder
	ornament := emotion.OrnamentFor(e.Emotion)

	header := fmt.Sprintf("%s  %s %s  %s",
		s.Title.Render(e.Date.Format("Mon Jan 2, 2006")),
		lipgloss.NewStyle().Foreground(EmotionColor(e.Emotion)).Render(Glyph(ornament)),
		s.EmotionBadge(e.Emotion),
		s.Muted.Render(fmt.Sprintf("intensity %.2f", e.Intensity)),
	)
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(s.Body.Render(e.Text))
	sb.WriteString("\n\n")
	sb.WriteString(s.Quote.Render(e.Reflection))
	sb.WriteString("\n")

	status := s.Warning.Render("awaiting placement")
	if e.Placed {
		status = s.Success.Render("on the tree")
	}
	sb.WriteString(s.Muted.Render(fmt.Sprintf("%s · %s · ", e.ID, emotion.CharacterFor(e.Emotion).Asset())))
	sb.WriteString(status)
	return s.Card.Render(sb.String())
}

// Month renders the calendar grid of a month, one ornament per written day.
// Unplaced days show their glyph dimmed.
func (s Styles) Month(year, month int, ornaments []placement.Ornament) string {
	byDay := make(map[int]placement.Ornament, len(ornaments))
	for _, o := range ornaments {
		byDay[o.Day] = o
	}

	var sb strings.Builder
	title := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	sb.WriteString(s.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	sb.WriteString("\n")

	for _, week := range calendar.Grid(year, time.Month(month)) {
		for _, day := range week {
			if day == 0 {
				sb.WriteString("    ")
				continue
			}
			o, ok := byDay[day]
			if !ok {
				sb.WriteString(s.Muted.Render(fmt.Sprintf("%3d ", day)))
				continue
			}
			glyph := lipgloss.NewStyle().Foreground(EmotionColor(o.Emotion))
			if !o.Placed {
				glyph = glyph.Faint(true)
			}
			sb.WriteString(fmt.Sprintf("%2d%s ", day, glyph.Render(Glyph(o.Kind))))
		}
		sb.WriteString("\n")
	}

	placed := 0
	for _, o := range ornaments {
		if o.Placed {
			placed++
		}
	}
	sb.WriteString(s.Subtitle.Render(fmt.Sprintf("%d entries, %d on the tree", len(ornaments), placed)))
	return sb.String()
}

// Ornaments lists the tree coordinates of a month layout.
func (s Styles) Ornaments(ornaments []placement.Ornament) string {
	t := NewReportTable("Ornaments", "Day", "Emotion", "Ornament", "X", "Y", "Placed")
	for _, o := range ornaments {
		t.AddRow(
			fmt.Sprint(o.Day),
			string(o.Emotion),
			string(o.Kind),
			fmt.Sprintf("%.0f", o.Position.X),
			fmt.Sprintf("%.0f", o.Position.Y),
			fmt.Sprint(o.Placed),
		)
	}
	return t.View(s)
}

// Positions lists scatter coordinates.
func (s Styles) Positions(ps []placement.Position) string {
	t := NewReportTable("Scatter", "#", "X", "Y")
	for i, p := range ps {
		t.AddRow(fmt.Sprint(i), fmt.Sprintf("%.1f", p.X), fmt.Sprintf("%.1f", p.Y))
	}
	return t.View(s)
}

// Analysis renders a classification preview.
func (s Styles) Analysis(a journal.Analysis) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s  %s\n",
		s.EmotionBadge(a.Primary),
		Glyph(a.Ornament),
		s.Muted.Render(fmt.Sprintf("intensity %.2f, mixed %v", a.Intensity, a.Mixed)),
	))

	if len(a.Significant) > 0 {
		t := NewReportTable("", "Emotion", "Score", "Keywords")
		for _, c := range a.Significant {
			t.AddRow(string(c), fmt.Sprint(a.Scores[c]), strings.Join(a.Matches[c], ", "))
		}
		sb.WriteString(t.View(s))
	} else {
		sb.WriteString(s.Muted.Render("no emotional keywords found"))
		sb.WriteString("\n")
	}
	sb.WriteString(s.Quote.Render(a.Reflection))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render(fmt.Sprintf("%s · %s · %s", a.Ornament.Asset(), a.Character.Asset(), a.Visual)))
	return sb.String()
}

// MonthlyReflection renders a stored month summary.
func (s Styles) MonthlyReflection(r types.MonthlyReflection) string {
	var sb strings.Builder
	title := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	sb.WriteString(s.Title.Render(title + " in reflection"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d entries, mostly %s (average intensity %.2f)\n",
		r.EntryCount, s.EmotionBadge(r.Dominant), r.AverageIntensity))

	cats := make([]emotion.Category, 0, len(r.Counts))
	for c := range r.Counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if r.Counts[cats[i]] != r.Counts[cats[j]] {
			return r.Counts[cats[i]] > r.Counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	for _, c := range cats {
		bar := lipgloss.NewStyle().Foreground(EmotionColor(c)).Render(strings.Repeat("■", r.Counts[c]))
		sb.WriteString(fmt.Sprintf("  %-11s %s %d\n", c, bar, r.Counts[c]))
	}
	sb.WriteString(s.Quote.Render(r.Text))
	return sb.String()
}

// Preferences renders the stored settings.
func (s Styles) Preferences(p types.Preferences) string {
	t := NewReportTable("Preferences", "Setting", "Value")
	t.AddRow("theme", p.Theme)
	t.AddRow("sound", fmt.Sprint(p.SoundEnabled))
	t.AddRow("animations", fmt.Sprint(p.AnimationsEnabled))
	return t.View(s)
}
