package emotion

import "math"

// Reflections holds the canned poetic texts for each category, ordered from
// the gentlest to the strongest reading of the emotion.
type Reflections map[Category][]string

// DefaultReflections are the built-in texts, three per category.
var DefaultReflections = Reflections{
	Joy: {
		"The light you carry today\ndances like morning dew,\neach moment a small celebration\nof being wonderfully you.",
		"Joy rises in you like birdsong,\na melody that colors the air\nwith the bright hues of possibility.",
		"Today's happiness sparkles\nlike sunlight on water,\ncreating patterns of light\nthat illuminate from within.",
	},
	Calm: {
		"The quiet steps you took today\necho in the chambers of tomorrow.\nEach breath, a gentle reminder\nof your presence in this moment.",
		"In this pool of calm you've created,\nripples of peace extend outward,\ntouching all that surrounds you.",
		"Serenity settles around you\nlike morning mist on still water,\nholding space for clarity\nto emerge in its own time.",
	},
	Melancholy: {
		"Some days the rain falls softly within.\nRemember: even in shadows,\nyou are growing, unseen,\nlike roots beneath quiet soil.",
		"Your melancholy is a deep river,\ncarrying memories to a distant sea.\nEven in its depths, light filters through.",
		"In the gentle ache of today,\nthere is a wisdom that whispers\nof the fullness of being human,\nholding both shadow and light.",
	},
	Anxiety: {
		"Your racing thoughts are leaves in the wind.\nWatch them flutter, acknowledge their dance,\nthen feel the steady ground beneath you,\nholding you through the storm.",
		"When anxiety circles like a restless bird,\nremember that you are the sky,\nvast enough to hold all weather.",
		"The tension you carry is a messenger,\nnot a permanent resident.\nListen to what it needs to say,\nthen let it continue on its journey.",
	},
	Hope: {
		"Hope is the tender green shoot\npushing through concrete impossibility.\nYou water it with each forward step,\neach quiet belief in tomorrow.",
		"The seeds of hope you plant today\nwill grow in ways you cannot yet imagine,\nreaching toward a sun that always returns.",
		"Even in uncertainty,\nyou've held space for possibility.\nThis quiet courage\nis the lantern that lights the way forward.",
	},
	Wonder: {
		"In your wondering is the ancient wisdom\nof stars and children's questions.\nThe universe expands in your curiosity,\ncreating new constellations of thought.",
		"Wonder opens doors between worlds.\nStand at this threshold and marvel\nat how much remains to be discovered,\neven within familiar landscapes.",
		"Your curiosity is a compass\npointing toward unexplored territories.\nFollow its gentle pull\ninto the mystery of what might be.",
	},
	Gratitude: {
		"Gratitude turns what you have\ninto enough, and more.\nIt transforms the ordinary\ninto vessels of extraordinary light.",
		"In your thankfulness, you become\na living celebration of connection,\nacknowledging the invisible threads\nthat weave you into the fabric of everything.",
		"The appreciation you express today\nreverberates like a bell's clear tone,\nreminding you of the abundance\nthat exists even in simplicity.",
	},
	Anger: {
		"Your anger is a flame that speaks\nof boundaries crossed and needs unmet.\nListen to its message without judgment,\nthen let it transform into clarity.",
		"In the heat of your frustration\nlies the core of what matters to you.\nHonor this energy as it moves through,\nneither clinging nor pushing away.",
		"The fire of your indignation\nilluminates what you value most.\nLet it forge understanding\nrather than consume your peace.",
	},
	Queasy: {
		"Discomfort in the body speaks\nin its own language of pause.\nHonor this moment of unease\nas your system finds its balance again.",
		"Like waves that rise and fall,\nthis feeling will not last forever.\nBreathe through the unsettled moments,\nknowing steadier shores await.",
		"When the body feels uncertain,\nit asks for gentleness and patience.\nEach moment of care you offer\nis a step toward equilibrium.",
	},
}

// ReflectionGenerator selects a canned reflection for an emotion reading.
type ReflectionGenerator struct {
	texts Reflections
}

// NewReflectionGenerator returns a generator over texts. A nil map, or one
// without a calm list, falls back to DefaultReflections.
func NewReflectionGenerator(texts Reflections) *ReflectionGenerator {
	if len(texts[Default]) == 0 {
		texts = DefaultReflections
	}
	return &ReflectionGenerator{texts: texts}
}

var defaultGenerator = NewReflectionGenerator(DefaultReflections)

// Reflect selects a reflection with the default generator.
func Reflect(cat Category, intensity float64) string {
	return defaultGenerator.Generate(cat, intensity)
}

// Generate returns the text at floor(intensity*len), clamped to the list.
// Unknown categories use the calm list.
func (g *ReflectionGenerator) Generate(cat Category, intensity float64) string {
	options := g.texts[cat]
	if len(options) == 0 {
		options = g.texts[Default]
	}
	return options[selectIndex(intensity, len(options))]
}

// selectIndex maps intensity onto [0, n-1]. intensity == 1 lands on the last slot.
func selectIndex(intensity float64, n int) int {
	if n <= 1 || math.IsNaN(intensity) || intensity <= 0 {
		return 0
	}
	idx := int(math.Floor(intensity * float64(n)))
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}
