package emotion

// OrnamentKind names the ornament asset hung on the tree for an entry.
type OrnamentKind string

// CharacterKind names the character illustration shown with a reflection.
type CharacterKind string

// VisualElement is the symbolic shape stored on an entry.
type VisualElement string

const (
	OrnamentJoyStar            OrnamentKind = "joy-star"
	OrnamentCalmLeaf           OrnamentKind = "calm-leaf"
	OrnamentMelancholyRaindrop OrnamentKind = "melancholy-raindrop"
	OrnamentAnxietyMist        OrnamentKind = "anxiety-mist"
	OrnamentHopeBubble         OrnamentKind = "hope-bubble"
	OrnamentWonderSparkle      OrnamentKind = "wonder-sparkle"
	OrnamentGratitudeLight     OrnamentKind = "gratitude-light"
)

const (
	CharacterHappy     CharacterKind = "happy"
	CharacterHappyAlt  CharacterKind = "happy_2"
	CharacterDrowsy    CharacterKind = "drowsy"
	CharacterDepressed CharacterKind = "depressed"
	CharacterDazed     CharacterKind = "dazed"
	CharacterTipsy     CharacterKind = "tipsy"
	CharacterAngry     CharacterKind = "angry"
	CharacterQueasy    CharacterKind = "queasy"
)

const (
	VisualStar     VisualElement = "star"
	VisualLeaf     VisualElement = "leaf"
	VisualRaindrop VisualElement = "raindrop"
	VisualMist     VisualElement = "mist"
	VisualBubble   VisualElement = "bubble"
	VisualSparkle  VisualElement = "sparkle"
	VisualLight    VisualElement = "light"
	VisualFlash    VisualElement = "flash"
	VisualWave     VisualElement = "wave"
)

// anger and queasy have no ornament artwork of their own; they borrow joy's
// star and calm's leaf.
var ornaments = map[Category]OrnamentKind{
	Joy:        OrnamentJoyStar,
	Calm:       OrnamentCalmLeaf,
	Melancholy: OrnamentMelancholyRaindrop,
	Anxiety:    OrnamentAnxietyMist,
	Hope:       OrnamentHopeBubble,
	Wonder:     OrnamentWonderSparkle,
	Gratitude:  OrnamentGratitudeLight,
	Anger:      OrnamentJoyStar,
	Queasy:     OrnamentCalmLeaf,
}

var characters = map[Category]CharacterKind{
	Joy:        CharacterHappy,
	Calm:       CharacterDrowsy,
	Melancholy: CharacterDepressed,
	Anxiety:    CharacterDazed,
	Hope:       CharacterHappyAlt,
	Wonder:     CharacterTipsy,
	Gratitude:  CharacterHappy,
	Anger:      CharacterAngry,
	Queasy:     CharacterQueasy,
}

var visuals = map[Category]VisualElement{
	Joy:        VisualStar,
	Calm:       VisualLeaf,
	Melancholy: VisualRaindrop,
	Anxiety:    VisualMist,
	Hope:       VisualBubble,
	Wonder:     VisualSparkle,
	Gratitude:  VisualLight,
	Anger:      VisualFlash,
	Queasy:     VisualWave,
}

// OrnamentFor returns the ornament for c, falling back to calm's.
func OrnamentFor(c Category) OrnamentKind {
	if o, ok := ornaments[c]; ok {
		return o
	}
	return ornaments[Default]
}

// CharacterFor returns the character for c, falling back to calm's.
func CharacterFor(c Category) CharacterKind {
	if ch, ok := characters[c]; ok {
		return ch
	}
	return characters[Default]
}

// VisualFor returns the visual element for c, falling back to calm's.
func VisualFor(c Category) VisualElement {
	if v, ok := visuals[c]; ok {
		return v
	}
	return visuals[Default]
}

// Asset returns the image file name used by presentation for the ornament.
func (o OrnamentKind) Asset() string { return string(o) + ".png" }

// Asset returns the image file name used by presentation for the character.
func (c CharacterKind) Asset() string { return string(c) + ".png" }
