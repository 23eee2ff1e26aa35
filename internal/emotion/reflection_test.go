package emotion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_IndexByIntensity(t *testing.T) {
	g := NewReflectionGenerator(nil)
	joy := DefaultReflections[Joy]

	tests := []struct {
		intensity float64
		want      string
	}{
		{0, joy[0]},
		{0.2, joy[0]},
		{0.34, joy[1]},
		{0.5, joy[1]},
		{0.67, joy[2]},
		{1, joy[2]},
		{1.7, joy[2]},
		{-0.3, joy[0]},
		{math.NaN(), joy[0]},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Generate(Joy, tt.intensity), "intensity %v", tt.intensity)
	}
}

func TestGenerate_UnknownCategoryUsesCalm(t *testing.T) {
	assert.Equal(t, DefaultReflections[Calm][1], Reflect(Category("ennui"), 0.5))
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, c := range All() {
		assert.Equal(t, Reflect(c, 0.42), Reflect(c, 0.42))
		assert.NotEmpty(t, Reflect(c, 0.42))
	}
}

func TestNewReflectionGenerator_MissingCalmFallsBack(t *testing.T) {
	g := NewReflectionGenerator(Reflections{Joy: {"only joy"}})
	assert.Equal(t, DefaultReflections[Joy][0], g.Generate(Joy, 0))
}

func TestVisualMapping_Total(t *testing.T) {
	for _, c := range All() {
		assert.NotEmpty(t, OrnamentFor(c), "ornament for %s", c)
		assert.NotEmpty(t, CharacterFor(c), "character for %s", c)
		assert.NotEmpty(t, VisualFor(c), "visual for %s", c)
	}
}

func TestVisualMapping_Fallbacks(t *testing.T) {
	assert.Equal(t, OrnamentJoyStar, OrnamentFor(Anger))
	assert.Equal(t, OrnamentCalmLeaf, OrnamentFor(Queasy))
	assert.Equal(t, OrnamentCalmLeaf, OrnamentFor(Category("")))
	assert.Equal(t, CharacterDrowsy, CharacterFor(Category("ennui")))
	assert.Equal(t, VisualLeaf, VisualFor(Category("ennui")))

	assert.Equal(t, OrnamentJoyStar, OrnamentFor(Joy))
	assert.Equal(t, CharacterAngry, CharacterFor(Anger))
	assert.Equal(t, VisualFlash, VisualFor(Anger))
	assert.Equal(t, "hope-bubble.png", OrnamentFor(Hope).Asset())
	assert.Equal(t, "happy_2.png", CharacterFor(Hope).Asset())
}
