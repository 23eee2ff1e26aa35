package seed

import "emotree/internal/emotion"

// Texts are the canned journal lines used for sample entries.
var Texts = map[emotion.Category][]string{
	emotion.Joy: {
		"Today was absolutely wonderful! I feel so happy and energized.",
		"I had such a great day today, everything just went right.",
		"Feeling really good about life right now, so many positive things happening!",
	},
	emotion.Calm: {
		"I feel very peaceful today. Everything seems balanced and quiet.",
		"Today brought a sense of tranquility that I haven't felt in a while.",
		"I'm feeling centered and relaxed after taking time for myself.",
	},
	emotion.Melancholy: {
		"Feeling a bit down today, not sure why. Just a general sense of sadness.",
		"I miss how things used to be. Nostalgia has been hitting me hard lately.",
		"Today was a bit blue. I felt a gentle sadness throughout the day.",
	},
	emotion.Anxiety: {
		"I'm feeling really nervous about the upcoming presentation. Can't stop worrying.",
		"My thoughts are racing today, it's hard to focus on anything.",
		"Feeling on edge and can't seem to calm down. Everything feels overwhelming.",
	},
	emotion.Hope: {
		"Despite the challenges, I'm feeling optimistic about what's coming next.",
		"I have a good feeling about the future. Things are looking up.",
		"Today I felt a renewed sense of possibility. Tomorrow might be better.",
	},
	emotion.Wonder: {
		"I'm amazed by how beautiful the world can be sometimes. Just in awe today.",
		"Found myself lost in curiosity about so many things today.",
		"Today filled me with a sense of wonder about life and all its mysteries.",
	},
	emotion.Gratitude: {
		"I'm so thankful for the people in my life. Feeling blessed today.",
		"Grateful for the small moments of joy I experienced today.",
		"Today I appreciated all the little things that often go unnoticed.",
	},
	emotion.Anger: {
		"I'm so frustrated with how the meeting went. Nobody listened at all.",
		"Annoyed at myself for losing my temper over something so small.",
		"I'm fuming about the way I was treated today, so bitter.",
	},
	emotion.Queasy: {
		"Woke up feeling nauseous and it never really went away.",
		"My stomach has been unsettled all day, I just feel unwell.",
		"A bit dizzy and sick this afternoon, took it slow.",
	},
}

// TextFor returns the canned lines for c, or a generic line for categories
// without any.
func TextFor(c emotion.Category) []string {
	if texts, ok := Texts[c]; ok && len(texts) > 0 {
		return texts
	}
	return []string{"Sample " + string(c) + " entry"}
}
