package emotion

import (
	"regexp"
	"strings"
)

// Lexicon maps each category to the keywords and phrases that signal it.
type Lexicon map[Category][]string

// DefaultLexicon is the built-in English keyword table. Some keywords appear
// under two categories ("possibility", "uneasy") and score for both.
var DefaultLexicon = Lexicon{
	Joy: {
		"happy", "joy", "delighted", "excited", "pleased", "glad",
		"cheerful", "content", "thrilled", "elated", "wonderful",
		"great", "amazing", "fantastic", "good", "positive", "smile",
		"laugh", "fun", "enjoy", "celebration", "delight", "satisfaction",
	},
	Calm: {
		"calm", "peaceful", "relaxed", "tranquil", "serene",
		"quiet", "still", "centered", "balanced", "steady",
		"composed", "collected", "gentle", "easy", "sleepy", "drowsy",
		"rest", "peace", "harmony", "balance", "meditation", "breath",
	},
	Melancholy: {
		"sad", "melancholy", "blue", "down", "unhappy", "somber",
		"gloomy", "wistful", "nostalgic", "heavy", "low",
		"depressed", "sorrowful", "grief", "miss", "lost", "longing",
		"regret", "yearning", "memory", "tears", "heartache",
	},
	Anxiety: {
		"anxious", "worried", "nervous", "tense", "stressed",
		"uneasy", "afraid", "fearful", "concerned", "apprehensive",
		"restless", "agitated", "overwhelmed", "panic", "dazed", "confused",
		"dread", "uncertainty", "doubt", "pressure", "racing",
	},
	Hope: {
		"hope", "optimistic", "looking forward", "anticipate", "expect",
		"promising", "potential", "possibility", "future", "better",
		"improve", "progress", "believe", "faith", "trust", "dream",
		"aspire", "wish", "desire", "tomorrow", "horizon",
	},
	Wonder: {
		"wonder", "awe", "amazed", "curious", "fascinated",
		"intrigued", "surprised", "astonished", "marveling",
		"captivated", "spellbound", "discovery", "learning", "mystery",
		"explore", "question", "imagine", "possibility", "magic",
	},
	Gratitude: {
		"grateful", "thankful", "appreciative", "blessed", "fortunate",
		"appreciate", "thanks", "gratitude", "indebted", "recognition",
		"acknowledging", "value", "cherish", "lucky", "honored",
		"privilege", "gift", "abundance",
	},
	Anger: {
		"angry", "mad", "frustrated", "annoyed", "irritated",
		"furious", "enraged", "upset", "outraged", "hostile",
		"resentful", "indignant", "irate", "livid", "fuming",
		"rage", "temper", "fury", "hatred", "bitter",
	},
	Queasy: {
		"sick", "nauseous", "queasy", "ill", "unwell",
		"dizzy", "lightheaded", "uncomfortable", "unsettled", "uneasy",
		"stomach", "vomit", "throw up", "puke", "nauseated",
		"discomfort", "pain", "ache", "hurt", "suffering",
	},
}

// matcher is one compiled whole-word pattern for a keyword or phrase.
type matcher struct {
	keyword string
	re      *regexp.Regexp
}

// compile builds whole-word matchers for every keyword, keyed by category.
// Keywords are lower-cased and regexp-quoted; blank keywords are dropped.
func (l Lexicon) compile() map[Category][]matcher {
	out := make(map[Category][]matcher, len(l))
	for cat, words := range l {
		ms := make([]matcher, 0, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			ms = append(ms, matcher{
				keyword: w,
				re:      regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`),
			})
		}
		out[cat] = ms
	}
	return out
}
