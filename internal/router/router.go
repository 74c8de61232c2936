// ABOUTME: Classifies incoming broker queries to pick a response path
// ABOUTME: Priority order is load-bearing: identity, personal, small talk, then retrieval
package router

import (
	"regexp"
	"strings"
)

// Intent is the response path chosen for a query.
type Intent int

const (
	// IntentIdentity answers "who are you" style questions with a fixed
	// self-identification, no retrieval.
	IntentIdentity Intent = iota
	// IntentPersonal answers emotional first-person statements with an
	// empathetic, non-decision reply, no retrieval.
	IntentPersonal
	// IntentSmallTalk answers greetings and pleasantries with a friendly
	// template, no retrieval.
	IntentSmallTalk
	// IntentSubstantive proceeds to the retrieval path.
	IntentSubstantive
)

func (i Intent) String() string {
	switch i {
	case IntentIdentity:
		return "identity"
	case IntentPersonal:
		return "personal"
	case IntentSmallTalk:
		return "small_talk"
	default:
		return "substantive"
	}
}

// smallTalkShortCircuitMax: a message that matches a small-talk pattern but
// runs to this many tokens or more is NOT short-circuited, so longer messages
// that merely open with a greeting still reach retrieval.
const smallTalkShortCircuitMax = 10

// Classify picks the response path for a query. Predicates are evaluated in
// strict priority order; the first match wins.
func Classify(query string) Intent {
	q := normalizeQuery(query)
	tokens := strings.Fields(q)

	switch {
	case isIdentityQuery(q):
		return IntentIdentity
	case isPersonal(q, tokens):
		return IntentPersonal
	case isSmallTalk(q, tokens) && len(tokens) < smallTalkShortCircuitMax:
		return IntentSmallTalk
	default:
		return IntentSubstantive
	}
}

// TokenCount returns the number of whitespace tokens in the normalized query.
func TokenCount(query string) int {
	return len(strings.Fields(normalizeQuery(query)))
}

var punctRe = regexp.MustCompile(`[^\w\s']`)

// normalizeQuery lower-cases and strips punctuation (keeping apostrophes so
// contractions like "i'm" survive).
func normalizeQuery(query string) string {
	return strings.TrimSpace(punctRe.ReplaceAllString(strings.ToLower(query), " "))
}

var identityPhrases = []string{
	"your name",
	"who are you",
	"what are you",
	"who is this",
	"who am i talking to",
	"introduce yourself",
}

func isIdentityQuery(q string) bool {
	for _, phrase := range identityPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

var firstPersonPronouns = map[string]bool{
	"i": true, "i'm": true, "im": true, "me": true, "my": true, "myself": true,
}

var emotionWords = map[string]bool{
	"sad": true, "unhappy": true, "happy": true, "angry": true, "upset": true,
	"stressed": true, "anxious": true, "depressed": true, "tired": true,
	"worried": true, "frustrated": true, "excited": true, "lonely": true,
	"overwhelmed": true, "scared": true, "nervous": true, "down": true,
}

// isPersonal detects emotional first-person statements: a first-person
// pronoun co-occurring with an emotion word, or an exact "i am <emotion>".
func isPersonal(q string, tokens []string) bool {
	if len(tokens) == 3 && tokens[0] == "i" && tokens[1] == "am" && emotionWords[tokens[2]] {
		return true
	}
	hasPronoun, hasEmotion := false, false
	for _, t := range tokens {
		if firstPersonPronouns[t] {
			hasPronoun = true
		}
		if emotionWords[t] {
			hasEmotion = true
		}
	}
	return hasPronoun && hasEmotion
}

var greetingPhrases = []string{
	"hi", "hello", "hey", "howdy", "yo",
	"good morning", "good afternoon", "good evening",
	"how are you", "how's it going", "hows it going", "what's up", "whats up",
	"nice to meet you", "thanks", "thank you", "bye", "goodbye", "see you",
}

// isSmallTalk matches greeting/pleasantry patterns, or very short messages
// made entirely of short tokens.
func isSmallTalk(q string, tokens []string) bool {
	for _, phrase := range greetingPhrases {
		if q == phrase || strings.HasPrefix(q, phrase+" ") {
			return true
		}
	}
	if len(tokens) > 0 && len(tokens) <= 3 {
		allShort := true
		for _, t := range tokens {
			if len(t) > 7 {
				allShort = false
				break
			}
		}
		if allShort {
			return true
		}
	}
	return false
}

var outOfScopeWords = map[string]bool{
	"weather": true, "sport": true, "sports": true, "football": true,
	"cricket": true, "movie": true, "film": true, "music": true, "song": true,
	"recipe": true, "cook": true, "joke": true, "news": true, "politics": true,
	"election": true, "stock": true, "stocks": true, "crypto": true,
	"bitcoin": true, "game": true, "games": true, "travel": true,
	"holiday": true, "vacation": true, "restaurant": true, "celebrity": true,
}

// IsOutOfScope reports whether the query contains a keyword from the
// out-of-scope lexicon.
func IsOutOfScope(query string) bool {
	for _, t := range strings.Fields(normalizeQuery(query)) {
		if outOfScopeWords[t] {
			return true
		}
	}
	return false
}
