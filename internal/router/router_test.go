// ABOUTME: Tests for query intent classification
// ABOUTME: Verifies predicate behavior and the strict priority order
package router

import (
	"testing"
)

func TestClassify_Identity(t *testing.T) {
	queries := []string{
		"Who are you?",
		"What is your name?",
		"who am I talking to",
		"Please introduce yourself",
		"WHO ARE YOU",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			if got := Classify(q); got != IntentIdentity {
				t.Errorf("Classify(%q) = %v, want identity", q, got)
			}
		})
	}
}

func TestClassify_Personal(t *testing.T) {
	queries := []string{
		"I am sad",
		"I'm feeling really stressed about work",
		"my day was awful, feeling very anxious",
		"I am so worried about this",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			if got := Classify(q); got != IntentPersonal {
				t.Errorf("Classify(%q) = %v, want personal", q, got)
			}
		})
	}
}

func TestClassify_SmallTalk(t *testing.T) {
	queries := []string{
		"hi",
		"Hello!",
		"hey there",
		"good morning",
		"how are you doing today",
		"thanks",
		"ok",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			if got := Classify(q); got != IntentSmallTalk {
				t.Errorf("Classify(%q) = %v, want small talk", q, got)
			}
		})
	}
}

func TestClassify_Substantive(t *testing.T) {
	queries := []string{
		"Can we cover a roofing contractor with two recent claims?",
		"What is the standard excess for commercial property flood damage?",
		"Is a discount available for a long-standing client renewing early?",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			if got := Classify(q); got != IntentSubstantive {
				t.Errorf("Classify(%q) = %v, want substantive", q, got)
			}
		})
	}
}

func TestClassify_LongGreetingOpeningReachesRetrieval(t *testing.T) {
	// Opens with a greeting but runs past the small-talk token cutoff.
	q := "hi there, I would like to ask about liability cover for a scaffolding business please"

	if got := Classify(q); got != IntentSubstantive {
		t.Errorf("Classify(%q) = %v, want substantive", q, got)
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		// Identity beats small talk even for a short greeting-shaped query.
		{"identity over small talk", "hi who are you", IntentIdentity},
		// Personal beats small talk: short emotional message with pronoun.
		{"personal over small talk", "i'm sad", IntentPersonal},
		// Identity beats personal.
		{"identity over personal", "i am upset, who are you", IntentIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestTokenCount(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"hello", 1},
		{"what is the excess", 4},
		{"  spaced   out  ", 2},
		{"", 0},
		{"punctuation, counts; not!", 3},
	}

	for _, tt := range tests {
		if got := TokenCount(tt.query); got != tt.want {
			t.Errorf("TokenCount(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestIsOutOfScope(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"what's the weather like", true},
		{"tell me a joke", true},
		{"any movie recommendations", true},
		{"can we cover a cafe with a fryer", false},
		{"standard excess for flood", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := IsOutOfScope(tt.query); got != tt.want {
				t.Errorf("IsOutOfScope(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	if got := normalizeQuery("I'm HERE, ok?!"); got != "i'm here  ok" && got != "i'm here ok" {
		// Punctuation becomes spaces; apostrophes survive.
		t.Errorf("normalizeQuery = %q", got)
	}
	if got := normalizeQuery("Who are you?"); got != "who are you" {
		t.Errorf("normalizeQuery = %q", got)
	}
}

func TestIntent_String(t *testing.T) {
	tests := []struct {
		intent Intent
		want   string
	}{
		{IntentIdentity, "identity"},
		{IntentPersonal, "personal"},
		{IntentSmallTalk, "small_talk"},
		{IntentSubstantive, "substantive"},
	}

	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
