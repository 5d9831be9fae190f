// Package generator produces synthetic response content.
//
// A Generator is selected by name from configuration; each strategy aims at
// a target token count using the rough 1 token per 0.75 words heuristic for
// prose. Generated text is deterministic in shape (capitalized first word,
// trailing period) but random in word choice, except for the echo, fixed
// and sequence strategies.
package generator

import (
	"math/rand"
	"strconv"
	"strings"
)

// Message is the minimal projection of a conversation message that a
// generator needs.
type Message struct {
	Role    string
	Content string
}

// Request is the minimal projection of an incoming API request.
type Request struct {
	Model    string
	Messages []Message
}

// Generator produces response content for a request.
type Generator interface {
	// Generate returns the full response text for the request.
	Generate(req *Request) string

	// Name identifies the strategy, for logging and the stats endpoint.
	Name() string
}

// New builds a generator from its configured name. "fixed:<text>" yields a
// generator returning <text> verbatim; unknown names fall back to lorem.
func New(name string, targetTokens int) Generator {
	lower := strings.ToLower(name)
	switch {
	case lower == "lorem":
		return &Lorem{TargetTokens: targetTokens}
	case lower == "echo":
		return &Echo{}
	case lower == "random" || lower == "random_word":
		return &RandomWord{TargetTokens: targetTokens}
	case lower == "sequence":
		return &Sequence{TargetTokens: targetTokens}
	case strings.HasPrefix(lower, "fixed:"):
		return &Fixed{Text: name[len("fixed:"):]}
	default:
		return &Lorem{TargetTokens: targetTokens}
	}
}

// ValidName reports whether name maps to a known generator strategy.
func ValidName(name string) bool {
	lower := strings.ToLower(name)
	switch lower {
	case "lorem", "echo", "random", "random_word", "sequence":
		return true
	}
	return strings.HasPrefix(lower, "fixed:")
}

// Lorem emits lorem-ipsum prose sized to the target token count.
type Lorem struct {
	TargetTokens int
}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
	"in", "reprehenderit", "voluptate", "velit", "esse", "cillum", "fugiat",
	"nulla", "pariatur", "excepteur", "sint", "occaecat", "cupidatat", "non",
	"proident", "sunt", "culpa", "qui", "officia", "deserunt", "mollit",
	"anim", "id", "est", "laborum",
}

func (g *Lorem) Generate(_ *Request) string {
	// Rough estimate: 1 token is about 0.75 words for English text.
	n := int(float64(g.TargetTokens) * 0.75)
	if n < 1 {
		n = 1
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		word := loremWords[rand.Intn(len(loremWords))]
		if i == 0 {
			b.WriteString(capitalize(word))
		} else {
			b.WriteByte(' ')
			b.WriteString(word)
		}
		// Sentence break every 10 words, except at the very end.
		if (i+1)%10 == 0 && i < n-1 {
			b.WriteByte('.')
		}
	}
	b.WriteByte('.')
	return b.String()
}

func (g *Lorem) Name() string { return "lorem" }

// Echo repeats the last user message back.
type Echo struct{}

func (g *Echo) Generate(req *Request) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			return "Echo: " + req.Messages[i].Content
		}
	}
	return "Echo: (no user message found)"
}

func (g *Echo) Name() string { return "echo" }

// Fixed returns a configured response verbatim.
type Fixed struct {
	Text string
}

func (g *Fixed) Generate(_ *Request) string { return g.Text }

func (g *Fixed) Name() string { return "fixed" }

// RandomWord emits common English words with an irregular sentence cadence.
type RandomWord struct {
	TargetTokens int
}

var commonWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "I", "it",
	"for", "not", "on", "with", "he", "as", "you", "do", "at", "this",
	"but", "his", "by", "from", "they", "we", "say", "her", "she", "or",
	"an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know",
	"take", "people", "into", "year", "your", "good", "some", "could",
	"them", "see", "other", "than", "then", "now", "look", "only", "come",
	"its", "over", "think", "also", "back", "after", "use", "two", "how",
	"our", "work", "first", "well", "way", "even", "new", "want",
	"because", "any", "these", "give", "day", "most", "us",
}

func (g *RandomWord) Generate(_ *Request) string {
	n := int(float64(g.TargetTokens) * 0.75)
	if n < 1 {
		n = 1
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		word := commonWords[rand.Intn(len(commonWords))]
		if i == 0 {
			b.WriteString(capitalize(word))
		} else {
			b.WriteByte(' ')
			b.WriteString(word)
		}
		// Irregular sentence length, somewhere between 8 and 14 words.
		if (i+1)%(8+rand.Intn(7)) == 0 && i < n-1 {
			b.WriteByte('.')
		}
	}
	b.WriteByte('.')
	return b.String()
}

func (g *RandomWord) Name() string { return "random_word" }

// Sequence emits "1 2 3 ..." up to the target count, which makes stream
// chunk ordering easy to eyeball.
type Sequence struct {
	TargetTokens int
}

func (g *Sequence) Generate(_ *Request) string {
	n := g.TargetTokens
	if n < 1 {
		n = 1
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = strconv.Itoa(i + 1)
	}
	return strings.Join(parts, " ")
}

func (g *Sequence) Name() string { return "sequence" }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
