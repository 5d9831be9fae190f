package generator

import (
	"math/rand"
	"strings"
)

var reasoningPhrases = []string{
	"the model considered",
	"analyzing the input",
	"evaluating possible approaches",
	"breaking down the problem",
	"considering multiple perspectives",
	"reviewing relevant context",
	"weighing the alternatives",
	"synthesizing information",
	"formulating a response",
	"assessing the requirements",
	"identifying key factors",
	"examining the constraints",
	"reasoning through the steps",
	"determining the best approach",
	"processing the query",
}

var fillerWords = []string{
	"and", "then", "next", "also", "before", "after", "while", "during",
	"through", "carefully", "thoroughly", "systematically", "logically",
	"methodically",
}

// summaryWordCount sizes a reasoning summary from the number of reasoning
// tokens and the requested verbosity mode. Each mode has a floor so short
// reasoning still yields a readable sentence.
func summaryWordCount(reasoningTokens int, mode string) int {
	var ratio float64
	var min int
	switch mode {
	case "concise":
		ratio, min = 0.05, 8
	case "detailed":
		ratio, min = 0.15, 15
	default: // auto
		ratio, min = 0.10, 10
	}

	n := int(float64(reasoningTokens) * ratio)
	if n < min {
		n = min
	}
	return n
}

// ReasoningSummary synthesizes a plausible reasoning summary text. The text
// is assembled from stock reasoning phrases with occasional connective
// filler, capitalized and terminated with a period.
func ReasoningSummary(reasoningTokens int, mode string) string {
	count := summaryWordCount(reasoningTokens, mode)

	words := make([]string, 0, count)
	words = append(words, strings.Fields(reasoningPhrases[rand.Intn(len(reasoningPhrases))])...)

	for len(words) < count {
		if len(words)%5 == 0 && len(words)+3 < count {
			words = append(words, fillerWords[rand.Intn(len(fillerWords))])
		}
		phrase := strings.Fields(reasoningPhrases[rand.Intn(len(reasoningPhrases))])
		for _, w := range phrase {
			if len(words) >= count {
				break
			}
			words = append(words, w)
		}
	}
	words = words[:count]

	words[0] = capitalize(words[0])
	return strings.Join(words, " ") + "."
}
