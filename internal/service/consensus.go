package service

import "strings"

// ConsensusScorer assesses agreement across one debate round's arguments on
// a 0-100 scale. Implementations must be deterministic for a given input.
type ConsensusScorer interface {
	Score(arguments []string) float64
}

// KeywordScorer is the default lexical consensus heuristic. Each argument
// scores agreement/(agreement+disagreement)*100 over keyword hits, or 0 when
// neither family appears; the round score is the mean, clamped to [0,100].
type KeywordScorer struct{}

var agreementKeywords = []string{"agree", "support", "concur", "consensus", "aligned", "correct"}

var disagreementKeywords = []string{"disagree", "oppose", "against", "however", "but", "contrary"}

// Score implements ConsensusScorer.
func (KeywordScorer) Score(arguments []string) float64 {
	if len(arguments) == 0 {
		return 0
	}

	var total float64
	for _, argument := range arguments {
		lower := strings.ToLower(argument)

		var agreements, disagreements int
		for _, kw := range agreementKeywords {
			if strings.Contains(lower, kw) {
				agreements++
			}
		}
		for _, kw := range disagreementKeywords {
			if strings.Contains(lower, kw) {
				disagreements++
			}
		}

		if agreements+disagreements > 0 {
			total += float64(agreements) / float64(agreements+disagreements) * 100
		}
	}

	score := total / float64(len(arguments))
	return min(max(score, 0), 100)
}
