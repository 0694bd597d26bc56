package kanban

import (
	"strings"

	"github.com/avelinek/taskdeck/internal/domain"
)

// Transition score tiers. The relative ordering is the contract; the
// numbers exist so tests can name them.
const (
	ScoreStatusExact      = 100 // to-status equals a status mapped to the column
	ScoreNameStatusExact  = 90  // transition name equals such a status
	ScoreStatusLabelExact = 85  // to-status equals the column label
	ScoreNameLabelExact   = 80  // transition name equals the column label
	ScoreStatusContains   = 60  // to-status and label contain one another
	ScoreNameContains     = 50  // name and label contain one another
	ScoreWordOverlapBase  = 30  // ≥2 shared words between name/to-status and label
	ScoreWordOverlapStep  = 5
	minWordOverlap        = 2
)

// ScoredTransition pairs a candidate with its score against a target column
type ScoredTransition struct {
	Candidate domain.TransitionCandidate
	Score     int
}

// ScoreTransitions scores every candidate against the target column,
// preserving input order
func ScoreTransitions(target domain.ColumnKey, candidates []domain.TransitionCandidate) []ScoredTransition {
	scored := make([]ScoredTransition, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, ScoredTransition{
			Candidate: candidate,
			Score:     scoreTransition(target, candidate),
		})
	}
	return scored
}

// BestTransition picks the highest-scoring candidate for the target
// column, ties broken by list order. Returns domain.ErrNoTransition when
// nothing scores above zero: the caller must fall back to manual selection
// rather than guess.
func BestTransition(target domain.ColumnKey, candidates []domain.TransitionCandidate) (domain.TransitionCandidate, error) {
	best := -1
	var pick domain.TransitionCandidate
	for _, st := range ScoreTransitions(target, candidates) {
		if st.Score > best {
			best = st.Score
			pick = st.Candidate
		}
	}
	if best <= 0 {
		return domain.TransitionCandidate{}, domain.ErrNoTransition
	}
	return pick, nil
}

func scoreTransition(target domain.ColumnKey, candidate domain.TransitionCandidate) int {
	toStatus := strings.ToLower(strings.TrimSpace(candidate.ToStatusName))
	name := strings.ToLower(strings.TrimSpace(candidate.Name))
	label := strings.ToLower(target.Label())

	for _, status := range StatusesFor(target) {
		if toStatus != "" && toStatus == status {
			return ScoreStatusExact
		}
	}
	for _, status := range StatusesFor(target) {
		if name != "" && name == status {
			return ScoreNameStatusExact
		}
	}

	if toStatus == label {
		return ScoreStatusLabelExact
	}
	if name == label {
		return ScoreNameLabelExact
	}

	// Containment tiers, evaluated in fixed order, first true wins
	if toStatus != "" && strings.Contains(toStatus, label) {
		return ScoreStatusContains
	}
	if toStatus != "" && strings.Contains(label, toStatus) {
		return ScoreStatusContains
	}
	if name != "" && strings.Contains(name, label) {
		return ScoreNameContains
	}
	if name != "" && strings.Contains(label, name) {
		return ScoreNameContains
	}

	labelWords := wordSet(label)
	overlap := sharedWords(wordSet(toStatus), labelWords)
	if n := sharedWords(wordSet(name), labelWords); n > overlap {
		overlap = n
	}
	if overlap >= minWordOverlap {
		return ScoreWordOverlapBase + ScoreWordOverlapStep*overlap
	}

	return 0
}

func wordSet(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		words[w] = true
	}
	return words
}

func sharedWords(a, b map[string]bool) int {
	count := 0
	for w := range a {
		if b[w] {
			count++
		}
	}
	return count
}
