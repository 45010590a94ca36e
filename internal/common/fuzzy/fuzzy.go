// Package fuzzy ranks candidate strings by their difflib similarity ratio.
package fuzzy

import (
	"errors"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

var ErrInvalidArgument = errors.New("invalid fuzzy match argument")

type Match struct {
	Candidate string
	Score     float64

	// Index is the position of Candidate in the input slice.
	Index int
}

// CloseMatches returns at most n candidates scoring at least cutoff against word,
// best first. Equal scores are ordered by the larger candidate string, the same
// order difflib.get_close_matches produces.
func CloseMatches(word string, candidates []string, n int, cutoff float64) ([]Match, error) {
	if n <= 0 || cutoff < 0 || cutoff > 1 {
		return nil, ErrInvalidArgument
	}

	m := difflib.NewMatcher(nil, chars(word))

	var res []Match
	for i, c := range candidates {
		m.SetSeq1(chars(c))
		if m.RealQuickRatio() >= cutoff && m.QuickRatio() >= cutoff {
			if score := m.Ratio(); score >= cutoff {
				res = append(res, Match{Candidate: c, Score: score, Index: i})
			}
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].Candidate > res[j].Candidate
	})

	if len(res) > n {
		res = res[:n]
	}
	return res, nil
}

// Best returns the single best match, ok is false when nothing clears cutoff.
func Best(word string, candidates []string, cutoff float64) (Match, bool, error) {
	matches, err := CloseMatches(word, candidates, 1, cutoff)
	if err != nil || len(matches) == 0 {
		return Match{}, false, err
	}
	return matches[0], true, nil
}

func chars(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}
