// Package correct computes edit distances used to phrase
// "did you mean" suggestions. It never accepts a misspelling.
package correct

import "github.com/reeflective/grammar/config"

// Distance returns the Levenshtein distance between two strings,
// normalized according to the configuration's case sensitivity.
func Distance(str, tgt string, cfg config.Config) int {
	src := []rune(cfg.Normalize(str))
	dst := []rune(cfg.Normalize(tgt))

	if len(src) == 0 {
		return len(dst)
	}

	if len(dst) == 0 {
		return len(src)
	}

	dists := make([][]int, len(src)+1)
	for i := range dists {
		dists[i] = make([]int, len(dst)+1)
		dists[i][0] = i
	}

	for j := range dists[0] {
		dists[0][j] = j
	}

	for sidx, sc := range src {
		for tidx, tc := range dst {
			if sc == tc {
				dists[sidx+1][tidx+1] = dists[sidx][tidx]
				continue
			}

			dists[sidx+1][tidx+1] = dists[sidx][tidx] + 1
			if dists[sidx+1][tidx]+1 < dists[sidx+1][tidx+1] {
				dists[sidx+1][tidx+1] = dists[sidx+1][tidx] + 1
			}
			if dists[sidx][tidx+1]+1 < dists[sidx+1][tidx+1] {
				dists[sidx+1][tidx+1] = dists[sidx][tidx+1] + 1
			}
		}
	}

	return dists[len(src)][len(dst)]
}

// Closest returns the candidate nearest to word, and its distance.
// Ties are resolved in favor of the first candidate.
func Closest(word string, candidates []string, cfg config.Config) (string, int) {
	if len(candidates) == 0 {
		return "", 0
	}

	mincmd := -1
	mindist := -1

	for i, c := range candidates {
		l := Distance(word, c, cfg)

		if mincmd < 0 || l < mindist {
			mindist = l
			mincmd = i
		}
	}

	return candidates[mincmd], mindist
}

// Suggest returns the closest candidate if it lies within the
// configured auto-correct limit, or false otherwise.
func Suggest(word string, candidates []string, cfg config.Config) (string, bool) {
	best, dist := Closest(word, candidates, cfg)
	if best == "" || dist > cfg.AutoCorrectLimit {
		return "", false
	}

	return best, true
}
