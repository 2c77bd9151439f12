package picker

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/action-picker/internal/tree"
)

const categoryPenalty = 1000

// BestMatch ranks the leaves outside the favorites bucket against keywords
// and returns the closest one. Ties keep tree order.
func BestMatch(root *tree.Node, keywords []string) *tree.Node {
	var (
		best      *tree.Node
		bestScore = -1
	)
	for _, leaf := range tree.Leaves(root) {
		if leaf.InFavorites() {
			continue
		}
		score := matchScore(leaf, keywords)
		if score < 0 {
			continue
		}
		if best == nil || score < bestScore {
			best, bestScore = leaf, score
		}
	}
	if best == nil {
		return tree.FirstLeaf(root)
	}
	return best
}

// matchScore sums fuzzy distances per keyword. Label hits beat category
// hits; -1 means some keyword matched neither.
func matchScore(leaf *tree.Node, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		if d := fuzzy.RankMatchNormalizedFold(kw, leaf.Label); d >= 0 {
			total += d
			continue
		}
		if d := fuzzy.RankMatchNormalizedFold(kw, leaf.Category()); d >= 0 {
			total += categoryPenalty + d
			continue
		}
		return -1
	}
	return total
}
