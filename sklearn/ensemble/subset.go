package ensemble

import (
	"math/rand/v2"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// AttributeSubset draws min(nAttributes-1, maxAttributes) distinct non-label
// column indices uniformly without replacement and appends the label index
// nAttributes-1. The result is sorted. nAttributes must be at least 2 and
// maxAttributes at least 1.
func AttributeSubset(src rand.Source, nAttributes, maxAttributes int) []int {
	nonLabel := nAttributes - 1
	k := min(nonLabel, maxAttributes)

	subset := make([]int, k, k+1)
	sampleuv.WithoutReplacement(subset, nonLabel, src)
	sort.Ints(subset)
	return append(subset, nonLabel)
}

// subsetCount returns how many distinct subsets of size k exist among n
// attributes.
func subsetCount(n, k int) float64 {
	if n <= 60 {
		return float64(combin.Binomial(n, k))
	}
	return combin.GeneralizedBinomial(float64(n), float64(k))
}

func subsetKey(subset []int) string {
	b := make([]byte, 0, len(subset)*3)
	for i, idx := range subset {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(idx), 10)
	}
	return string(b)
}
