package arbor

import (
	"math"

	"github.com/pbanos/arbor/dataset"
)

/*
ClassEntropy returns the Shannon entropy, in bits, of the label distribution
over the instances of the given dataset. Labels no instance takes contribute
nothing, and an empty dataset has an entropy of 0.
*/
func ClassEntropy(s *dataset.Dataset) float64 {
	return entropy(s.CountLabels(), s.Count())
}

func entropy(counts []int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	var result float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}
