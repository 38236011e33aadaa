// ABOUTME: Distance metrics for nearest-neighbor ranking
// ABOUTME: One metric is fixed at store construction so rankings stay comparable
package vector

import (
	"fmt"
	"math"
)

// Metric identifies the vector distance function used by a store.
// Smaller distance means more similar.
type Metric int

const (
	// Cosine is 1 minus cosine similarity, in [0, 2].
	Cosine Metric = iota
	// Euclidean is the L2 distance.
	Euclidean
)

// ParseMetric maps a config string to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "cosine", "":
		return Cosine, nil
	case "euclidean":
		return Euclidean, nil
	}
	return Cosine, fmt.Errorf("unknown distance metric %q (want cosine or euclidean)", s)
}

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	default:
		return "cosine"
	}
}

// Distance computes the metric between two vectors of equal length.
// Mismatched lengths rank last (+Inf) rather than panicking; stored
// rows are dimension-checked before they get here.
func (m Metric) Distance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	switch m {
	case Euclidean:
		var sum float64
		for i := range a {
			d := a[i] - b[i]
			sum += d * d
		}
		return math.Sqrt(sum)
	default:
		return 1 - CosineSimilarity(a, b)
	}
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Zero-norm inputs yield 0 (maximally dissimilar under Cosine).
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
