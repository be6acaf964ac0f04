package vector

import "math"

// innerProduct scores two vectors, clamped to [0, 1]. Embedders normalize to
// unit length, so this is cosine similarity for well-formed inputs.
func innerProduct(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return math.Max(0, math.Min(1, dot))
}
