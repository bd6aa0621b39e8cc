// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package classify

// maxIterations bounds the k-means refinement loop; the corpus is small
// enough that convergence is typically reached well before this.
const maxIterations = 25

// kmeans clusters sparse unit vectors into k groups by cosine
// similarity. The implementation is fully deterministic: seeds are
// evenly spaced documents, points are scanned in index order, and
// similarity ties resolve to the lowest cluster index. Identical input
// always produces identical assignments.
func kmeans(vecs []sparseVec, dims, k int) []int {
	n := len(vecs)
	assign := make([]int, n)
	if n == 0 || dims == 0 || k <= 1 {
		return assign
	}
	if k > n {
		k = n
	}

	// Seed centroids from evenly spaced documents.
	centroids := make([][]float64, k)
	for c := range centroids {
		centroids[c] = make([]float64, dims)
		for col, w := range vecs[c*n/k] {
			centroids[c][col] = w
		}
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for i, vec := range vecs {
			best, bestSim := 0, -1.0
			for c := range centroids {
				if sim := dot(vec, centroids[c]); sim > bestSim {
					best, bestSim = c, sim
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Recompute centroids as member means.
		counts := make([]int, k)
		for c := range centroids {
			centroids[c] = make([]float64, dims)
		}
		for i, vec := range vecs {
			c := assign[i]
			counts[c]++
			for col, w := range vec {
				centroids[c][col] += w
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue // empty cluster keeps its zero centroid
			}
			for col := range centroids[c] {
				centroids[c][col] /= float64(counts[c])
			}
		}
	}

	return assign
}

// dot computes the dot product of a sparse vector and a dense centroid.
// Both sides are (at most) unit length, so this is cosine similarity.
func dot(vec sparseVec, centroid []float64) float64 {
	var sum float64
	for col, w := range vec {
		sum += w * centroid[col]
	}
	return sum
}
