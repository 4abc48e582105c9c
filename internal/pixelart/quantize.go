package pixelart

import (
	"image"
	"math"
	"sort"

	"github.com/muesli/clusters"
)

const (
	// maxQuantizeIterations bounds the clustering loop. It is a safety cap;
	// convergence normally ends the loop long before on downsampled inputs.
	maxQuantizeIterations = 100

	// quantizeTolerance is the maximum centroid movement, on the normalized
	// 0-1 channel scale, below which an iteration counts as converged.
	quantizeTolerance = 0.01
)

// Quantize reduces img to at most k colors by k-means clustering in
// normalized RGB space. Alpha is excluded from the distance metric and from
// centroid averaging; each output pixel keeps its source alpha and takes the
// rounded channel values of its final centroid.
//
// Initial centroids are evenly spaced samples of the color-sorted pixel
// population, so identical inputs always produce identical output. A
// centroid that ends an iteration with no assigned pixels is re-seeded to the
// pixel currently farthest from its own centroid instead of being left
// undefined.
func Quantize(img *image.NRGBA, k int) *image.NRGBA {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n == 0 {
		return image.NewNRGBA(bounds)
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	dataset := make(clusters.Observations, n)
	for i := 0; i < n; i++ {
		p := i * 4
		dataset[i] = clusters.Coordinates{
			float64(img.Pix[p]) / 255,
			float64(img.Pix[p+1]) / 255,
			float64(img.Pix[p+2]) / 255,
		}
	}

	cs := make(clusters.Clusters, k)
	for i, seed := range seedCentroids(dataset, k) {
		cs[i].Center = seed
	}

	assign := make([]int, n)
	for iter := 0; iter < maxQuantizeIterations; iter++ {
		cs.Reset()
		for i, obs := range dataset {
			ci := cs.Nearest(obs)
			assign[i] = ci
			cs[ci].Append(obs)
		}

		moved := 0.0
		for i := range cs {
			center, err := cs[i].Observations.Center()
			if err != nil {
				continue // empty cluster, re-seeded below
			}
			if d := cs[i].Center.Distance(center); d > moved {
				moved = d
			}
			cs[i].Center = center
		}
		if d := reseedEmpty(cs, dataset, assign); d > moved {
			moved = d
		}

		// Distance is squared euclidean, so compare against tol^2.
		if moved < quantizeTolerance*quantizeTolerance {
			break
		}
	}

	out := image.NewNRGBA(bounds)
	for i, obs := range dataset {
		center := cs[cs.Nearest(obs)].Center
		p := i * 4
		out.Pix[p] = clampChannel(math.Round(center[0] * 255))
		out.Pix[p+1] = clampChannel(math.Round(center[1] * 255))
		out.Pix[p+2] = clampChannel(math.Round(center[2] * 255))
		out.Pix[p+3] = img.Pix[p+3]
	}
	return out
}

// seedCentroids picks k deterministic seeds: the pixel population is sorted
// lexicographically by (R,G,B) and the midpoints of k equal slices are taken.
func seedCentroids(dataset clusters.Observations, k int) []clusters.Coordinates {
	sorted := make([]clusters.Coordinates, len(dataset))
	for i, obs := range dataset {
		sorted[i] = obs.Coordinates()
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		for c := 0; c < 3; c++ {
			if a[c] != b[c] {
				return a[c] < b[c]
			}
		}
		return false
	})

	seeds := make([]clusters.Coordinates, k)
	n := len(sorted)
	for i := 0; i < k; i++ {
		src := sorted[(2*i+1)*n/(2*k)]
		seeds[i] = clusters.Coordinates{src[0], src[1], src[2]}
	}
	return seeds
}

// reseedEmpty moves every empty cluster onto the observation farthest from
// its currently assigned centroid and reports the largest squared distance a
// center moved by, so the caller keeps iterating after a re-seed.
func reseedEmpty(cs clusters.Clusters, dataset clusters.Observations, assign []int) float64 {
	moved := 0.0
	taken := make(map[int]bool)
	for i := range cs {
		if len(cs[i].Observations) > 0 {
			continue
		}
		farthest, farthestDist := -1, -1.0
		for j, obs := range dataset {
			if taken[j] {
				continue
			}
			if d := obs.Distance(cs[assign[j]].Center); d > farthestDist {
				farthest, farthestDist = j, d
			}
		}
		if farthest < 0 {
			continue
		}
		taken[farthest] = true
		seed := dataset[farthest].Coordinates()
		if d := cs[i].Center.Distance(seed); d > moved {
			moved = d
		}
		cs[i].Center = clusters.Coordinates{seed[0], seed[1], seed[2]}
	}
	return moved
}
