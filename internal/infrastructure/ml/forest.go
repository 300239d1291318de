package ml

import (
	"math"
	"math/rand"
)

// isolationForest is an unsupervised outlier detector. Each tree
// recursively partitions a random subsample with random axis-aligned
// splits; points that isolate in few splits are outliers.
type isolationForest struct {
	trees      []*treeNode
	sampleSize int
}

type treeNode struct {
	// Leaf when left is nil.
	left, right *treeNode
	splitAttr   int
	splitValue  float64
	size        int
}

const subsampleSize = 256

// fitForest builds an isolation forest over the given feature vectors.
// All randomness comes from rng, so a fixed seed yields a fixed forest.
func fitForest(data [][]float64, estimators int, rng *rand.Rand) *isolationForest {
	sample := len(data)
	if sample > subsampleSize {
		sample = subsampleSize
	}

	heightLimit := int(math.Ceil(math.Log2(float64(sample))))
	if heightLimit < 1 {
		heightLimit = 1
	}

	f := &isolationForest{
		trees:      make([]*treeNode, 0, estimators),
		sampleSize: sample,
	}

	for i := 0; i < estimators; i++ {
		subsample := make([][]float64, sample)
		for j := range subsample {
			subsample[j] = data[rng.Intn(len(data))]
		}
		f.trees = append(f.trees, buildTree(subsample, 0, heightLimit, rng))
	}

	return f
}

func buildTree(data [][]float64, depth, heightLimit int, rng *rand.Rand) *treeNode {
	if depth >= heightLimit || len(data) <= 1 {
		return &treeNode{size: len(data)}
	}

	attr := rng.Intn(len(data[0]))
	lo, hi := data[0][attr], data[0][attr]
	for _, row := range data[1:] {
		if row[attr] < lo {
			lo = row[attr]
		}
		if row[attr] > hi {
			hi = row[attr]
		}
	}
	if lo == hi {
		// Nothing left to separate on this attribute.
		return &treeNode{size: len(data)}
	}

	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, row := range data {
		if row[attr] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}

	return &treeNode{
		splitAttr:  attr,
		splitValue: split,
		left:       buildTree(left, depth+1, heightLimit, rng),
		right:      buildTree(right, depth+1, heightLimit, rng),
	}
}

// score returns the anomaly score for one vector, in (0, 1). Scores near
// 1 indicate isolation in very few splits; scores well below 0.5 indicate
// unremarkable points.
func (f *isolationForest) score(x []float64) float64 {
	var total float64
	for _, t := range f.trees {
		total += pathLength(t, x, 0)
	}
	mean := total / float64(len(f.trees))

	return math.Pow(2, -mean/avgPathLength(f.sampleSize))
}

func (f *isolationForest) scores(data [][]float64) []float64 {
	out := make([]float64, len(data))
	for i, x := range data {
		out[i] = f.score(x)
	}
	return out
}

func pathLength(n *treeNode, x []float64, depth int) float64 {
	if n.left == nil {
		return float64(depth) + avgPathLength(n.size)
	}
	if x[n.splitAttr] < n.splitValue {
		return pathLength(n.left, x, depth+1)
	}
	return pathLength(n.right, x, depth+1)
}

// avgPathLength is the expected path length of an unsuccessful BST
// search over n points, the standard normalizer for isolation forests.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	const eulerMascheroni = 0.5772156649
	h := math.Log(float64(n-1)) + eulerMascheroni
	return 2*h - 2*float64(n-1)/float64(n)
}
