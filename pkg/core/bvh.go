package core

import (
	"log/slog"
	"math"
	"time"
)

// Primitive is the contract the BVH builds over. Hit may tighten
// ray.Bounds.TMax on a hit; that mutation is what drives early pruning
// during traversal. Primitives must tolerate being reordered during build.
type Primitive interface {
	BBox() BBox
	Hit(ray *Ray) Trace
}

// BVHNode is one node of the flattened tree. Leaves have L == R and cover
// the primitive slice [Start, Start+Count).
type BVHNode struct {
	Box   BBox
	Start int
	Count int
	L, R  int
}

// IsLeaf reports whether the node is a leaf
func (n BVHNode) IsLeaf() bool {
	return n.L == n.R
}

// BVH is a bounding volume hierarchy stored as a contiguous node array over
// a contiguous, build-reordered primitive array. After build, nothing is
// mutated, so Hit is safe to call from many goroutines as long as each one
// owns its Ray.
type BVH[P Primitive] struct {
	Nodes []BVHNode
	Prims []P
	Root  int
}

// Number of equal-width centroid bins evaluated per axis during the SAH
// split search.
const nBins = 16

// BuildBVH constructs a BVH with a binned surface-area-heuristic build.
// It takes ownership of prims and reorders them in place. Building over an
// empty slice yields a tree whose Hit always misses.
func BuildBVH[P Primitive](prims []P, maxLeafSize int) *BVH[P] {
	bvh := &BVH[P]{Prims: prims}
	if len(prims) == 0 {
		return bvh
	}

	start := time.Now()

	box := NewBBox()
	for i := range prims {
		box.EncloseBox(prims[i].BBox())
	}
	bvh.Root = bvh.newNode(box, 0, len(prims))
	bvh.buildSubtree(bvh.Root, maxLeafSize)

	slog.Debug("bvh build",
		"prims", len(prims),
		"nodes", len(bvh.Nodes),
		"elapsed", time.Since(start))
	return bvh
}

func (b *BVH[P]) newNode(box BBox, start, count int) int {
	b.Nodes = append(b.Nodes, BVHNode{Box: box, Start: start, Count: count})
	return len(b.Nodes) - 1
}

// buildSubtree splits the node's primitive range with the best binned SAH
// partition across all three axes, or leaves it as a leaf when it is small
// enough or no split separates the primitives.
func (b *BVH[P]) buildSubtree(nodeIdx, maxLeafSize int) {
	n := b.Nodes[nodeIdx]
	if n.Count <= maxLeafSize {
		return
	}

	bestAxis, bestSplit := -1, -1
	minCost := math.Inf(1)
	var bestBins []int
	var bestLeft, bestRight BBox

	for axis := 0; axis < 3; axis++ {
		lo := n.Box.Min.Axis(axis)
		hi := n.Box.Max.Axis(axis)
		extent := hi - lo

		// Bin primitive centroids along this axis.
		binOf := make([]int, n.Count)
		var binCount [nBins]int
		var binBox [nBins]BBox
		for i := range binBox {
			binBox[i] = NewBBox()
		}
		for i := 0; i < n.Count; i++ {
			box := b.Prims[n.Start+i].BBox()
			bin := 0
			if extent > 0 {
				centroid := (box.Min.Axis(axis) + box.Max.Axis(axis)) / 2
				bin = int((centroid - lo) / extent * nBins)
				if bin < 0 {
					bin = 0
				} else if bin >= nBins {
					bin = nBins - 1
				}
			}
			binOf[i] = bin
			binCount[bin]++
			binBox[bin].EncloseBox(box)
		}

		// Prefix/suffix sweeps: leftBox[i] bounds bins [0,i), rightBox[i]
		// bounds bins [nBins-i, nBins).
		var leftBox, rightBox [nBins + 1]BBox
		var leftSum, rightSum [nBins + 1]int
		leftBox[0], rightBox[0] = NewBBox(), NewBBox()
		for i := 0; i < nBins; i++ {
			leftBox[i+1] = leftBox[i].Union(binBox[i])
			rightBox[i+1] = rightBox[i].Union(binBox[nBins-i-1])
			leftSum[i+1] = leftSum[i] + binCount[i]
			rightSum[i+1] = rightSum[i] + binCount[nBins-i-1]
		}

		for i := 1; i < nBins; i++ {
			cost := leftBox[i].SurfaceArea()*float64(leftSum[i]) +
				rightBox[nBins-i].SurfaceArea()*float64(rightSum[nBins-i])
			if cost < minCost {
				minCost = cost
				if bestAxis != axis {
					bestBins = binOf
				}
				bestAxis, bestSplit = axis, i
				bestLeft, bestRight = leftBox[i], rightBox[nBins-i]
			}
		}
	}

	if bestAxis < 0 {
		return
	}

	// Stable in-place partition: left side keeps bins [0, bestSplit).
	left := make([]P, 0, n.Count)
	right := make([]P, 0, n.Count)
	for i := 0; i < n.Count; i++ {
		if bestBins[i] < bestSplit {
			left = append(left, b.Prims[n.Start+i])
		} else {
			right = append(right, b.Prims[n.Start+i])
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return
	}
	copy(b.Prims[n.Start:], left)
	copy(b.Prims[n.Start+len(left):], right)

	l := b.newNode(bestLeft, n.Start, len(left))
	r := b.newNode(bestRight, n.Start+len(left), len(right))
	b.Nodes[nodeIdx].L = l
	b.Nodes[nodeIdx].R = r
	b.buildSubtree(l, maxLeafSize)
	b.buildSubtree(r, maxLeafSize)
}

// Hit intersects the ray against the hierarchy and returns the closest hit.
func (b *BVH[P]) Hit(ray *Ray) Trace {
	var closest Trace
	if len(b.Nodes) == 0 {
		return closest
	}
	times := ray.Bounds
	if b.Nodes[b.Root].Box.Hit(ray, &times) {
		b.hitSubtree(ray, b.Root, &closest)
	}
	return closest
}

// hitSubtree descends into the nearer surviving child first; after it
// returns, the farther child is re-tested against the (possibly tightened)
// closest distance before being visited. That ordering is what makes the
// traversal fast.
func (b *BVH[P]) hitSubtree(ray *Ray, nodeIdx int, closest *Trace) {
	n := b.Nodes[nodeIdx]
	if n.IsLeaf() {
		for i := n.Start; i < n.Start+n.Count; i++ {
			hit := b.Prims[i].Hit(ray)
			*closest = MinTrace(*closest, hit)
		}
		return
	}

	timesL, timesR := ray.Bounds, ray.Bounds
	hitL := b.Nodes[n.L].Box.Hit(ray, &timesL)
	hitR := b.Nodes[n.R].Box.Hit(ray, &timesR)
	if hitL && closest.Hit && timesL.TMin > closest.Distance {
		hitL = false
	}
	if hitR && closest.Hit && timesR.TMin > closest.Distance {
		hitR = false
	}

	switch {
	case !hitL && !hitR:
		return
	case hitL && !hitR:
		b.hitSubtree(ray, n.L, closest)
		return
	case hitR && !hitL:
		b.hitSubtree(ray, n.R, closest)
		return
	}

	near, far, farEntry := n.L, n.R, timesR.TMin
	if timesR.TMin < timesL.TMin {
		near, far, farEntry = n.R, n.L, timesL.TMin
	}
	b.hitSubtree(ray, near, closest)
	if !closest.Hit || farEntry < closest.Distance {
		b.hitSubtree(ray, far, closest)
	}
}

// BBox returns the bounds of the whole hierarchy
func (b *BVH[P]) BBox() BBox {
	if len(b.Nodes) == 0 {
		return NewBBox()
	}
	return b.Nodes[b.Root].Box
}

// Destructure hands the primitive array back to the caller and drops the
// node structure.
func (b *BVH[P]) Destructure() []P {
	prims := b.Prims
	b.Nodes = nil
	b.Prims = nil
	return prims
}

// Stats summarises the tree shape for diagnostics
type BVHStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
	Prims    int
}

// Stats walks the tree and collects shape statistics
func (b *BVH[P]) Stats() BVHStats {
	stats := BVHStats{Prims: len(b.Prims)}
	if len(b.Nodes) == 0 {
		return stats
	}
	b.collectStats(b.Root, 0, &stats)
	return stats
}

func (b *BVH[P]) collectStats(nodeIdx, depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}
	n := b.Nodes[nodeIdx]
	if n.IsLeaf() {
		stats.Leaves++
		return
	}
	b.collectStats(n.L, depth+1, stats)
	b.collectStats(n.R, depth+1, stats)
}
