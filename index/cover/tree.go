package cover

import (
	"container/heap"
	"math"
	"sort"
	"sync"
)

// Tree is a cover tree over float32 points. Each indexed point carries the
// id it was inserted with; query points are never stored.
type Tree struct {
	root          *node
	base          float32
	distanceName  DistanceFunction
	distanceFunc  DistanceFunc
	ids           []string
	version       uint64
	boundStrategy BoundStrategy
	mu            sync.RWMutex
}

// BoundStrategy selects which lower-bound radius to use when pruning.
type BoundStrategy int

const (
	// BoundPerNode uses cached per-node subtree radius (tighter pruning).
	BoundPerNode BoundStrategy = iota
	// BoundLevel uses a geometric bound derived from the node level.
	BoundLevel
)

type node struct {
	level          int32
	baseLevel      float32
	point          *Point
	children       []node
	radius         float32
	radiusComputed uint64
}

func newNode(point *Point, level int32, base float32) node {
	return node{
		level:     level,
		baseLevel: float32(math.Pow(float64(base), float64(level))),
		point:     point,
	}
}

// NewTree constructs a cover tree with the provided expansion base and
// distance metric. Bases <= 1 fall back to 1.3; an unknown metric falls
// back to euclidean.
func NewTree(base float32, distance DistanceFunction) *Tree {
	if base <= 1 {
		base = 1.3
	}
	fn := distance.Function()
	if fn == nil {
		distance = DistanceFunctionEuclidean
		fn = distance.Function()
	}
	return &Tree{
		base:          base,
		distanceName:  distance,
		distanceFunc:  fn,
		boundStrategy: BoundPerNode,
	}
}

// SetBoundStrategy switches the pruning strategy at runtime.
func (t *Tree) SetBoundStrategy(s BoundStrategy) { t.boundStrategy = s }

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}

// Insert adds an id/point pair to the tree and returns its index.
func (t *Tree) Insert(id string, point *Point) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	point.index = int32(len(t.ids))
	t.ids = append(t.ids, id)
	point.magnitude()
	if t.root == nil {
		n := newNode(point, 0, t.base)
		t.root = &n
	} else {
		t.insert(t.root, point, 0)
	}
	t.version++
	return point.index
}

// ID returns the id stored for an indexed point, or "" for query points.
func (t *Tree) ID(p *Point) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if p == nil || p.index < 0 || int(p.index) >= len(t.ids) {
		return ""
	}
	return t.ids[p.index]
}

func (t *Tree) insert(n *node, point *Point, level int32) {
	for {
		baseLevel := float32(math.Pow(float64(t.base), float64(level)))
		distance := t.distanceFunc(point, n.point)
		if distance < baseLevel {
			inserted := false
			for i := range n.children {
				child := &n.children[i]
				if t.distanceFunc(point, child.point) < baseLevel {
					n = child
					level--
					inserted = true
					break
				}
			}
			if !inserted {
				n.children = append(n.children, newNode(point, level-1, t.base))
				return
			}
		} else {
			level++
			if level > n.level {
				newRoot := newNode(point, level, t.base)
				newRoot.children = append(newRoot.children, *t.root)
				t.root = &newRoot
				return
			}
		}
	}
}

// Neighbor describes a candidate returned by a kNN search.
type Neighbor struct {
	Point    *Point
	Distance float32
}

// neighborHeap is a max-heap by distance so the current worst candidate
// sits at the top.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int           { return len(h) }
func (h neighborHeap) Less(i, j int) bool { return h[i].Distance > h[j].Distance }
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *neighborHeap) Push(x any) { *h = append(*h, x.(Neighbor)) }

func (h *neighborHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// KNearestNeighbors runs a depth-first kNN search and returns up to k
// neighbors ordered by ascending distance.
func (t *Tree) KNearestNeighbors(point *Point, k int) []Neighbor {
	if t.boundStrategy == BoundPerNode {
		// ensureRadius mutates cached radii, so take the write lock.
		t.mu.Lock()
		defer t.mu.Unlock()
	} else {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}
	if t.root == nil {
		return nil
	}
	h := &neighborHeap{}
	heap.Init(h)
	t.kNearestNeighbors(t.root, point, k, h)
	result := make([]Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(Neighbor)
	}
	return result
}

func (t *Tree) kNearestNeighbors(n *node, point *Point, k int, h *neighborHeap) {
	dc := t.distanceFunc(point, n.point)
	if h.Len() < k {
		heap.Push(h, Neighbor{Point: n.point, Distance: dc})
	} else if k > 0 && dc < (*h)[0].Distance {
		heap.Pop(h)
		heap.Push(h, Neighbor{Point: n.point, Distance: dc})
	}
	if len(n.children) == 0 {
		return
	}
	type childDist struct {
		child *node
		dist  float32
	}
	cds := make([]childDist, 0, len(n.children))
	for i := range n.children {
		child := &n.children[i]
		cds = append(cds, childDist{child: child, dist: t.distanceFunc(point, child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		var worst float32 = math.MaxFloat32
		if h.Len() == k && k > 0 {
			worst = (*h)[0].Distance
		}
		r := t.boundRadius(cd.child)
		if h.Len() == k && (cd.dist-r) >= worst {
			continue
		}
		t.kNearestNeighbors(cd.child, point, k, h)
	}
}

// KNearestNeighborsBestFirst runs a best-first kNN search, expanding nodes
// in order of their lower-bound distance to the query, and returns up to k
// neighbors ordered by ascending distance.
func (t *Tree) KNearestNeighborsBestFirst(point *Point, k int) []Neighbor {
	if t.boundStrategy == BoundPerNode {
		t.mu.Lock()
		defer t.mu.Unlock()
	} else {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}
	if t.root == nil {
		return nil
	}
	h := &neighborHeap{}
	heap.Init(h)
	pq := &nodeQueue{}
	heap.Init(pq)
	rootDist := t.distanceFunc(point, t.root.point)
	heap.Push(pq, nodeItem{node: t.root, lowerBound: rootDist - t.boundRadius(t.root), centerDist: rootDist})

	for pq.Len() > 0 {
		var worst float32 = math.MaxFloat32
		if h.Len() == k && k > 0 {
			worst = (*h)[0].Distance
		}
		top := heap.Pop(pq).(nodeItem)
		if h.Len() == k && top.lowerBound >= worst {
			break
		}
		dc := top.centerDist
		if h.Len() < k {
			heap.Push(h, Neighbor{Point: top.node.point, Distance: dc})
		} else if k > 0 && dc < (*h)[0].Distance {
			heap.Pop(h)
			heap.Push(h, Neighbor{Point: top.node.point, Distance: dc})
		}
		for i := range top.node.children {
			child := &top.node.children[i]
			cd := t.distanceFunc(point, child.point)
			lb := cd - t.boundRadius(child)
			if h.Len() == k && k > 0 && lb >= (*h)[0].Distance {
				continue
			}
			heap.Push(pq, nodeItem{node: child, lowerBound: lb, centerDist: cd})
		}
	}
	result := make([]Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(Neighbor)
	}
	return result
}

// nodeItem is a frontier entry of the best-first search, ordered by the
// lower bound on any distance inside the node's subtree.
type nodeItem struct {
	node       *node
	lowerBound float32
	centerDist float32
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].lowerBound < q[j].lowerBound }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(nodeItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// ensureRadius computes and caches the subtree cover radius of n for the
// current tree version.
func (t *Tree) ensureRadius(n *node) float32 {
	if n == nil {
		return 0
	}
	if n.radiusComputed == t.version {
		return n.radius
	}
	if len(n.children) == 0 {
		n.radius = 0
		n.radiusComputed = t.version
		return 0
	}
	maxR := float32(0)
	for i := range n.children {
		child := &n.children[i]
		cr := t.ensureRadius(child)
		d := t.distanceFunc(n.point, child.point) + cr
		if d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	n.radiusComputed = t.version
	return maxR
}

func (t *Tree) levelCoverRadius(n *node) float32 {
	if t.base <= 1 || n == nil {
		return math.MaxFloat32
	}
	return n.baseLevel * t.base / (t.base - 1)
}

func (t *Tree) boundRadius(n *node) float32 {
	if t.boundStrategy == BoundLevel {
		return t.levelCoverRadius(n)
	}
	return t.ensureRadius(n)
}
