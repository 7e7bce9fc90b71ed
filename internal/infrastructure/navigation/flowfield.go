package navigation

import "container/heap"

// Direction indices into DirVectors, clockwise from north (-Z)
const (
	DirNone   int8 = -1 // blocked or unreachable
	DirTarget int8 = -2 // the target cell itself
	DirCount  int8 = 8
)

// DirVectors are the tile steps for each direction: N, NE, E, SE, S, SW, W, NW
var DirVectors = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Edge costs approximating Euclidean distance: cardinal 10, diagonal 14
const (
	costCardinal    = 10
	costDiagonal    = 14
	costUnreachable = 1<<30 - 1
)

func dirCost(d int8) int {
	if d%2 == 0 {
		return costCardinal
	}
	return costDiagonal
}

// BlockedFunc reports whether a cell cannot be entered
type BlockedFunc func(x, z int) bool

type cell struct {
	idx  int
	dist int
}

type cellQueue []cell

func (q cellQueue) Len() int           { return len(q) }
func (q cellQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q cellQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x any)        { *q = append(*q, x.(cell)) }
func (q *cellQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[:n-1]
	return c
}

// FlowField holds, for every cell, the direction of the cheapest path to a target
type FlowField struct {
	Width, Depth int
	Directions   []int8
	Distances    []int

	TargetX, TargetZ int
	Valid            bool

	queue cellQueue
}

// NewFlowField creates an empty field
func NewFlowField(width, depth int) *FlowField {
	size := width * depth
	return &FlowField{
		Width:      width,
		Depth:      depth,
		Directions: make([]int8, size),
		Distances:  make([]int, size),
		TargetX:    -1,
		TargetZ:    -1,
	}
}

func (f *FlowField) inBounds(x, z int) bool {
	return x >= 0 && z >= 0 && x < f.Width && z < f.Depth
}

// Direction returns the flow direction at a cell, DirNone when invalid
func (f *FlowField) Direction(x, z int) int8 {
	if !f.Valid || !f.inBounds(x, z) {
		return DirNone
	}
	return f.Directions[z*f.Width+x]
}

// Distance returns the weighted distance to the target, -1 when unreachable
func (f *FlowField) Distance(x, z int) int {
	if !f.Valid || !f.inBounds(x, z) {
		return -1
	}
	d := f.Distances[z*f.Width+x]
	if d >= costUnreachable {
		return -1
	}
	return d
}

// Compute runs Dijkstra outward from the target, then points every cell at
// its cheapest neighbour. Diagonals may not cut blocked corners.
func (f *FlowField) Compute(targetX, targetZ int, blocked BlockedFunc) {
	f.Valid = false
	if !f.inBounds(targetX, targetZ) || blocked(targetX, targetZ) {
		return
	}

	w := f.Width
	for i := range f.Distances {
		f.Distances[i] = costUnreachable
		f.Directions[i] = DirNone
	}

	target := targetZ*w + targetX
	f.Distances[target] = 0
	f.queue = f.queue[:0]
	heap.Push(&f.queue, cell{idx: target})

	for f.queue.Len() > 0 {
		c := heap.Pop(&f.queue).(cell)
		if c.dist > f.Distances[c.idx] {
			continue
		}
		cx, cz := c.idx%w, c.idx/w

		for d := int8(0); d < DirCount; d++ {
			nx, nz := cx+DirVectors[d][0], cz+DirVectors[d][1]
			if !f.passable(cx, cz, d, blocked) {
				continue
			}
			n := nz*w + nx
			if dist := c.dist + dirCost(d); dist < f.Distances[n] {
				f.Distances[n] = dist
				heap.Push(&f.queue, cell{idx: n, dist: dist})
			}
		}
	}

	f.Directions[target] = DirTarget
	for z := 0; z < f.Depth; z++ {
		for x := 0; x < w; x++ {
			idx := z*w + x
			best := f.Distances[idx]
			if best >= costUnreachable || best == 0 {
				continue
			}
			for d := int8(0); d < DirCount; d++ {
				if !f.passable(x, z, d, blocked) {
					continue
				}
				n := (z+DirVectors[d][1])*w + x + DirVectors[d][0]
				if f.Distances[n] < best {
					best = f.Distances[n]
					f.Directions[idx] = d
				}
			}
		}
	}

	f.TargetX, f.TargetZ = targetX, targetZ
	f.Valid = true
}

// passable reports whether one step from (x, z) in direction d is allowed
func (f *FlowField) passable(x, z int, d int8, blocked BlockedFunc) bool {
	dx, dz := DirVectors[d][0], DirVectors[d][1]
	nx, nz := x+dx, z+dz
	if !f.inBounds(nx, nz) || blocked(nx, nz) {
		return false
	}
	if dx != 0 && dz != 0 {
		return !blocked(x+dx, z) && !blocked(x, z+dz)
	}
	return true
}
