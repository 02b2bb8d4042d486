package physics

import "math"

// spatialGrid buckets bodies by position so only nearby bodies are compared.
type spatialGrid struct {
	cellSize float64
	cells    map[[2]int][]int
}

func newSpatialGrid() spatialGrid {
	return spatialGrid{cells: make(map[[2]int][]int)}
}

func (g *spatialGrid) cellOf(x, y float64) [2]int {
	return [2]int{int(math.Floor(x / g.cellSize)), int(math.Floor(y / g.cellSize))}
}

// rebuild sizes the cells to the largest body and buckets every body.
func (g *spatialGrid) rebuild(bodies []Body) {
	clear(g.cells)

	largest := 0.0
	for _, body := range bodies {
		largest = max(largest, body.Radius)
	}
	g.cellSize = max(2*largest+Slop, 1)

	for i, body := range bodies {
		key := g.cellOf(body.Position.X, body.Position.Y)
		g.cells[key] = append(g.cells[key], i)
	}
}

// pairs calls fn once for every pair of bodies in the same or adjacent cells,
// with i < j. Bodies farther apart than a cell are never passed.
func (g *spatialGrid) pairs(bodies []Body, fn func(i, j int)) {
	for i, body := range bodies {
		cell := g.cellOf(body.Position.X, body.Position.Y)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range g.cells[[2]int{cell[0] + dx, cell[1] + dy}] {
					if j > i {
						fn(i, j)
					}
				}
			}
		}
	}
}
