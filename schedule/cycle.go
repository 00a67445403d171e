package schedule

// FindCycle returns one drainage loop of g as a sequence of pixel ids
// p0 -> p1 -> ... -> pk -> p0, starting at the smallest id on the loop,
// or nil if g is acyclic. A nil graph is treated as cycle-free.
//
// Every pixel has at most one downstream pixel, so a walk from any start
// either reaches an outlet, joins a finished walk, or closes a loop on
// itself. Three-colour marking keeps the whole scan O(N).
//
// Complexity: Time O(N), Memory O(N).
func FindCycle(g Graph) []int {
	if g == nil {
		return nil
	}
	const (
		white = iota // not visited
		gray         // on the current walk
		black        // finished, known to reach an outlet or a reported loop
	)
	n := g.Len()
	state := make([]uint8, n)
	walk := make([]int, 0, 64)

	for start := 0; start < n; start++ {
		if state[start] != white {
			continue
		}
		// 1) Follow downstream pointers, marking the walk gray.
		walk = walk[:0]
		p := start
		for p >= 0 && p < n && state[p] == white {
			state[p] = gray
			walk = append(walk, p)
			p = g.Downstream(p)
		}
		// 2) Reaching a gray pixel closes a loop inside this walk.
		if p >= 0 && p < n && state[p] == gray {
			i := 0
			for walk[i] != p {
				i++
			}
			return rotateMin(append([]int(nil), walk[i:]...))
		}
		// 3) Otherwise the walk ends at an outlet or a finished pixel.
		for _, q := range walk {
			state[q] = black
		}
	}
	return nil
}

// rotateMin rotates a loop so that its smallest id comes first, giving
// a canonical form for messages and tests.
func rotateMin(loop []int) []int {
	m := 0
	for i, p := range loop {
		if p < loop[m] {
			m = i
		}
	}
	out := make([]int, 0, len(loop))
	out = append(out, loop[m:]...)
	return append(out, loop[:m]...)
}
