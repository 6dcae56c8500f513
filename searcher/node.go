package searcher

import (
	"gomoku/game"
)

// node is a simulated position in the search frontier. first is the root
// action that leads to it and takes no part in ordering.
type node struct {
	priority  float64
	depth     int
	grid      game.Grid
	toMove    game.Player
	first     Action
	eval      float64
	terminal  bool
	cooldowns CooldownSnapshot
	seq       int
}

// score is the value recorded for a resolved node. Terminal scores are
// folded onto the root's scale by the parity of their depth.
func (n *node) score() float64 {
	s := n.eval
	if !n.terminal {
		return s
	}
	if n.depth%2 == 1 && s < 0 {
		return -s
	}
	if n.depth%2 == 0 && s > 0 {
		return -s
	}
	return s
}

// priority is lower for nodes that look better for the root player.
func priority(depth int, eval float64, toMove, root game.Player) float64 {
	sign := -1.0
	if toMove == root {
		sign = 1.0
	}
	return float64(depth) - sign*eval
}

// frontier is a min-heap on priority; equal priorities pop in insertion order.
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*node))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return x
}
