package grove

import (
	"fmt"
	"log/slog"
	"time"
)

// debugStats holds per-tick and per-frame metrics.
// Only logged when Scene.debug is true.
type debugStats struct {
	dt         float64
	updateTime time.Duration
	runCount   int
	nodeCount  int
	visited    int
	drawCount  int
}

// debugLog logs update stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug("update",
		slog.Float64("dt", stats.dt),
		slog.Duration("elapsed", stats.updateTime),
		slog.Int("runs", stats.runCount),
		slog.Int("nodes", stats.nodeCount))
}

// debugLogDraw logs draw traversal stats at debug level.
func (s *Scene) debugLogDraw(stats debugStats) {
	s.log.Debug("draw",
		slog.Int("visited", stats.visited),
		slog.Int("draw_calls", stats.drawCount))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("grove debug: %s on disposed node %q (ID was %d)", op, n.Name, n.id))
	}
}

// debugMaxTreeDepth is the depth above which debugCheckTreeDepth warns.
const debugMaxTreeDepth = 32

func (s *Scene) debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		s.log.Warn("tree depth exceeds threshold",
			slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth),
			slog.String("node", n.Name))
	}
}

// debugMaxChildCount is the child count above which debugCheckChildCount warns.
const debugMaxChildCount = 1000

func (s *Scene) debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		s.log.Warn("child count exceeds threshold",
			slog.String("node", n.Name), slog.Int("children", len(n.children)),
			slog.Int("threshold", debugMaxChildCount))
	}
}
