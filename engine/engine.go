package engine

import "gomoku/experiments/metrics"

type Engine interface {
	// Run plays a match till there's a winner, a draw or the turn cap is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
