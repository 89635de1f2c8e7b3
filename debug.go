package cakewalk

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and collision metrics.
// Timings are only measured when World.debug is true.
type debugStats struct {
	updateTime    time.Duration
	collisionTime time.Duration
	drainTime     time.Duration
	colliders     int
	candidates    int
	hits          int
	events        int
	removed       int
}

// debugLog prints timing and collision stats to the log output.
func (w *World) debugLog(stats debugStats) {
	if !w.debug {
		return
	}
	total := stats.updateTime + stats.collisionTime + stats.drainTime
	w.logf("frame %d | update: %v | collision: %v | drain: %v | total: %v",
		w.frame, stats.updateTime, stats.collisionTime, stats.drainTime, total)
	w.logf("colliders: %d | candidates: %d | hits: %d | events: %d | removed: %d",
		stats.colliders, stats.candidates, stats.hits, stats.events, stats.removed)
}

// logf writes a diagnostic line when debug mode is on.
func (w *World) logf(format string, args ...any) {
	if !w.debug || w.logOut == nil {
		return
	}
	_, _ = fmt.Fprintf(w.logOut, "[cakewalk] "+format+"\n", args...)
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (w *World) debugCheckChildCount(n *Node) {
	if w == nil || !w.debug {
		return
	}
	if len(n.children) > debugMaxChildCount {
		w.logf("warning: node %q has %d children (threshold %d)",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
