package glade

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the world's default logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "glade",
	})
}

// frameStats accumulates per-frame pipeline metrics. Only flushed to the
// logger when Config.Debug is set, and only on the stats interval.
type frameStats struct {
	frames         int
	sortTime       time.Duration
	drawTime       time.Duration
	entitiesDrawn  int
	entitiesCulled int
	cacheHits      int
	cacheMisses    int
	renderFaults   int
}

// add merges one frame's counters into the accumulator.
func (s *frameStats) add(o frameStats) {
	s.frames++
	s.sortTime += o.sortTime
	s.drawTime += o.drawTime
	s.entitiesDrawn += o.entitiesDrawn
	s.entitiesCulled += o.entitiesCulled
	s.cacheHits += o.cacheHits
	s.cacheMisses += o.cacheMisses
	s.renderFaults += o.renderFaults
}

// reset zeroes the accumulator after a flush.
func (s *frameStats) reset() {
	*s = frameStats{}
}

// logStats emits the accumulated window at debug level.
func (s *frameStats) logStats(l *log.Logger) {
	if s.frames == 0 {
		return
	}
	l.Debug("frame stats",
		"frames", s.frames,
		"sort", s.sortTime/time.Duration(s.frames),
		"draw", s.drawTime/time.Duration(s.frames),
		"drawn", s.entitiesDrawn,
		"culled", s.entitiesCulled,
		"cache_hits", s.cacheHits,
		"cache_misses", s.cacheMisses,
		"faults", s.renderFaults,
	)
}
