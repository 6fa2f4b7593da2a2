package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts session activity.
type Metrics struct {
	inputs           atomic.Uint64
	autocorrectHits  atomic.Uint64
	commands         atomic.Uint64
	commandsHandled  atomic.Uint64
	replacements     atomic.Uint64
	saves            atomic.Uint64
	loads            atomic.Uint64
	lastSaveUnixNano atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordInput records a before-input event and whether autocorrect
// handled it.
func (m *Metrics) RecordInput(handled bool) {
	m.inputs.Add(1)
	if handled {
		m.autocorrectHits.Add(1)
	}
}

// RecordCommand records a key command and whether it was handled.
func (m *Metrics) RecordCommand(handled bool) {
	m.commands.Add(1)
	if handled {
		m.commandsHandled.Add(1)
	}
}

// RecordReplace records a document replacement from the renderer.
func (m *Metrics) RecordReplace() {
	m.replacements.Add(1)
}

// RecordSave records a successful save.
func (m *Metrics) RecordSave() {
	m.saves.Add(1)
	m.lastSaveUnixNano.Store(time.Now().UnixNano())
}

// RecordLoad records a successful load.
func (m *Metrics) RecordLoad() {
	m.loads.Add(1)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Inputs          uint64
	AutocorrectHits uint64
	Commands        uint64
	CommandsHandled uint64
	Replacements    uint64
	Saves           uint64
	Loads           uint64
	LastSave        time.Time
	Uptime          time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Inputs:          m.inputs.Load(),
		AutocorrectHits: m.autocorrectHits.Load(),
		Commands:        m.commands.Load(),
		CommandsHandled: m.commandsHandled.Load(),
		Replacements:    m.replacements.Load(),
		Saves:           m.saves.Load(),
		Loads:           m.loads.Load(),
		Uptime:          time.Since(m.startTime),
	}
	if ns := m.lastSaveUnixNano.Load(); ns != 0 {
		s.LastSave = time.Unix(0, ns)
	}
	return s
}
