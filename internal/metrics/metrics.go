package metrics

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics holds the service's operational counters.
type Metrics struct {
	JobsSubmitted   atomic.Int64
	JobsRejected    atomic.Int64
	JobsCompleted   atomic.Int64
	JobsFailed      atomic.Int64
	JobsCancelled   atomic.Int64
	CaptionHits     atomic.Int64
	SpeechFallbacks atomic.Int64
	Summaries       atomic.Int64
	Chats           atomic.Int64
}

func New() *Metrics {
	return &Metrics{}
}

// Snapshot returns the current counter values keyed by metric name.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"jobs_submitted":   m.JobsSubmitted.Load(),
		"jobs_rejected":    m.JobsRejected.Load(),
		"jobs_completed":   m.JobsCompleted.Load(),
		"jobs_failed":      m.JobsFailed.Load(),
		"jobs_cancelled":   m.JobsCancelled.Load(),
		"caption_hits":     m.CaptionHits.Load(),
		"speech_fallbacks": m.SpeechFallbacks.Load(),
		"summaries":        m.Summaries.Load(),
		"chats":            m.Chats.Load(),
	}
}

var metricOrder = []string{
	"jobs_submitted", "jobs_rejected", "jobs_completed", "jobs_failed", "jobs_cancelled",
	"caption_hits", "speech_fallbacks",
	"summaries", "chats",
}

// Format renders the counters as "name value" lines.
func (m *Metrics) Format() string {
	snap := m.Snapshot()
	var sb strings.Builder
	for _, k := range metricOrder {
		fmt.Fprintf(&sb, "%s %d\n", k, snap[k])
	}
	return sb.String()
}
