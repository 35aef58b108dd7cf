package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	m := New()
	m.JobsSubmitted.Add(3)
	m.CaptionHits.Add(1)

	out := m.Format()
	assert.Contains(t, out, "jobs_submitted 3\n")
	assert.Contains(t, out, "caption_hits 1\n")
	assert.Contains(t, out, "chats 0\n")
	assert.Len(t, m.Snapshot(), len(metricOrder))
}
