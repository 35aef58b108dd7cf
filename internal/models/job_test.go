package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestJobUpdateApplyIgnoresTerminal verifies a finished job keeps its outcome.
func TestJobUpdateApplyIgnoresTerminal(t *testing.T) {
	job := &Job{ID: "a", Status: JobStatusPending}

	assert.True(t, StatusUpdate(JobStatusProcessing, 5, "Extracting video info...").Apply(job))
	assert.True(t, ErrorUpdate("boom").Apply(job))
	assert.Equal(t, JobStatusError, job.Status)
	assert.Equal(t, "boom", job.Error)
	assert.Equal(t, 5, job.Progress)

	assert.False(t, CompletedUpdate(&TranscriptResult{Transcript: "x", Method: MethodCaptions}, "done").Apply(job))
	assert.Nil(t, job.Result)
	assert.Equal(t, JobStatusError, job.Status)
}

// TestJobCloneIsDeep verifies readers cannot mutate the stored record through a snapshot.
func TestJobCloneIsDeep(t *testing.T) {
	job := &Job{ID: "a", Result: &TranscriptResult{Transcript: "t", Metadata: &VideoMetadata{Title: "x"}}}
	c := job.Clone()
	c.Result.Metadata.Title = "changed"
	c.Result.Transcript = "changed"
	assert.Equal(t, "x", job.Result.Metadata.Title)
	assert.Equal(t, "t", job.Result.Transcript)
}

func TestFillPlaceholders(t *testing.T) {
	m := &VideoMetadata{Title: "Talk"}
	m.FillPlaceholders()
	assert.Equal(t, &VideoMetadata{Title: "Talk", Channel: UnknownChannel, Duration: "0"}, m)
}
