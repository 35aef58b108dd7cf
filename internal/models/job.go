package models

import "time"

type JobStatus string

const (
	JobStatusPending     JobStatus = "pending"
	JobStatusProcessing  JobStatus = "processing"
	JobStatusCaptions    JobStatus = "captions"
	JobStatusDownloading JobStatus = "downloading"
	JobStatusCompleted   JobStatus = "completed"
	JobStatusError       JobStatus = "error"
)

// Terminal reports whether no further transitions may happen.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

type TranscriptMethod string

const (
	MethodCaptions     TranscriptMethod = "captions"
	MethodSpeechToText TranscriptMethod = "speech-to-text"
)

type Job struct {
	ID        string            `json:"id"`
	Status    JobStatus         `json:"status"`
	Progress  int               `json:"progress"`
	Message   string            `json:"message"`
	Result    *TranscriptResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

type TranscriptResult struct {
	Transcript  string           `json:"transcript"`
	Method      TranscriptMethod `json:"method"`
	Metadata    *VideoMetadata   `json:"metadata,omitempty"`
	DownloadURL string           `json:"downloadUrl,omitempty"`
}

// JobUpdate carries the fields to merge into a job. Nil fields are left untouched.
type JobUpdate struct {
	Status   *JobStatus
	Progress *int
	Message  *string
	Result   *TranscriptResult
	Error    *string
}

// Apply merges u into j. Updates to a terminal job are ignored and Apply reports false.
func (u JobUpdate) Apply(j *Job) bool {
	if j.Status.Terminal() {
		return false
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
	if u.Progress != nil {
		j.Progress = *u.Progress
	}
	if u.Message != nil {
		j.Message = *u.Message
	}
	if u.Result != nil {
		r := *u.Result
		j.Result = &r
	}
	if u.Error != nil {
		j.Error = *u.Error
	}
	return true
}

// Clone returns a deep copy safe to hand to readers.
func (j *Job) Clone() *Job {
	c := *j
	if j.Result != nil {
		r := *j.Result
		if j.Result.Metadata != nil {
			m := *j.Result.Metadata
			r.Metadata = &m
		}
		c.Result = &r
	}
	return &c
}

func StatusUpdate(status JobStatus, progress int, message string) JobUpdate {
	return JobUpdate{Status: &status, Progress: &progress, Message: &message}
}

func ProgressUpdate(progress int, message string) JobUpdate {
	return JobUpdate{Progress: &progress, Message: &message}
}

func CompletedUpdate(result *TranscriptResult, message string) JobUpdate {
	status := JobStatusCompleted
	progress := 100
	return JobUpdate{Status: &status, Progress: &progress, Message: &message, Result: result}
}

func ErrorUpdate(cause string) JobUpdate {
	status := JobStatusError
	return JobUpdate{Status: &status, Message: &cause, Error: &cause}
}

type SubmitInput struct {
	VideoURL string `json:"videoUrl" validate:"required"`
}
