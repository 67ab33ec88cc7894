package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// JobKind names the two schedulable units of work.
type JobKind string

const (
	JobKindRefresh JobKind = "refresh"
	JobKindUpdate  JobKind = "update"
)

// JobHandle identifies one pollable job on the job service.
type JobHandle struct {
	Kind JobKind `json:"kind"`
	URL  string  `json:"url"`
}

// Job status values reported by the job service. The worker also reports
// "started" and "processing" while a job runs; both count as running.
const (
	JobStatusRunning    = "running"
	JobStatusStarted    = "started"
	JobStatusProcessing = "processing"
	JobStatusComplete   = "complete"
	JobStatusFailed     = "failed"
)

// QuizTime is one quiz that received extra time.
type QuizTime struct {
	Title     string `json:"title"`
	AddedTime int    `json:"added_time"`
}

// UnchangedQuiz is a quiz without a time limit, left untouched.
type UnchangedQuiz struct {
	Title string `json:"title"`
}

// JobStatus is one status document returned by a job URL.
// QuizList and UnchangedList are only meaningful once Status is complete.
type JobStatus struct {
	Percent       int             `json:"percent"`
	Status        string          `json:"status"`
	StatusMsg     string          `json:"status_msg"`
	Error         bool            `json:"error,omitempty"`
	QuizList      []QuizTime      `json:"quiz_list,omitempty"`
	UnchangedList []UnchangedQuiz `json:"unchanged_list,omitempty"`
}

// IsEmpty reports whether the payload was "{}": the status record does not exist yet.
func (s *JobStatus) IsEmpty() bool {
	return s == nil || (s.Status == "" && s.StatusMsg == "" && s.Percent == 0 && !s.Error &&
		s.QuizList == nil && s.UnchangedList == nil)
}

func (s *JobStatus) IsComplete() bool {
	return s != nil && s.Status == JobStatusComplete
}

// IsFailed treats an in-band error flag the same as status "failed".
func (s *JobStatus) IsFailed() bool {
	return s != nil && (s.Status == JobStatusFailed || s.Error)
}

func (s *JobStatus) IsTerminal() bool {
	return s.IsComplete() || s.IsFailed()
}

// Percent is the resolved time modifier sent with an update request. The
// request body accepts a number or a string, so numeric values go out as
// JSON numbers and anything else verbatim as a string.
type Percent string

func (p Percent) MarshalJSON() ([]byte, error) {
	if s, ok := p.jsonNumber(); ok {
		return []byte(s), nil
	}
	return json.Marshal(string(p))
}

// jsonNumber returns the trimmed value when it is a finite JSON number
// literal. ParseFloat alone also admits forms like "+150", "0150", "150."
// and "Infinity" that are not valid JSON.
func (p Percent) jsonNumber() (string, bool) {
	s := strings.TrimSpace(string(p))
	if s == "" || !json.Valid([]byte(s)) {
		return "", false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	return s, true
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Percent(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Percent(n.String())
	return nil
}

// BatchRequest is the immutable body of one update submission.
type BatchRequest struct {
	UserIDs []string `json:"user_ids"`
	Percent Percent  `json:"percent"`
}

// SubmitResult carries the job handles returned for a submission.
type SubmitResult struct {
	Refresh JobHandle
	Update  JobHandle
}
