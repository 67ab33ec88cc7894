package service

import (
	"context"
	"testing"
	"time"

	"quiz-extensions/internal/cache"
	"quiz-extensions/internal/domain"
	"quiz-extensions/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionConfig() SessionConfig {
	return SessionConfig{
		Presets:       []string{"150", "200", "300"},
		DefaultPreset: "150",
		PollInterval:  testPollInterval,
	}
}

func TestSessionRegistry_CreateAndGet(t *testing.T) {
	r := NewSessionRegistry(newScriptedJobs(), nil, nil, testSessionConfig(), nil)
	t.Cleanup(func() { _ = r.Close(context.Background()) })

	s, err := r.Create("42", "instructor-1")
	require.NoError(t, err)
	assert.True(t, util.IsULID(s.ID))
	assert.Equal(t, "42", s.Controller.CourseID())
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID, "42")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = r.Get(s.ID, "other-course")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = r.Get("missing", "42")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRegistry_CreateRejectsBadConfig(t *testing.T) {
	cfg := testSessionConfig()
	cfg.DefaultPreset = "999"
	r := NewSessionRegistry(newScriptedJobs(), nil, nil, cfg, nil)
	_, err := r.Create("42", "u")
	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestSessionRegistry_ReportSurvivesDismissal(t *testing.T) {
	jobs := newScriptedJobs()
	jobs.script(refreshURL, statusStep{status: &domain.JobStatus{Status: domain.JobStatusComplete, Percent: 100}})
	jobs.script(updateURL, statusStep{status: &domain.JobStatus{
		Status:        domain.JobStatusComplete,
		Percent:       100,
		StatusMsg:     "done",
		QuizList:      []domain.QuizTime{{Title: "Quiz 1", AddedTime: 10}},
		UnchangedList: []domain.UnchangedQuiz{},
	}})
	mem := newMemoryCache()
	advisory := NewAdvisoryService(jobs, mem, time.Minute, nil)
	require.NoError(t, mem.Set(context.Background(), cache.AdvisoryKey("42"), "true", time.Minute))

	r := NewSessionRegistry(jobs, NewReportCache(mem, time.Hour), advisory, testSessionConfig(), nil)
	t.Cleanup(func() { _ = r.Close(context.Background()) })

	s, err := r.Create("42", "u")
	require.NoError(t, err)
	chooseStudents(t, s.Controller, 1)
	require.NoError(t, s.Controller.Submit(context.Background()))
	waitForState(t, s.Controller, StateResultsReady)

	require.Eventually(t, func() bool { return mem.Has(cache.ReportKey(s.ID)) }, waitFor, waitTick)
	require.Eventually(t, func() bool { return !mem.Has(cache.AdvisoryKey("42")) }, waitFor, waitTick,
		"a completed refresh invalidates the advisory")

	s.Controller.Dismiss()
	report, err := r.Report(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "done", report.Message)
	assert.Equal(t, "Quiz 1", report.Updated.Rows[0].Title)

	require.NoError(t, r.Remove(context.Background(), s.ID, "42"))
	assert.False(t, mem.Has(cache.ReportKey(s.ID)))
	assert.Equal(t, 0, r.Len())
	assert.ErrorIs(t, r.Remove(context.Background(), s.ID, "42"), domain.ErrSessionNotFound)
}

func TestSessionRegistry_Close(t *testing.T) {
	jobs := newScriptedJobs()
	r := NewSessionRegistry(jobs, nil, nil, testSessionConfig(), nil)

	var sessions []*Session
	for i := 0; i < 5; i++ {
		s, err := r.Create("42", "u")
		require.NoError(t, err)
		chooseStudents(t, s.Controller, 1)
		require.NoError(t, s.Controller.Submit(context.Background()))
		sessions = append(sessions, s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, r.Close(ctx))
	assert.Equal(t, 0, r.Len())

	calls := jobs.Calls(updateURL)
	time.Sleep(10 * testPollInterval)
	assert.Equal(t, calls, jobs.Calls(updateURL))
	for _, s := range sessions {
		assert.ErrorIs(t, s.Controller.Submit(context.Background()), domain.ErrSessionNotFound)
	}
}
