package jobservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"quiz-extensions/internal/config"
	"quiz-extensions/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.JobServiceConfig {
	return config.JobServiceConfig{
		BaseURL:        baseURL,
		APIKey:         "secret-key",
		Timeout:        2 * time.Second,
		FilterPath:     "/filter/%s/",
		RefreshPath:    "/refresh/%s/",
		UpdatePath:     "/update/%s/",
		AdvisoryPath:   "/missing_quizzes/%s/",
		DefaultPerPage: 10,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(context.Background(), testConfig(srv.URL), nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsRelativeBaseURL(t *testing.T) {
	_, err := NewClient(context.Background(), testConfig("/relative"), nil)
	assert.Error(t, err)
}

func TestClient_SearchStudents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/filter/42/", r.URL.Path)
		assert.Equal(t, "smith", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"items":[{"id":"7","label":"Smith, Ann"}],"prev_page":1,"next_page":3}`)
	})

	page, err := c.SearchStudents(context.Background(), "42", "smith", 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{{ID: "7", Label: "Smith, Ann"}}, page.Items)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.PrevPage)
	assert.Equal(t, 3, page.NextPage)
}

func TestClient_SearchStudentsErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.SearchStudents(context.Background(), "42", "", 0)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_SubmitUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/update/42/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []interface{}{"1", "2"}, body["user_ids"])
		assert.Equal(t, float64(150), body["percent"])

		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"refresh_job_url":"/jobs/r1/","update_job_url":"/jobs/u1/"}`)
	})

	res, err := c.SubmitUpdate(context.Background(), "42", domain.BatchRequest{UserIDs: []string{"1", "2"}, Percent: "150"})
	require.NoError(t, err)
	assert.Equal(t, domain.JobHandle{Kind: domain.JobKindRefresh, URL: "/jobs/r1/"}, res.Refresh)
	assert.Equal(t, domain.JobHandle{Kind: domain.JobKindUpdate, URL: "/jobs/u1/"}, res.Update)
}

func TestClient_SubmitUpdateNonStandardNumbers(t *testing.T) {
	tests := []struct {
		percent domain.Percent
		want    interface{}
	}{
		{percent: "150", want: float64(150)},
		{percent: "+150", want: "+150"},
		{percent: "150.", want: "150."},
		{percent: "0150", want: "0150"},
		{percent: "Infinity", want: "Infinity"},
	}

	for _, tt := range tests {
		t.Run(string(tt.percent), func(t *testing.T) {
			var hits int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, tt.want, body["percent"])
				w.WriteHeader(http.StatusAccepted)
				_, _ = io.WriteString(w, `{"refresh_job_url":"/jobs/r1/","update_job_url":"/jobs/u1/"}`)
			})

			_, err := c.SubmitUpdate(context.Background(), "42", domain.BatchRequest{UserIDs: []string{"1"}, Percent: tt.percent})
			require.NoError(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
		})
	}
}

func TestClient_SubmitUpdateMissingURLs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"refresh_job_url":"/jobs/r1/"}`)
	})
	_, err := c.SubmitUpdate(context.Background(), "42", domain.BatchRequest{UserIDs: []string{"1"}, Percent: "200"})
	assert.Error(t, err)
}

func TestClient_SubmitRefresh(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/refresh/42/", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"refresh_job_url":"/jobs/r9/"}`)
	})

	h, err := c.SubmitRefresh(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, &domain.JobHandle{Kind: domain.JobKindRefresh, URL: "/jobs/r9/"}, h)
}

func TestClient_JobStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		body       string
		wantErr    bool
		wantStatus *domain.JobStatus
	}{
		{
			name:       "running",
			code:       http.StatusAccepted,
			body:       `{"percent":10,"status":"running","status_msg":"Working"}`,
			wantStatus: &domain.JobStatus{Percent: 10, Status: "running", StatusMsg: "Working"},
		},
		{
			name:       "empty record",
			code:       http.StatusAccepted,
			body:       `{}`,
			wantStatus: &domain.JobStatus{},
		},
		{
			name: "complete",
			code: http.StatusOK,
			body: `{"percent":100,"status":"complete","status_msg":"done","quiz_list":[{"title":"Q1","added_time":15}],"unchanged_list":[]}`,
			wantStatus: &domain.JobStatus{
				Percent:       100,
				Status:        "complete",
				StatusMsg:     "done",
				QuizList:      []domain.QuizTime{{Title: "Q1", AddedTime: 15}},
				UnchangedList: []domain.UnchangedQuiz{},
			},
		},
		{
			name:       "failed job",
			code:       http.StatusInternalServerError,
			body:       `{"error":true,"status_msg":"Job failed"}`,
			wantStatus: &domain.JobStatus{Status: "failed", StatusMsg: "Job failed", Error: true},
		},
		{
			name:       "unknown job key",
			code:       http.StatusNotFound,
			body:       `{"error":true,"status_msg":"abc is not a valid job key."}`,
			wantStatus: &domain.JobStatus{Status: "failed", StatusMsg: "abc is not a valid job key.", Error: true},
		},
		{
			name:    "bare server error",
			code:    http.StatusInternalServerError,
			body:    `<html>oops</html>`,
			wantErr: true,
		},
		{
			name:    "bad gateway",
			code:    http.StatusBadGateway,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/jobs/abc/", r.URL.Path)
				w.WriteHeader(tt.code)
				_, _ = io.WriteString(w, tt.body)
			})

			status, err := c.JobStatus(context.Background(), "/jobs/abc/")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestClient_JobStatusAbsoluteURL(t *testing.T) {
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"complete","percent":100}`)
	}))
	defer other.Close()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("base server must not be called for an absolute job url")
	})
	status, err := c.JobStatus(context.Background(), other.URL+"/jobs/x/")
	require.NoError(t, err)
	assert.True(t, status.IsComplete())
}

func TestClient_JobStatusTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := NewClient(context.Background(), testConfig(srv.URL), nil)
	require.NoError(t, err)
	srv.Close()

	_, err = c.JobStatus(context.Background(), "/jobs/abc/")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestClient_MissingQuizzes(t *testing.T) {
	for body, want := range map[string]bool{"true": true, "false": false, `"true"`: true} {
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/missing_quizzes/42/", r.URL.Path)
				_, _ = io.WriteString(w, body)
			})
			got, err := c.MissingQuizzes(context.Background(), "42")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestClient_MissingQuizzesBadBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "maybe")
	})
	_, err := c.MissingQuizzes(context.Background(), "42")
	assert.Error(t, err)
}
