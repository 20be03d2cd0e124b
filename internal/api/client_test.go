package api_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vidgrab/internal/api"
	"github.com/ytget/vidgrab/internal/api/apitest"
)

func newClient(t *testing.T, baseURL string, opts ...api.Option) *api.Client {
	t.Helper()
	c, err := api.NewClient(baseURL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:8000", want: "http://localhost:8000"},
		{in: "localhost:8000", want: "http://localhost:8000"},
		{in: "https://api.example.com/v1/", want: "https://api.example.com/v1"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := api.NewClient(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.BaseURL())
		})
	}
}

func TestPing_AnyResponseIsReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status/test", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newClient(t, srv.URL).Ping(context.Background())

	assert.NoError(t, err)
}

func TestPing_TransportFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	err = newClient(t, "http://"+addr).Ping(context.Background())

	assert.Error(t, err)
}

func TestPing_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	err := newClient(t, srv.URL, api.WithProbeTimeout(50*time.Millisecond)).Ping(context.Background())

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCreateTask(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	id, err := newClient(t, srv.URL).CreateTask(context.Background(), api.CreateTaskRequest{
		URL:     "https://example.com/watch?v=1",
		Format:  "video",
		Quality: "720",
	})

	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	creates := srv.Creates()
	require.Len(t, creates, 1)
	assert.Equal(t, "720", creates[0].Quality)
}

func TestCreateTask_ServiceMessage(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.RejectCreate(http.StatusBadRequest, "Unsupported URL")

	_, err := newClient(t, srv.URL).CreateTask(context.Background(), api.CreateTaskRequest{
		URL: "https://example.com/x", Format: "audio", Quality: "best",
	})

	require.Error(t, err)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Unsupported URL", api.ServiceMessage(err))
}

func TestCreateTask_InvalidRequestNotSent(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, err := newClient(t, srv.URL).CreateTask(context.Background(), api.CreateTaskRequest{
		URL: "https://example.com/x", Format: "gif", Quality: "best",
	})

	assert.Error(t, err)
	assert.Empty(t, srv.Creates())
}

func TestTaskStatus(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.ScriptTask("abc",
		apitest.Step{Status: api.TaskStatus{Status: "downloading", Progress: 42.5}},
		apitest.Step{Status: api.TaskStatus{Status: "ready", Filename: "clip.mp4", FileSizeStr: "3.1 MB"}},
	)
	c := newClient(t, srv.URL)

	st, err := c.TaskStatus(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "downloading", st.Status)
	assert.InDelta(t, 42.5, st.Progress, 0.001)

	st, err = c.TaskStatus(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "ready", st.Status)
	assert.Equal(t, "clip.mp4", st.Filename)
	assert.Equal(t, "3.1 MB", st.FileSizeStr)
}

func TestTaskStatus_NotFound(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, err := newClient(t, srv.URL).TaskStatus(context.Background(), "gone")

	assert.ErrorIs(t, err, api.ErrTaskNotFound)
}

func TestTaskStatus_ServerError(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.ScriptTask("abc", apitest.Step{Code: http.StatusBadGateway, Status: api.TaskStatus{Message: "upstream down"}})

	_, err := newClient(t, srv.URL).TaskStatus(context.Background(), "abc")

	require.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrTaskNotFound)
	assert.Equal(t, "upstream down", api.ServiceMessage(err))
}

func TestFileURL(t *testing.T) {
	c := newClient(t, "https://api.example.com/v1")

	assert.Equal(t, "https://api.example.com/v1/file/a%20b", c.FileURL("a b").String())
}

func TestOpenFile(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()
	srv.ScriptTask("abc", apitest.Step{Status: api.TaskStatus{Status: "ready"}})

	body, name, err := newClient(t, srv.URL).OpenFile(context.Background(), "abc")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "media", string(data))
	assert.Equal(t, "abc.mp4", name)
	assert.Equal(t, 1, srv.FileCalls("abc"))
}
