package platform

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vidgrab/internal/api"
	"github.com/ytget/vidgrab/internal/api/apitest"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (r *recordingOpener) OpenURL(u *url.URL) error {
	r.urls = append(r.urls, u.String())
	return r.err
}

func newAPIClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	c, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	return c, srv
}

func TestBrowserTrigger_OpensFileURL(t *testing.T) {
	client, err := api.NewClient("http://127.0.0.1:8000")
	require.NoError(t, err)
	opener := &recordingOpener{}

	trigger := NewBrowserTrigger(opener, client, nil)
	require.NoError(t, trigger.Retrieve(context.Background(), "abc 1", "clip.mp4"))

	assert.Equal(t, []string{"http://127.0.0.1:8000/file/abc%201"}, opener.urls)
}

func TestBrowserTrigger_PropagatesOpenError(t *testing.T) {
	client, err := api.NewClient("http://127.0.0.1:8000")
	require.NoError(t, err)
	opener := &recordingOpener{err: errors.New("no browser")}

	err = NewBrowserTrigger(opener, client, nil).Retrieve(context.Background(), "abc", "")
	assert.Error(t, err)
}

func TestDiskSaver_SavesServedFile(t *testing.T) {
	client, srv := newAPIClient(t)
	srv.Script(apitest.Step{Status: api.TaskStatus{Status: "ready"}})
	id, err := client.CreateTask(context.Background(), api.CreateTaskRequest{URL: "https://example.com/v", Format: "video", Quality: "best"})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "Downloads")
	saver := NewDiskSaver(client, dir, nil)
	var saved []SavedFile
	saver.SetSavedCallback(func(f SavedFile) { saved = append(saved, f) })

	require.NoError(t, saver.Retrieve(context.Background(), id, "ignored.mp4"))
	require.NoError(t, saver.Retrieve(context.Background(), id, "ignored.mp4"))

	require.Len(t, saved, 2)
	assert.Equal(t, filepath.Join(dir, id+".mp4"), saved[0].Path)
	assert.Equal(t, filepath.Join(dir, id+" (1).mp4"), saved[1].Path)
	assert.Equal(t, int64(len("media")), saved[0].Size)

	data, err := os.ReadFile(saved[0].Path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("media"), data))
	assert.Equal(t, 2, srv.FileCalls(id))
}

func TestDiskSaver_UnknownTask(t *testing.T) {
	client, _ := newAPIClient(t)
	dir := t.TempDir()

	saver := NewDiskSaver(client, dir, nil)
	var failed []string
	saver.SetFailedCallback(func(taskID string, err error) { failed = append(failed, taskID) })

	err := saver.Retrieve(context.Background(), "missing", "x.mp4")

	assert.ErrorIs(t, err, api.ErrTaskNotFound)
	assert.Equal(t, []string{"missing"}, failed)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestDiskSaver_CancelledContext(t *testing.T) {
	client, _ := newAPIClient(t)
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewDiskSaver(client, dir, nil).Retrieve(ctx, "task-1", "x.mp4")

	assert.ErrorIs(t, err, context.Canceled)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}
