package platform

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []*fyne.Notification
}

func (r *recordingSender) SendNotification(n *fyne.Notification) {
	r.sent = append(r.sent, n)
}

func TestDesktopNotifier(t *testing.T) {
	sender := &recordingSender{}
	n := NewDesktopNotifier(sender)

	assert.True(t, n.Permitted())
	require.NoError(t, n.Notify("Download Ready!", "clip.mp4"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Download Ready!", sender.sent[0].Title)
	assert.Equal(t, "clip.mp4", sender.sent[0].Content)
}

func TestDesktopNotifier_NoApp(t *testing.T) {
	n := NewDesktopNotifier(nil)

	assert.False(t, n.Permitted())
	assert.Error(t, n.Notify("t", "b"))
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf, nil)

	assert.True(t, n.Permitted())
	require.NoError(t, n.Notify("Download Ready!", "clip.mp4"))
	require.NoError(t, n.Notify("Download Ready!", ""))

	assert.Equal(t, "Download Ready! clip.mp4\a\nDownload Ready!\a\n", buf.String())
}
