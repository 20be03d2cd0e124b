// Package history keeps the bounded list of completed downloads and writes it
// back to the local store as a unit after every change.
package history

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/ytget/vidgrab/internal/model"
	"github.com/ytget/vidgrab/internal/store"
)

// MaxEntries is the number of entries kept; older ones are evicted
const MaxEntries = 20

// Recorder appends completed tasks to the persisted history
type Recorder struct {
	mu      sync.Mutex
	store   store.Store
	entries []model.HistoryEntry
	logger  *slog.Logger
}

// NewRecorder loads the persisted history from s. A corrupt record is
// logged and treated as empty.
func NewRecorder(s store.Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{store: s, logger: logger}
	r.entries = r.load()
	return r
}

func (r *Recorder) load() []model.HistoryEntry {
	raw := r.store.String(store.KeyHistory)
	if raw == "" {
		return nil
	}
	var entries []model.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.logger.Warn("discarding unreadable history", "err", err)
		return nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Append prepends entry, truncates to MaxEntries and persists the list
func (r *Recorder) Append(entry model.HistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]model.HistoryEntry, 0, len(r.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, r.entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	r.entries = entries
	r.persist()
}

// persist must be called with r.mu held
func (r *Recorder) persist() {
	data, err := json.Marshal(r.entries)
	if err != nil {
		r.logger.Error("encode history", "err", err)
		return
	}
	r.store.SetString(store.KeyHistory, string(data))
}

// Clear empties the list and removes the persisted record
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.store.RemoveValue(store.KeyHistory)
}

// Entries returns a copy of the history, newest first
func (r *Recorder) Entries() []model.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.HistoryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
