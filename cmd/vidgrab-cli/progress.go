package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/ytget/vidgrab/internal/model"
)

// progressPrinter renders task updates as one line per change
type progressPrinter struct {
	w io.Writer

	mu        sync.Mutex
	lastState model.TaskState
	lastPct   int
	lastMsg   string
	done      chan model.Task
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{
		w:       w,
		lastPct: -1,
		done:    make(chan model.Task, 1),
	}
}

// Update is the manager callback. Terminal states are delivered on Done.
func (p *progressPrinter) Update(task model.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if task.State == model.TaskStateIdle {
		return
	}

	pct := int(task.Progress)
	if task.State == p.lastState && task.Message == p.lastMsg && pct == p.lastPct {
		return
	}
	p.lastState, p.lastMsg, p.lastPct = task.State, task.Message, pct

	line := task.GetStatusLabel()
	if task.State == model.TaskStateReady {
		line += fmt.Sprintf(" %q", task.GetDisplayTitle())
	}
	if progress := task.GetProgressLabel(); progress != "" {
		line += " " + progress
	}
	if task.Message != "" {
		line += " " + task.Message
	}
	fmt.Fprintln(p.w, line)

	if task.State.IsTerminal() {
		select {
		case p.done <- task:
		default:
		}
	}
}

// Done yields the first terminal task
func (p *progressPrinter) Done() <-chan model.Task {
	return p.done
}
