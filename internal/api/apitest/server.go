// Package apitest provides a scriptable in-process fake of the remote
// processing service for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/ytget/vidgrab/internal/api"
)

// Step is one scripted answer of GET /status/{task_id}. A zero Code means 200
// with Status as the body.
type Step struct {
	Code   int
	Status api.TaskStatus
}

// Server is a fake processing service. Statuses for a task are served from
// its script in order; the last step repeats once the script is exhausted.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	nextID       int
	createCode   int
	createMsg    string
	scripts      map[string][]Step
	defaultSteps []Step
	creates      []api.CreateTaskRequest
	statusCalls  map[string]int
	fileCalls    map[string]int
	fileBody     []byte
}

// NewServer starts a fake service; it is closed with t.Cleanup by the caller
func NewServer() *Server {
	s := &Server{
		scripts:     make(map[string][]Step),
		statusCalls: make(map[string]int),
		fileCalls:   make(map[string]int),
		fileBody:    []byte("media"),
	}

	r := chi.NewRouter()
	r.Get("/status/test", func(w http.ResponseWriter, r *http.Request) {
		// The real service has no task called "test".
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
	})
	r.Post("/download", s.handleCreate)
	r.Get("/status/{taskID}", s.handleStatus)
	r.Get("/file/{taskID}", s.handleFile)

	s.Server = httptest.NewServer(r)
	return s
}

// Script sets the status sequence served for every task created from now on
func (s *Server) Script(steps ...Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultSteps = steps
}

// ScriptTask sets the status sequence for one task id
func (s *Server) ScriptTask(taskID string, steps ...Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[taskID] = steps
}

// RejectCreate makes POST /download fail with code and message
func (s *Server) RejectCreate(code int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCode = code
	s.createMsg = message
}

// Creates returns the create requests received so far
func (s *Server) Creates() []api.CreateTaskRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.CreateTaskRequest, len(s.creates))
	copy(out, s.creates)
	return out
}

// StatusCalls returns how many status requests taskID received
func (s *Server) StatusCalls(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusCalls[taskID]
}

// FileCalls returns how many file requests taskID received
func (s *Server) FileCalls(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileCalls[taskID]
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req api.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}

	s.mu.Lock()
	s.creates = append(s.creates, req)
	if s.createCode != 0 {
		code, msg := s.createCode, s.createMsg
		s.mu.Unlock()
		writeJSON(w, code, map[string]string{"message": msg})
		return
	}
	s.nextID++
	id := fmt.Sprintf("task-%d", s.nextID)
	if _, ok := s.scripts[id]; !ok {
		s.scripts[id] = s.defaultSteps
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"task_id": id})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	s.mu.Lock()
	steps, ok := s.scripts[id]
	n := s.statusCalls[id]
	s.statusCalls[id] = n + 1
	s.mu.Unlock()

	if !ok || len(steps) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
		return
	}
	if n >= len(steps) {
		n = len(steps) - 1
	}
	step := steps[n]
	if step.Code != 0 && step.Code != http.StatusOK {
		writeJSON(w, step.Code, map[string]string{"message": step.Status.Message})
		return
	}
	writeJSON(w, http.StatusOK, step.Status)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	s.mu.Lock()
	s.fileCalls[id]++
	body := s.fileBody
	_, ok := s.scripts[id]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mp4"`, id))
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
