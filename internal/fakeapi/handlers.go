package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tasksync/internal/service"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("_limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid _limit")
			return
		}
		limit = n
	}

	s.mu.Lock()
	tasks := s.sortedLocked(limit)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	t, found := s.tasks[id]
	s.mu.Unlock()
	if !found {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.NewTask
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	t := service.Task{
		ID:        service.TaskID(strconv.Itoa(id)),
		Title:     in.Title,
		Completed: in.Completed,
		UserID:    in.UserID,
	}
	s.tasks[id] = t
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var patch service.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	s.mu.Lock()
	t, found := s.tasks[id]
	if found {
		t = patch.Apply(t)
		s.tasks[id] = t
	}
	s.mu.Unlock()

	if !found {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()

	if !found {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return 0, false
	}
	return id, true
}
