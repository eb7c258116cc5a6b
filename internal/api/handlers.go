package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pdxmph/contacts-mvc/internal/contact"
	"github.com/pdxmph/contacts-mvc/internal/db"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	// GET patterns also match HEAD; only GET is routed.
	if r.Method != http.MethodGet {
		s.handleNotFound(w, r)
		return
	}
	contacts, err := s.repo.ListContacts(r.Context())
	if err != nil {
		s.backendError(w, r, err)
		return
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	p := payloadFrom(r.Context())
	if p.ID == "" {
		writeError(w, http.StatusBadRequest, "missing required field: id")
		return
	}
	f := contact.Fields{Name: p.Name, Email: p.Email, Phone: p.Phone}
	if err := f.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := contact.Contact{ID: p.ID}.WithFields(f)
	if err := s.repo.CreateContact(r.Context(), c); err != nil {
		s.backendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	p := payloadFrom(r.Context())
	f := contact.Fields{Name: p.Name, Email: p.Email, Phone: p.Phone}
	if err := f.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := contact.Contact{ID: r.PathValue("id")}.WithFields(f)
	if err := s.repo.UpdateContact(r.Context(), c); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.backendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteContact(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.backendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "contact deleted"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) backendError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("backend failure", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
