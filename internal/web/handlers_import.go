package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/logging"
)

// importSnapshot is the session view returned by the import endpoints.
type importSnapshot struct {
	ID            string                `json:"id"`
	State         importer.State        `json:"state"`
	Headers       []string              `json:"headers"`
	Rows          []importer.Row        `json:"rows"`
	Mapping       importer.FieldMapping `json:"mapping"`
	Selection     []int                 `json:"selection"`
	AccountID     string                `json:"accountId,omitempty"`
	CanSubmit     bool                  `json:"canSubmit"`
	MissingFields []importer.Field      `json:"missingFields"`
}

func snapshot(id string, sess *importer.Session) importSnapshot {
	return importSnapshot{
		ID:            id,
		State:         sess.State(),
		Headers:       sess.Headers(),
		Rows:          sess.Rows(),
		Mapping:       sess.Mapping(),
		Selection:     sess.Selection(),
		AccountID:     sess.AccountID(),
		CanSubmit:     sess.CanSubmit(),
		MissingFields: sess.MissingFields(),
	}
}

// importSession resolves the {id} path parameter to a live session.
func (s *Server) importSession(r *http.Request) (string, *importer.Session, error) {
	id := chi.URLParam(r, "id")
	sess, err := s.imports.Get(id)
	if err != nil {
		return "", nil, err
	}
	return id, sess, nil
}

// handleCreateImport starts a session from an uploaded CSV. The file arrives
// either as the "file" part of a multipart form or as the raw request body.
func (s *Server) handleCreateImport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize

	var (
		id   string
		sess *importer.Session
	)
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		id, sess = s.imports.Create()
		if err := sess.Load(file, maxSize); err != nil {
			s.imports.Remove(id)
			s.respondError(w, r, err, statusFor(err))
			return
		}
		logging.FromContext(r.Context()).Info("import session created",
			"session_id", id, "filename", header.Filename, "rows", sess.RowCount())
	} else {
		id, sess = s.imports.Create()
		if err := sess.Load(r.Body, maxSize); err != nil {
			s.imports.Remove(id)
			s.respondError(w, r, err, statusFor(err))
			return
		}
		logging.FromContext(r.Context()).Info("import session created",
			"session_id", id, "rows", sess.RowCount())
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    snapshot(id, sess),
	})
}

func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.importSession(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondData(w, snapshot(id, sess))
}

// handleImportAccount sets the destination account, checking it exists so
// submission cannot fail later on a typo'd ID.
func (s *Server) handleImportAccount(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.importSession(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var req struct {
		AccountID uuid.UUID `json:"accountId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if _, err := s.store.GetAccount(r.Context(), req.AccountID); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	sess.SetAccount(req.AccountID.String())
	respondData(w, snapshot(id, sess))
}

// handleImportMapping applies header-to-field assignments. Assignments are
// per header, so the order they are applied in does not matter.
func (s *Server) handleImportMapping(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.importSession(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var req struct {
		Mappings map[string]importer.Field `json:"mappings"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	for header, field := range req.Mappings {
		if err := sess.SetMapping(header, field); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
	}
	respondData(w, snapshot(id, sess))
}

func (s *Server) handleImportSelection(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.importSession(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	var req struct {
		Action string `json:"action"`
		Index  int    `json:"index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "toggle":
		sess.Toggle(req.Index)
	case "all":
		sess.SelectAll()
	case "none":
		sess.SelectNone()
	default:
		s.respondError(w, r, fmt.Errorf("unknown selection action %q", req.Action), http.StatusBadRequest)
		return
	}
	respondData(w, snapshot(id, sess))
}

// handleImportSubmit runs the submission against the store. A mid-batch
// failure reports how many rows were created and which row stopped the run;
// rows already created stay in place.
func (s *Server) handleImportSubmit(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.importSession(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	log := logging.WithFields(r.Context(), "session_id", id)
	log.Info("import submit started", "selected", len(sess.Selection()))

	result := sess.Submit(r.Context(), s.store)
	if result.Err != nil && result.FailedRow == nil {
		// Refused before any row was attempted.
		s.respondError(w, r, result.Err, statusFor(result.Err))
		return
	}
	if result.Err != nil {
		log.Error("import submit failed",
			"inserted", result.Count, "failed_row", *result.FailedRow, "error", result.Err.Error())
		msg := MapError(result.Err)
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success":   false,
			"count":     result.Count,
			"failedRow": *result.FailedRow,
			"error": fmt.Sprintf("%d succeeded, row %d failed: %s",
				result.Count, *result.FailedRow, msg.Message),
			"code": msg.Code,
		})
		return
	}

	log.Info("import submit finished", "inserted", result.Count)
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"count":   result.Count,
		"data":    result.Created,
	})
}

func (s *Server) handleDeleteImport(w http.ResponseWriter, r *http.Request) {
	id, _, err := s.importSession(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.imports.Remove(id)
	respondData(w, map[string]any{"id": id})
}
