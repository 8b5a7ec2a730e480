package formapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/flow"
	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/store"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// HTTPError lets guards control the status code of a rejection.
type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type handler struct {
	opts Options
}

type errorResponse struct {
	Error       string   `json:"error"`
	Unsatisfied []string `json:"unsatisfied,omitempty"`
}

type formResponse struct {
	Data schema.Form `json:"data"`
}

type formListResponse struct {
	Data []schema.Form `json:"data"`
}

type submitRequest struct {
	Responses map[string]response.Value `json:"responses"`
}

type submitResponse struct {
	Data flow.Receipt `json:"data"`
}

func (h *handler) guarded(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.opts.Guard != nil {
			if err := h.opts.Guard(r); err != nil {
				code := http.StatusForbidden
				var httpErr HTTPError
				if errors.As(err, &httpErr) && httpErr.StatusCode() > 0 {
					code = httpErr.StatusCode()
				}
				writeError(w, code, err.Error(), nil)
				return
			}
		}
		next(w, r)
	})
}

func (h *handler) listForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.opts.Store.ListForms(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if forms == nil {
		forms = []schema.Form{}
	}
	writeJSON(w, http.StatusOK, formListResponse{Data: forms})
}

func (h *handler) createForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	created, err := h.opts.Store.CreateForm(r.Context(), r.PathValue("eventID"), form)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusCreated, formResponse{Data: created})
}

func (h *handler) loadForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.opts.Store.LoadForm(r.Context(), r.PathValue("eventID"), r.PathValue("formID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{Data: form})
}

func (h *handler) saveForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeForm(w, r)
	if !ok {
		return
	}
	saved, err := h.opts.Store.SaveForm(r.Context(), r.PathValue("eventID"), r.PathValue("formID"), form)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{Data: saved})
}

func (h *handler) deleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.opts.Store.DeleteForm(r.Context(), r.PathValue("eventID"), r.PathValue("formID")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// submitResponses runs the terminal gate against the stored schema before the
// payload crosses the submission boundary. Constraint issues and unsatisfied
// required fields come back as 422 so clients can highlight exact inputs.
func (h *handler) submitResponses(w http.ResponseWriter, r *http.Request) {
	form, err := h.opts.Store.LoadForm(r.Context(), r.PathValue("eventID"), r.PathValue("formID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var payload submitRequest
	if !h.decodeJSON(w, r, &payload) {
		return
	}

	snap := snapshotFromPayload(payload.Responses)
	lastStep := 0
	if form.IsMultiStep {
		lastStep = len(form.Steps) - 1
	}
	if !validation.CanSubmit(form, lastStep, snap) {
		writeError(w, http.StatusUnprocessableEntity, "required fields are missing",
			allUnsatisfied(form, snap))
		return
	}
	if issues := allIssues(form, snap); len(issues) > 0 {
		ids := make([]string, 0, len(issues))
		for _, issue := range issues {
			ids = append(ids, issue.FieldID)
		}
		writeError(w, http.StatusUnprocessableEntity, "responses violate field constraints", ids)
		return
	}

	receipt := flow.Receipt{ID: uuid.NewString(), Status: "accepted"}
	if h.opts.Submitter != nil {
		receipt, err = h.opts.Submitter.Submit(r.Context(), form.ID, snap)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error(), nil)
			return
		}
	}
	writeJSON(w, http.StatusCreated, submitResponse{Data: receipt})
}

func (h *handler) decodeForm(w http.ResponseWriter, r *http.Request) (schema.Form, bool) {
	var form schema.Form
	if !h.decodeJSON(w, r, &form) {
		return schema.Form{}, false
	}
	if err := form.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return schema.Form{}, false
	}
	return form, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	defer body.Close()

	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "request body is empty", nil)
			return false
		}
		writeError(w, http.StatusBadRequest, "malformed JSON: "+err.Error(), nil)
		return false
	}
	return true
}

func snapshotFromPayload(values map[string]response.Value) response.Snapshot {
	collector := response.NewCollector()
	for id, value := range values {
		collector.Set(id, value)
	}
	return collector.Snapshot()
}

func allUnsatisfied(form schema.Form, snap response.Snapshot) []string {
	if !form.IsMultiStep {
		return validation.Unsatisfied(form, 0, snap)
	}
	var ids []string
	for i := range form.Steps {
		ids = append(ids, validation.Unsatisfied(form, i, snap)...)
	}
	return ids
}

func allIssues(form schema.Form, snap response.Snapshot) []validation.Issue {
	if !form.IsMultiStep {
		return validation.CheckStep(form, 0, snap)
	}
	var issues []validation.Issue
	for i := range form.Steps {
		issues = append(issues, validation.CheckStep(form, i, snap)...)
	}
	return issues
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error(), nil)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error(), nil)
}

func writeError(w http.ResponseWriter, code int, message string, unsatisfied []string) {
	writeJSON(w, code, errorResponse{Error: message, Unsatisfied: unsatisfied})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
