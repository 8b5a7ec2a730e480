package formapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/flow"
	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/store"
)

func testMux(t *testing.T, fns ...OptionFn) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	if _, err := RegisterRoutes(mux, "", fns...); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func apiForm() schema.Form {
	return schema.Form{
		Title: "Registration",
		Fields: []schema.Field{
			{ID: "name", Kind: schema.FieldKindText, Label: "Name", Required: true},
			{ID: "diet", Kind: schema.FieldKindCheckbox, Label: "Diet", Required: true, Options: []string{"vegan", "halal"}},
		},
	}
}

func TestFormCRUD(t *testing.T) {
	mux := testMux(t)

	created := doJSON(t, mux, http.MethodPost, "/api/events/ev1/forms", apiForm())
	if created.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", created.Code, created.Body.String())
	}
	var createdBody formResponse
	if err := json.Unmarshal(created.Body.Bytes(), &createdBody); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	formID := createdBody.Data.ID
	if formID == "" {
		t.Fatalf("create did not mint an id")
	}

	loaded := doJSON(t, mux, http.MethodGet, "/api/events/ev1/forms/"+formID, nil)
	if loaded.Code != http.StatusOK {
		t.Fatalf("load: status %d", loaded.Code)
	}

	update := createdBody.Data
	update.Title = "Updated"
	saved := doJSON(t, mux, http.MethodPut, "/api/events/ev1/forms/"+formID, update)
	if saved.Code != http.StatusOK {
		t.Fatalf("save: status %d body %s", saved.Code, saved.Body.String())
	}

	list := doJSON(t, mux, http.MethodGet, "/api/events/ev1/forms", nil)
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), "Updated") {
		t.Fatalf("list: status %d body %s", list.Code, list.Body.String())
	}

	deleted := doJSON(t, mux, http.MethodDelete, "/api/events/ev1/forms/"+formID, nil)
	if deleted.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", deleted.Code)
	}
	missing := doJSON(t, mux, http.MethodGet, "/api/events/ev1/forms/"+formID, nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("load after delete: status %d", missing.Code)
	}
}

func TestCreateRejectsMalformedSchema(t *testing.T) {
	mux := testMux(t)

	bad := apiForm()
	bad.Fields[1].Options = nil // option-backed kind without options
	rec := doJSON(t, mux, http.MethodPost, "/api/events/ev1/forms", bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
}

func seedForm(t *testing.T, s store.Store) schema.Form {
	t.Helper()
	created, err := s.CreateForm(context.Background(), "ev1", apiForm())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return created
}

func TestSubmitGate(t *testing.T) {
	memory := store.NewMemory()
	mux := testMux(t, WithStore(memory))
	form := seedForm(t, memory)
	path := "/api/events/ev1/forms/" + form.ID + "/responses"

	// missing required answers
	rec := doJSON(t, mux, http.MethodPost, path, map[string]any{
		"responses": map[string]any{"name": "Ada", "diet": []string{}},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("gate: status %d body %s", rec.Code, rec.Body.String())
	}
	var gateBody errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &gateBody); err != nil {
		t.Fatalf("decode gate body: %v", err)
	}
	if len(gateBody.Unsatisfied) != 1 || gateBody.Unsatisfied[0] != "diet" {
		t.Fatalf("unsatisfied = %v", gateBody.Unsatisfied)
	}

	// complete answers pass
	ok := doJSON(t, mux, http.MethodPost, path, map[string]any{
		"responses": map[string]any{"name": "Ada", "diet": []string{"vegan"}},
	})
	if ok.Code != http.StatusCreated {
		t.Fatalf("submit: status %d body %s", ok.Code, ok.Body.String())
	}
	var okBody submitResponse
	if err := json.Unmarshal(ok.Body.Bytes(), &okBody); err != nil {
		t.Fatalf("decode submit body: %v", err)
	}
	if okBody.Data.ID == "" || okBody.Data.Status != "accepted" {
		t.Fatalf("receipt = %+v", okBody.Data)
	}
}

func TestSubmitForwardsToSubmitter(t *testing.T) {
	memory := store.NewMemory()
	var gotFormID string
	submitter := flow.SubmitterFunc(func(_ context.Context, formID string, snap response.Snapshot) (flow.Receipt, error) {
		gotFormID = formID
		return flow.Receipt{ID: "ext-1", Status: "queued"}, nil
	})
	mux := testMux(t, WithStore(memory), WithSubmitter(submitter))
	form := seedForm(t, memory)

	rec := doJSON(t, mux, http.MethodPost, "/api/events/ev1/forms/"+form.ID+"/responses", map[string]any{
		"responses": map[string]any{"name": "Ada", "diet": []string{"halal"}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status %d body %s", rec.Code, rec.Body.String())
	}
	if gotFormID != form.ID {
		t.Fatalf("submitter saw form %q, want %q", gotFormID, form.ID)
	}
	if !strings.Contains(rec.Body.String(), "ext-1") {
		t.Fatalf("receipt not forwarded: %s", rec.Body.String())
	}
}

func TestSubmitterErrorPropagates(t *testing.T) {
	memory := store.NewMemory()
	submitter := flow.SubmitterFunc(func(context.Context, string, response.Snapshot) (flow.Receipt, error) {
		return flow.Receipt{}, errors.New("service down")
	})
	mux := testMux(t, WithStore(memory), WithSubmitter(submitter))
	form := seedForm(t, memory)

	rec := doJSON(t, mux, http.MethodPost, "/api/events/ev1/forms/"+form.ID+"/responses", map[string]any{
		"responses": map[string]any{"name": "Ada", "diet": []string{"halal"}},
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestGuardRejects(t *testing.T) {
	mux := testMux(t, WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no token")}
	}))

	rec := doJSON(t, mux, http.MethodGet, "/api/events/ev1/forms", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestMountPath(t *testing.T) {
	if got := MountPath(""); got != "/api/events" {
		t.Fatalf("MountPath() = %q", got)
	}
	if got := MountPath("/v1/"); got != "/v1/api/events" {
		t.Fatalf("MountPath(v1) = %q", got)
	}
}
