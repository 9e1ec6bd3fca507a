package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, map[string]string{"msg": "ok"}, http.StatusCreated)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["msg"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, "user already exists", http.StatusBadRequest)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var body ErrorsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0].Msg != "user already exists" {
		t.Errorf("unexpected envelope: %+v", body)
	}
	if body.Errors[0].Param != "" {
		t.Errorf("expected empty param, got %s", body.Errors[0].Param)
	}
}

func TestRespondFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	errs := []FieldError{
		{Msg: "name is required", Param: "name"},
		{Msg: "please include a valid email", Param: "email"},
	}
	RespondFieldErrors(rec, errs, http.StatusBadRequest)

	var body ErrorsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(body.Errors))
	}
	if body.Errors[0].Param != "name" || body.Errors[1].Param != "email" {
		t.Errorf("unexpected params: %+v", body.Errors)
	}
}

func TestFieldErrorOmitsEmptyParam(t *testing.T) {
	raw, err := json.Marshal(FieldError{Msg: "server error"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"msg":"server error"}` {
		t.Errorf("unexpected encoding: %s", raw)
	}
}
