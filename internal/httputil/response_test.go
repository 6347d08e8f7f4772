package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondErrorCarriesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusUnauthorized, "Unauthorized")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Unauthorized" || body["detail"] != "Unauthorized" {
		t.Errorf("unexpected body: %v", body)
	}
	if body["status"] != float64(http.StatusUnauthorized) {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusBadRequest, "bad", map[string]interface{}{"field": "ids"})

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["field"] != "ids" || body["message"] != "bad" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRespondMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondMessage(rec, http.StatusOK, "done")

	if rec.Body.String() != `{"message":"done"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}
