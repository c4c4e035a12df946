package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"daynote-ai/internal/service"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation error",
			err:        &service.ValidationError{Field: "date", Message: "bad"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "validation error on field date: bad",
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: details", service.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid input",
		},
		{
			name:       "not found",
			err:        service.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "resource not found",
		},
		{
			name:       "external service",
			err:        fmt.Errorf("%w: connection refused", service.ErrExternalService),
			wantStatus: http.StatusBadGateway,
			wantBody:   "external service error",
		},
		{
			name:       "model response",
			err:        fmt.Errorf("%w: not JSON", service.ErrModelResponse),
			wantStatus: http.StatusBadGateway,
			wantBody:   "model returned an unusable response",
		},
		{
			name:       "unknown error falls back to default message",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)

			handleServiceError(w, r, tt.err, "something went wrong")

			if w.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Error != tt.wantBody {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantBody)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusCreated, map[string]string{"key": "value"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %v, want %v", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["key"] != "value" {
		t.Errorf("body = %v", body)
	}
}
