package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		total          int
		wantTotalPages int
	}{
		{"empty result", 1, 50, 0, 0},
		{"exact multiple", 1, 10, 100, 10},
		{"partial last page", 2, 10, 101, 11},
		{"single short page", 1, 50, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.total)
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.CurrentPage != tt.page || p.PerPage != tt.perPage || p.Total != tt.total {
				t.Errorf("Pagination = %+v, inputs not carried through", p)
			}
		})
	}
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Success(c, http.StatusOK, "done", gin.H{"id": 7})

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !env.Success || env.Message != "done" || env.Error != "" {
		t.Errorf("envelope = %+v, want success with message", env)
	}
	if env.Timestamp == "" {
		t.Error("envelope missing timestamp")
	}
}

func TestFailEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FailWithDetails(c, http.StatusBadRequest, "Validation failed", []string{"email: required"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if env.Success || env.Error != "Validation failed" || len(env.Details) != 1 {
		t.Errorf("envelope = %+v, want failed validation shape", env)
	}
}
