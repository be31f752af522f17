package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/service"
)

type stubElectionService struct {
	listResult   []entity.Election
	getResult    *entity.Election
	getErr       error
	createErr    error
	statusErr    error
	rebuildErr   error
	gotElection  *entity.Election
	gotStatus    entity.ElectionStatus
	gotStatusFor string
}

func (s *stubElectionService) List(ctx context.Context, status, electionType string) ([]entity.Election, error) {
	return s.listResult, nil
}

func (s *stubElectionService) Get(ctx context.Context, id string) (*entity.Election, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getResult, nil
}

func (s *stubElectionService) Create(ctx context.Context, e *entity.Election) error {
	s.gotElection = e
	e.ID = "E-created"
	return s.createErr
}

func (s *stubElectionService) Update(ctx context.Context, e *entity.Election) error {
	s.gotElection = e
	return s.getErr
}

func (s *stubElectionService) UpdateStatus(ctx context.Context, id string, status entity.ElectionStatus) error {
	s.gotStatusFor = id
	s.gotStatus = status
	return s.statusErr
}

func (s *stubElectionService) Delete(ctx context.Context, id string) error {
	return s.getErr
}

func (s *stubElectionService) RebuildTallies(ctx context.Context, id string) (*entity.TallyUpdate, error) {
	if s.rebuildErr != nil {
		return nil, s.rebuildErr
	}
	return &entity.TallyUpdate{TotalVotes: 3, TotalParticipants: 3}, nil
}

func newElectionRouter(stub *stubElectionService, votes *stubVoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if votes == nil {
		votes = &stubVoteService{}
	}
	h := NewElectionHandler(stub, votes)
	r.GET("/elections", h.List)
	r.GET("/elections/:id", h.Get)
	r.GET("/elections/:id/stats", h.Stats)
	r.POST("/elections", asUser("admin-1"), h.Create)
	r.PUT("/elections/:id", h.Update)
	r.PATCH("/elections/:id/status", h.UpdateStatus)
	r.DELETE("/elections/:id", h.Delete)
	r.POST("/elections/:id/tallies/rebuild", h.RebuildTallies)
	return r
}

func TestCreateElectionHandler(t *testing.T) {
	stub := &stubElectionService{}
	r := newElectionRouter(stub, nil)

	body := `{"title": "Pemilihan Ketua OSIS", "start_date": "2026-09-01", "end_date": "2026-09-08"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/elections", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body)
	}
	if stub.gotElection == nil {
		t.Fatal("service was not called")
	}
	if stub.gotElection.CreatedBy != "admin-1" {
		t.Errorf("created_by = %q, want admin-1", stub.gotElection.CreatedBy)
	}
	if stub.gotElection.Status != entity.ElectionPending {
		t.Errorf("status = %s, want pending", stub.gotElection.Status)
	}
	if !stub.gotElection.IsPublic {
		t.Error("is_public should default to true")
	}
}

func TestCreateElectionHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"start_date": "2026-09-01", "end_date": "2026-09-08"}`},
		{"bad start date", `{"title": "X", "start_date": "nanti", "end_date": "2026-09-08"}`},
		{"end before start", `{"title": "X", "start_date": "2026-09-08", "end_date": "2026-09-01"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newElectionRouter(&stubElectionService{}, nil)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/elections", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGetElectionHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		stub := &stubElectionService{
			getResult: &entity.Election{
				ID:    "E1",
				Title: "Pemilihan Ketua OSIS",
				Candidates: []entity.Candidate{
					{ID: "C1", Name: "Budi"},
				},
			},
		}
		r := newElectionRouter(stub, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/elections/E1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var election entity.Election
		if err := json.Unmarshal(w.Body.Bytes(), &election); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if election.ID != "E1" || len(election.Candidates) != 1 {
			t.Errorf("unexpected election: %+v", election)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r := newElectionRouter(&stubElectionService{getErr: service.ErrElectionNotFound}, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/elections/E404", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestUpdateStatusHandler(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		stub := &stubElectionService{}
		r := newElectionRouter(stub, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/elections/E1/status", strings.NewReader(`{"status": "active"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if stub.gotStatusFor != "E1" || stub.gotStatus != entity.ElectionActive {
			t.Errorf("service called with (%s, %s)", stub.gotStatusFor, stub.gotStatus)
		}
	})

	t.Run("unknown status value", func(t *testing.T) {
		r := newElectionRouter(&stubElectionService{}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/elections/E1/status", strings.NewReader(`{"status": "paused"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		r := newElectionRouter(&stubElectionService{statusErr: service.ErrInvalidStatusTransition}, nil)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/elections/E1/status", strings.NewReader(`{"status": "pending"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", w.Code)
		}
	})
}

func TestRebuildTalliesHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := newElectionRouter(&stubElectionService{}, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/elections/E1/tallies/rebuild", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp struct {
			Tally entity.TallyUpdate `json:"tally"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp.Tally.TotalVotes != 3 {
			t.Errorf("rebuilt total = %d, want 3", resp.Tally.TotalVotes)
		}
	})

	t.Run("unknown election", func(t *testing.T) {
		r := newElectionRouter(&stubElectionService{rebuildErr: service.ErrElectionNotFound}, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/elections/E404/tallies/rebuild", nil))
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestListElectionsHandler(t *testing.T) {
	stub := &stubElectionService{
		listResult: []entity.Election{
			{ID: "E1", Title: "Satu"},
			{ID: "E2", Title: "Dua"},
		},
	}
	r := newElectionRouter(stub, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/elections?status=active", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Elections []entity.Election `json:"elections"`
		Total     int               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 2 || len(resp.Elections) != 2 {
		t.Errorf("unexpected list response: %+v", resp)
	}
}
