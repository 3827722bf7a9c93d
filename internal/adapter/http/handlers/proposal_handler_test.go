package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"credito_tributario/internal/adapter/http/handlers/mocks"
	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func withActor(a entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(entities.WithActor(c.Request.Context(), a))
		c.Next()
	}
}

func newProposalRouter(h *ProposalHandler) *gin.Engine {
	r := gin.New()
	r.Use(withActor(entities.Actor{ID: "u1", Name: "Ana"}))
	r.POST("/v1/proposals", h.CreateProposal)
	r.GET("/v1/proposals/summary", h.GetSummary)
	r.PATCH("/v1/proposals/:id/status", h.UpdateStatus)
	r.PATCH("/v1/proposals/:id/submit", h.SubmitProposal)
	r.PATCH("/v1/proposals/:id/approve", h.ApproveProposal)
	r.PATCH("/v1/proposals/:id/reject", h.RejectProposal)
	r.PATCH("/v1/proposals/:id/convert", h.ConvertProposal)
	r.PATCH("/v1/proposals/:id/cancel", h.CancelProposal)
	return r
}

func TestProposalHandler_CreateProposal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIProposalUseCase(ctrl)
	r := newProposalRouter(NewProposalHandler(uc))

	uc.EXPECT().Create(gomock.Any(), gomock.Any(), entities.Actor{ID: "u1", Name: "Ana"}).
		DoAndReturn(func(_ any, p entities.Proposal, _ entities.Actor) (entities.Proposal, error) {
			if !p.TotalValue.Equal(decimal.RequireFromString("1500.50")) {
				t.Fatalf("unexpected total value: %s", p.TotalValue)
			}
			p.ID = "p1"
			p.Status = entities.ProposalStatusDraft
			return p, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/v1/proposals",
		bytes.NewBufferString(`{"client_id":"c1","title":"PIS/COFINS","total_value":"1500.50"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	actions, _ := body["actions"].(map[string]any)
	if body["total_value"] != "1500.50" || actions["can_submit"] != true {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/proposals", bytes.NewBufferString(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without client_id, got %d", w.Code)
	}
}

func TestProposalHandler_Shortcuts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		path   string
		status entities.ProposalStatus
	}{
		{"submit", entities.ProposalStatusAnalysis},
		{"approve", entities.ProposalStatusApproved},
		{"reject", entities.ProposalStatusRejected},
		{"convert", entities.ProposalStatusConverted},
		{"cancel", entities.ProposalStatusCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIProposalUseCase(ctrl)
			r := newProposalRouter(NewProposalHandler(uc))

			uc.EXPECT().UpdateStatus(gomock.Any(), "p1", tc.status, "motivo", gomock.Any()).
				Return(entities.Proposal{ID: "p1", Status: tc.status}, nil)

			req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/v1/proposals/p1/%s", tc.path),
				bytes.NewBufferString(`{"comments":"  motivo "}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
		})
	}

	t.Run("empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc))

		uc.EXPECT().UpdateStatus(gomock.Any(), "p1", entities.ProposalStatusApproved, "", gomock.Any()).
			Return(entities.Proposal{ID: "p1", Status: entities.ProposalStatusApproved}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/proposals/p1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("reject without comments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc))

		uc.EXPECT().UpdateStatus(gomock.Any(), "p1", entities.ProposalStatusRejected, "", gomock.Any()).
			Return(entities.Proposal{}, usecase.ErrCommentsRequired)

		req := httptest.NewRequest(http.MethodPatch, "/v1/proposals/p1/reject", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "COMMENTS_REQUIRED" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestProposalHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("legacy status name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc))

		uc.EXPECT().UpdateStatus(gomock.Any(), "p1", entities.ProposalStatusAnalysis, "", gomock.Any()).
			Return(entities.Proposal{ID: "p1", Status: entities.ProposalStatusAnalysis}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/proposals/p1/status", bytes.NewBufferString(`{"status":"PENDING"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc))

		req := httptest.NewRequest(http.MethodPatch, "/v1/proposals/p1/status", bytes.NewBufferString(`{"status":"SIGNED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("transition not allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc))

		uc.EXPECT().UpdateStatus(gomock.Any(), "p1", entities.ProposalStatusConverted, "", gomock.Any()).
			Return(entities.Proposal{}, fmt.Errorf("%w: DRAFT -> CONVERTED", usecase.ErrInvalidStatusTransition))

		req := httptest.NewRequest(http.MethodPatch, "/v1/proposals/p1/status", bytes.NewBufferString(`{"status":"CONVERTED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestProposalHandler_GetSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIProposalUseCase(ctrl)
	r := newProposalRouter(NewProposalHandler(uc))

	uc.EXPECT().Summary(gomock.Any(), "c1").Return(entities.ProposalSummary{
		ClientID: "c1",
		Total:    2,
		ByStatus: map[entities.ProposalStatus]int{entities.ProposalStatusDraft: 2},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/proposals/summary?client_id=c1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["total"] != float64(2) {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}
}

func TestMapProposalError(t *testing.T) {
	cases := map[error]int{
		usecase.ErrInvalidProposalTitle:   http.StatusBadRequest,
		usecase.ErrCommentsRequired:       http.StatusBadRequest,
		usecase.ErrProposalNotFound:       http.StatusNotFound,
		usecase.ErrClientNotFound:         http.StatusNotFound,
		usecase.ErrProposalStatusConflict: http.StatusConflict,
		usecase.ErrProposalLocked:         http.StatusConflict,
		errors.New("x"):                   http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := mapProposalError(err); got.HTTPStatus != want {
			t.Fatalf("%v: expected %d, got %d", err, want, got.HTTPStatus)
		}
	}
}
