package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"credito_tributario/internal/adapter/http/handlers/mocks"
	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/infrastructure/config"
	"credito_tributario/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIProposalUseCase, *mocks.MockISessionUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	proposals := mocks.NewMockIProposalUseCase(ctrl)
	sessions := mocks.NewMockISessionUseCase(ctrl)
	deps := &Dependencies{
		Clients:   mocks.NewMockIClientUseCase(ctrl),
		Proposals: proposals,
		Contracts: mocks.NewMockIContractUseCase(ctrl),
		Session:   sessions,
	}

	r, err := NewRouter(config.Config{JWTSecret: "s3cr3t"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return r, proposals, sessions
}

func TestRouter_Ping(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected ping to skip auth, got %d", w.Code)
	}
}

func TestRouter_SummaryIsNotAnID(t *testing.T) {
	r, proposals, _ := newTestRouter(t)
	proposals.EXPECT().Summary(gomock.Any(), "").Return(entities.ProposalSummary{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/proposals/summary", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRouter_RejectsInvalidToken(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRouter_AnonymousSession(t *testing.T) {
	r, _, sessions := newTestRouter(t)
	sessions.EXPECT().GetState(gomock.Any(), "anonymous").Return(usecase.SessionView{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/session", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
