package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"credito_tributario/internal/adapter/http/handlers/mocks"
	"credito_tributario/internal/domain/entities"
	"credito_tributario/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestContractHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*mocks.MockIContractUseCase, *gin.Engine) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIContractUseCase(ctrl)
		h := NewContractHandler(uc)
		r := gin.New()
		r.GET("/v1/contracts", h.ListContracts)
		r.GET("/v1/contracts/:id", h.GetContract)
		r.PATCH("/v1/contracts/:id", h.UpdateContract)
		r.DELETE("/v1/contracts/:id", h.DeleteContract)
		return uc, r
	}

	t.Run("list by proposal", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, f entities.ContractFilter) (entities.Page[entities.Contract], error) {
			if f.ProposalID != "p1" {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return entities.Page[entities.Contract]{Items: []entities.Contract{{ID: "k1"}}, Total: 1, Page: 1, Limit: 10}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/contracts?proposal_id=p1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid status payload", func(t *testing.T) {
		_, r := setup(t)
		req := httptest.NewRequest(http.MethodPatch, "/v1/contracts/k1", bytes.NewBufferString(`{"status":"SIGNED"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("update period error", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Update(gomock.Any(), "k1", gomock.Any()).Return(entities.Contract{}, usecase.ErrInvalidContractPeriod)

		req := httptest.NewRequest(http.MethodPatch, "/v1/contracts/k1",
			bytes.NewBufferString(`{"end_date":"2020-01-01T00:00:00Z"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().GetByID(gomock.Any(), "k9").Return(entities.Contract{}, usecase.ErrContractNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/contracts/k9", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("delete backend failure", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Delete(gomock.Any(), "k1").Return(errors.New("dynamo down"))

		req := httptest.NewRequest(http.MethodDelete, "/v1/contracts/k1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
