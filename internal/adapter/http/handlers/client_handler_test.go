package handlers

import (
	"bytes"
	"encoding/json"
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

func TestClientHandler_CreateClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(t *testing.T) (*mocks.MockIClientUseCase, *gin.Engine) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIClientUseCase(ctrl)
		h := NewClientHandler(uc)
		r := gin.New()
		r.POST("/v1/clients", h.CreateClient)
		return uc, r
	}

	t.Run("invalid json", func(t *testing.T) {
		_, r := setup(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/clients", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid cnpj never reaches the usecase", func(t *testing.T) {
		_, r := setup(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/clients",
			bytes.NewBufferString(`{"name":"ACME","document_number":"12.345.678/0001-90","type":"PRIVATE"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("duplicate document", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Client{}, usecase.ErrClientAlreadyExists)

		req := httptest.NewRequest(http.MethodPost, "/v1/clients",
			bytes.NewBufferString(`{"name":"ACME","document_number":"11.222.333/0001-81","type":"PRIVATE"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, r := setup(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, c entities.Client) (entities.Client, error) {
			if c.Status != entities.ClientStatusProspect {
				t.Fatalf("expected default status, got %s", c.Status)
			}
			c.ID = "c1"
			return c, nil
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/clients",
			bytes.NewBufferString(`{"name":"ACME","document_number":"12.345.678/0001-95","type":"PRIVATE"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "c1" || body["name"] != "ACME" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestClientHandler_ListClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIClientUseCase(ctrl)
	h := NewClientHandler(uc)
	r := gin.New()
	r.GET("/v1/clients", h.ListClients)

	uc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, f entities.ClientFilter) (entities.Page[entities.Client], error) {
		if f.Search != "acme" || f.Status != entities.ClientStatusActive || f.Page != 2 {
			t.Fatalf("unexpected filter: %+v", f)
		}
		return entities.Page[entities.Client]{Items: []entities.Client{{ID: "c1"}}, Total: 11, Page: 2, Limit: 10}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clients?search=acme&status=ACTIVE&page=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["total"] != float64(11) || body["total_pages"] != float64(2) {
		t.Fatalf("unexpected response body: %s", w.Body.String())
	}

	bad := httptest.NewRequest(http.MethodGet, "/v1/clients?limit=1000", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, bad)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for limit above max, got %d", w.Code)
	}
}

func TestClientHandler_GetAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIClientUseCase(ctrl)
	h := NewClientHandler(uc)
	r := gin.New()
	r.GET("/v1/clients/:id", h.GetClient)
	r.PATCH("/v1/clients/:id", h.UpdateClient)
	r.DELETE("/v1/clients/:id", h.DeleteClient)

	uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Client{}, usecase.ErrClientNotFound)
	req := httptest.NewRequest(http.MethodGet, "/v1/clients/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	uc.EXPECT().Update(gomock.Any(), "c1", gomock.Any()).Return(entities.Client{}, usecase.ErrEmptyPatch)
	req = httptest.NewRequest(http.MethodPatch, "/v1/clients/c1", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	uc.EXPECT().Delete(gomock.Any(), "c1").Return(nil)
	req = httptest.NewRequest(http.MethodDelete, "/v1/clients/c1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestMapClientError(t *testing.T) {
	if got := mapClientError(usecase.ErrInvalidDocumentNumber); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapClientError(usecase.ErrClientAlreadyExists); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapClientError(usecase.ErrClientNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapClientError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
