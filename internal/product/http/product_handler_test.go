package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/iamRazzakk/storefront-api/internal/database"
	apperrors "github.com/iamRazzakk/storefront-api/internal/errors"
	"github.com/iamRazzakk/storefront-api/internal/httputil"
	"github.com/iamRazzakk/storefront-api/internal/pagination"
	"github.com/iamRazzakk/storefront-api/internal/product/domain"
	"github.com/iamRazzakk/storefront-api/internal/product/usecase/mocks"
)

// setupTestHandler creates a router serving the product routes with a mocked use case.
func setupTestHandler(t *testing.T) (*gin.Engine, *mocks.MockProductUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockProductUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	normalizer := httputil.NewErrorNormalizer("production", logger, zerolog.New(io.Discard))

	router := gin.New()
	router.Use(httputil.ErrorRenderer(normalizer))
	NewProductHandler(mockUseCase, logger).RegisterRoutes(router.Group("/api/v1"))

	return router, mockUseCase
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decodeFailure(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleProduct() *domain.Product {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:          bson.NewObjectID(),
		Name:        "Desk Lamp",
		Description: "An adjustable LED desk lamp",
		Price:       29.99,
		Category:    domain.CategoryElectronics,
		Status:      domain.StatusActive,
		SKU:         "PRD-000001",
		Images:      []string{},
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("Success_GeneratedSKU", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)
		expected := sampleProduct()

		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == "Desk Lamp" && p.SKU == "" && p.Status == domain.StatusActive && p.Stock == 0
		})).Return(expected, nil).Once()

		w, env := doRequest(t, router, http.MethodPost, "/api/v1/products", map[string]any{
			"name":        "Desk Lamp",
			"description": "An adjustable LED desk lamp",
			"price":       29.99,
			"category":    "electronics",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Product created successfully", env.Message)

		var product map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &product))
		assert.Equal(t, expected.ID.Hex(), product["id"])
		assert.Regexp(t, `^PRD-\d{6}$`, product["sku"])
		assert.Equal(t, []any{}, product["images"])
	})

	t.Run("Error_SchemaValidation", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/products", map[string]any{
			"name":        "Desk Lamp",
			"description": "An adjustable LED desk lamp",
			"price":       -1,
			"category":    "electronics",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, httputil.SourceSchema, resp.Source)
		assert.Equal(t, []apperrors.FieldIssue{{Path: "price", Message: "Price cannot be negative"}}, resp.Errors)
	})

	t.Run("Error_TypeMismatch", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/products",
			`{"name":"Desk Lamp","description":"An adjustable LED desk lamp","price":"10","category":"books"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, []apperrors.FieldIssue{{Path: "price", Message: "Expected number, received string"}}, resp.Errors)
	})

	t.Run("Error_TypeMismatchWithOtherViolations", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/products",
			`{"name":123,"description":"short","price":-1,"category":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, httputil.SourceSchema, resp.Source)

		paths := make([]string, 0, len(resp.Errors))
		for _, issue := range resp.Errors {
			paths = append(paths, issue.Path)
		}
		assert.Equal(t, []string{"category", "description", "name", "price"}, paths)
		assert.Contains(t, resp.Errors, apperrors.FieldIssue{Path: "name", Message: "Expected string, received number"})
	})

	t.Run("Error_MalformedBody", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/products", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, httputil.SourceTransport, resp.Source)
		assert.Equal(t, "Invalid request body", resp.Message)
	})

	t.Run("Error_DuplicateSKU", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, &apperrors.DuplicateKeyError{Field: "sku", Value: "PRD-000001"}).Once()

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/products", map[string]any{
			"name":        "Desk Lamp",
			"description": "An adjustable LED desk lamp",
			"price":       5,
			"category":    "other",
			"sku":         "prd-000001",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, "Duplicate entry", resp.Message)
		assert.Equal(t, []apperrors.FieldIssue{{Path: "sku", Message: "sku already exists"}}, resp.Errors)
	})
}

func TestProductHandler_List(t *testing.T) {
	t.Run("Success_FiltersAndPagination", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)

		filter := domain.Filter{Category: domain.CategoryBooks, Status: domain.StatusActive, Search: "go"}
		params := pagination.Params{Page: 2, Limit: 5, SortBy: "price", SortOrder: pagination.Asc}
		mockUseCase.On("List", mock.Anything, filter, params).
			Return(database.Page[domain.Product]{Items: []domain.Product{*sampleProduct()}, Total: 11}, nil).Once()

		w, env := doRequest(t, router, http.MethodGet,
			"/api/v1/products?page=2&limit=5&sortBy=price&sortOrder=asc&category=books&status=active&search=go", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Products fetched successfully", env.Message)

		var data struct {
			Products   []map[string]any `json:"products"`
			Pagination pagination.Meta  `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data.Products, 1)
		assert.Equal(t, pagination.Meta{CurrentPage: 2, TotalPages: 3, TotalItems: 11, ItemsPerPage: 5}, data.Pagination)
	})

	t.Run("Success_EmptyList", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, domain.Filter{}, mock.Anything).
			Return(database.Page[domain.Product]{}, nil).Once()

		w, env := doRequest(t, router, http.MethodGet, "/api/v1/products?page=abc", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"products":[],"pagination":{"currentPage":1,"totalPages":0,"totalItems":0,"itemsPerPage":10}}`,
			string(env.Data),
		)
	})
}

func TestProductHandler_ListByCategory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, domain.Filter{Category: domain.CategorySports}, mock.Anything).
			Return(database.Page[domain.Product]{}, nil).Once()

		w, env := doRequest(t, router, http.MethodGet, "/api/v1/products/category/sports?limit=3", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Products in sports category fetched successfully", env.Message)
		assert.JSONEq(t,
			`{"products":[],"category":"sports","pagination":{"currentPage":1,"totalPages":0,"totalItems":0,"itemsPerPage":3}}`,
			string(env.Data),
		)
	})

	t.Run("Error_InvalidCategory", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/products/category/toys", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, httputil.SourceSchema, resp.Source)
		assert.Equal(t, []apperrors.FieldIssue{{Path: "category", Message: "Invalid category"}}, resp.Errors)
	})
}

func TestProductHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)
		expected := sampleProduct()

		mockUseCase.On("Get", mock.Anything, expected.ID).Return(expected, nil).Once()

		w, env := doRequest(t, router, http.MethodGet, "/api/v1/products/"+expected.ID.Hex(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Product fetched successfully", env.Message)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			w, _ := doRequest(t, router, method, "/api/v1/products/not-an-id", "{}")

			assert.Equal(t, http.StatusBadRequest, w.Code, method)
			resp := decodeFailure(t, w)
			assert.Equal(t, httputil.SourceInvalidID, resp.Source)
			assert.Equal(t, "Invalid ID format", resp.Message)
		}
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)
		id := bson.NewObjectID()

		mockUseCase.On("Get", mock.Anything, id).Return(nil, domain.ErrProductNotFound).Once()

		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/products/"+id.Hex(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, "Product not found", resp.Message)
		assert.Equal(t, httputil.SourceNotFound, resp.Source)
	})
}

func TestProductHandler_Update(t *testing.T) {
	t.Run("Success_PartialUpdate", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)
		expected := sampleProduct()

		mockUseCase.On("Update", mock.Anything, expected.ID, mock.MatchedBy(func(p domain.ProductPatch) bool {
			return p.Price != nil && *p.Price == 0 && p.Name == nil && p.Status == nil
		})).Return(expected, nil).Once()

		w, env := doRequest(t, router, http.MethodPut, "/api/v1/products/"+expected.ID.Hex(), map[string]any{"price": 0})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Product updated successfully", env.Message)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		router, _ := setupTestHandler(t)

		w, _ := doRequest(t, router, http.MethodPut, "/api/v1/products/"+bson.NewObjectID().Hex(),
			map[string]any{"stock": 2.5})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeFailure(t, w)
		assert.Equal(t, []apperrors.FieldIssue{{Path: "stock", Message: "Stock must be an integer"}}, resp.Errors)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	t.Run("Success_ThenNotFound", func(t *testing.T) {
		router, mockUseCase := setupTestHandler(t)
		id := bson.NewObjectID()

		mockUseCase.On("Delete", mock.Anything, id).Return(nil).Once()
		mockUseCase.On("Delete", mock.Anything, id).Return(domain.ErrProductNotFound).Twice()

		w, env := doRequest(t, router, http.MethodDelete, "/api/v1/products/"+id.Hex(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Product deleted successfully", env.Message)
		assert.JSONEq(t, `{"id":"`+id.Hex()+`"}`, string(env.Data))

		for i := 0; i < 2; i++ {
			w, _ = doRequest(t, router, http.MethodDelete, "/api/v1/products/"+id.Hex(), nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
		}
	})
}
