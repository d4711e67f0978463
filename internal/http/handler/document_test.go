package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"netbelge/internal/model"
	"netbelge/internal/service"
	serviceMocks "netbelge/internal/service/mocks"
	"netbelge/internal/storagepath"
)

func TestCreateDocumentType(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentTypeService)
	app := newTestApp()
	app.Post("/api/document-types", CreateDocumentType(mockSvc))

	departmentID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		in := service.DocumentTypeInput{DepartmentID: departmentID, Name: "Ruhsat", Path: "ruhsat/{yil}"}
		created := &model.DocumentType{
			ID: uuid.NewString(), DepartmentID: departmentID, Name: "Ruhsat", Path: "ruhsat/{yil}",
			Department: &model.Department{ID: departmentID, Path: "imar"},
		}
		mockSvc.On("Create", mock.Anything, in).Return(created, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/document-types", map[string]any{
			"department_id": departmentID,
			"name":          "Ruhsat",
			"path":          "ruhsat/{yil}",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "imar/ruhsat/{yil}", body["full_path"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad template", func(t *testing.T) {
		in := service.DocumentTypeInput{DepartmentID: departmentID, Name: "Ruhsat", Path: "{foo}"}
		mockSvc.On("Create", mock.Anything, in).
			Return(nil, &storagepath.ValidationError{Kind: storagepath.KindInvalidPlaceholder, Placeholder: "{foo}"}).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/document-types", map[string]any{
			"department_id": departmentID,
			"name":          "Ruhsat",
			"path":          "{foo}",
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_PLACEHOLDER", body.Error.Code)
		assert.Contains(t, body.Error.Message, "{foo}")
		mockSvc.AssertExpectations(t)
	})
}

func TestSections(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentTypeService)
	app := newTestApp()
	app.Get("/api/document-types/:id/sections", ListSections(mockSvc))
	app.Post("/api/document-types/:id/sections", AddSection(mockSvc))

	typeID := uuid.NewString()

	t.Run("list empty", func(t *testing.T) {
		mockSvc.On("ListSections", mock.Anything, typeID).Return(nil, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/document-types/"+typeID+"/sections", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body []model.DocumentSection
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotNil(t, body)
		assert.Empty(t, body)
	})

	t.Run("add", func(t *testing.T) {
		section := &model.DocumentSection{ID: uuid.NewString(), DocumentTypeID: typeID, Name: "Ekler"}
		mockSvc.On("AddSection", mock.Anything, typeID, service.SectionInput{Name: "Ekler"}).Return(section, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/document-types/"+typeID+"/sections", map[string]any{"name": "Ekler"}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestCreateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Post("/api/documents", CreateDocument(mockSvc))

	departmentID, typeID := uuid.NewString(), uuid.NewString()
	payload := func(date, no string) map[string]any {
		return map[string]any{
			"department_id":    departmentID,
			"document_type_id": typeID,
			"title":            "Yapı ruhsatı",
			"date":             date,
			"time":             "14:30",
			"document_no":      no,
		}
	}

	t.Run("success", func(t *testing.T) {
		in := service.DocumentInput{
			DepartmentID:   departmentID,
			DocumentTypeID: typeID,
			Title:          "Yapı ruhsatı",
			Date:           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Time:           strPtr("14:30"),
			DocumentNo:     "2024-117",
		}
		doc := &model.Document{ID: uuid.NewString(), Title: in.Title, Date: in.Date, Time: strPtr("14:30:00"), DocumentNo: in.DocumentNo}
		mockSvc.On("Create", mock.Anything, in).Return(doc, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/documents", payload("2024-03-05", "2024-117")))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "2024-03-05", body["date"])
		assert.Equal(t, "14:30:00", body["time"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad date", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/documents", payload("05.03.2024", "2024-117")))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Contains(t, body.Error.Message, "date")
	})

	t.Run("document number with edge dash", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.AnythingOfType("service.DocumentInput")).
			Return(nil, fmt.Errorf("document_no: %w", storagepath.ErrInvalidEdge)).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/documents", payload("2024-03-05", "-117")))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PATH_EDGE", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Get("/api/documents", ListDocuments(mockSvc))

	t.Run("filters", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		typeID := uuid.NewString()
		q := service.DocumentQuery{DocumentTypeID: typeID, DateFrom: &from, DateTo: &to, Limit: 10}

		res := &service.ListResult[model.Document]{
			Items: []model.Document{{ID: uuid.NewString(), Date: from}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, q).Return(res, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/documents?document_type_id="+typeID+"&date_from=2024-01-01&date_to=2024-12-31", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Data  []map[string]any `json:"data"`
			Total int              `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "2024-01-01", body.Data[0]["date"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid date", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents?date_from=yesterday", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_DATE_FROM", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.DocumentQuery{Limit: 10}).Return(nil, errors.New("db error")).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetAndDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := newTestApp()
	app.Get("/api/documents/:id", GetDocument(mockSvc))
	app.Delete("/api/documents/:id", DeleteDocument(mockSvc))

	t.Run("get", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(&model.Document{ID: id, Date: time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, id, body["id"])
	})

	t.Run("delete not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/documents/"+id, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/invalid-uuid", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}
