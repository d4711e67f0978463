package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"netbelge/internal/model"
	"netbelge/internal/service"
	serviceMocks "netbelge/internal/service/mocks"
)

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("hello world"))
	require.NoError(t, err)
	if content != "" {
		require.NoError(t, writer.WriteField("content", content))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentFileService)
	app := newTestApp()
	app.Post("/api/documents/:id/files", UploadFile(mockSvc))

	t.Run("success", func(t *testing.T) {
		docID := uuid.NewString()
		body, contentType := multipartUpload(t, "ruhsat.pdf", "taranmış metin")

		expected := &model.DocumentFile{ID: uuid.NewString(), DocumentID: docID, Filename: "ruhsat.pdf", StoragePath: "imar/ruhsat/2024/ruhsat.pdf", Size: 11}
		mockSvc.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(in service.FileUpload) bool {
			return in.DocumentID == docID && in.Filename == "ruhsat.pdf" && in.Size == 11 && in.Content == "taranmış metin"
		})).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+docID+"/files", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.DocumentFile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, expected.StoragePath, result.StoragePath)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+uuid.NewString()+"/files", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("unknown document", func(t *testing.T) {
		docID := uuid.NewString()
		body, contentType := multipartUpload(t, "a.txt", "")
		mockSvc.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(in service.FileUpload) bool {
			return in.DocumentID == docID
		})).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+docID+"/files", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		docID := uuid.NewString()
		body, contentType := multipartUpload(t, "a.txt", "")
		mockSvc.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(in service.FileUpload) bool {
			return in.DocumentID == docID
		})).Return(nil, errors.New("db save failed: boom")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+docID+"/files", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "internal server error", decodeError(t, resp).Error.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestFileReadEndpoints(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentFileService)
	app := newTestApp()
	app.Get("/api/documents/:id/files", ListFiles(mockSvc))
	app.Get("/api/document-files/:id", GetFile(mockSvc))
	app.Get("/api/document-files/:id/download", DownloadFile(mockSvc))
	app.Delete("/api/document-files/:id", DeleteFile(mockSvc))

	t.Run("list", func(t *testing.T) {
		docID := uuid.NewString()
		mockSvc.On("List", mock.Anything, docID).Return([]model.DocumentFile{{ID: uuid.NewString()}, {ID: uuid.NewString()}}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/documents/"+docID+"/files", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var files []model.DocumentFile
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&files))
		assert.Len(t, files, 2)
	})

	t.Run("get", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Get", mock.Anything, id).Return(&model.DocumentFile{ID: id, Filename: "a.pdf"}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/document-files/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("download redirects", func(t *testing.T) {
		id := uuid.NewString()
		url := "http://minio:9000/belgeler/imar/a.pdf?X-Amz-Signature=abc"
		mockSvc.On("DownloadURL", mock.Anything, id).Return(url, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/document-files/"+id+"/download", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, url, resp.Header.Get("Location"))
	})

	t.Run("delete", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/document-files/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}
