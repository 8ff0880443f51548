package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reportdesk/internal/http/middleware"
	"reportdesk/internal/model"
	"reportdesk/internal/service"
	serviceMocks "reportdesk/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

// withUser stands in for the auth middleware and injects a fixed user id.
func withUser(c *fiber.Ctx) error {
	c.Locals(middleware.UserIDLocalKey, testUserID)
	return c.Next()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Post("/reports", withUser, CreateReport(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Report{ID: uuid.New().String(), UserID: testUserID, Name: "Q4 Report"}
		mockSvc.On("Create", mock.Anything, testUserID, "Q4 Report").Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(`{"name":"Q4 Report"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Report
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid name", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, testUserID, "").Return(nil, service.ErrNameRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(`{"name":""}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})
}

func TestListReports(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Get("/reports", withUser, ListReports(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, testUserID).
			Return([]model.Report{{ID: uuid.New().String(), Name: "One"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Report
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, testUserID).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearchReports(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Get("/reports/search", withUser, SearchReports(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, testUserID, "budget").
			Return([]model.Report{{ID: uuid.New().String(), Name: "Budget"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports/search?q=budget", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/reports/search", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "QUERY_REQUIRED", res.Error.Code)
	})
}

func TestGetReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Get("/reports/:id", withUser, GetReport(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id, testUserID).
			Return(&model.Report{ID: id, UserID: testUserID}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Report
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id, testUserID).Return(nil, service.ErrReportNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("foreign report", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id, testUserID).Return(nil, service.ErrUnauthorized).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FORBIDDEN", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Patch("/reports/:id", withUser, UpdateReport(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Update", mock.Anything, id, testUserID, mock.MatchedBy(func(in service.UpdateReportInput) bool {
			return in.Name != nil && *in.Name == "Renamed" && in.Content == nil
		})).Return(&model.Report{ID: id, Name: "Renamed"}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/reports/"+id, strings.NewReader(`{"name":"Renamed"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no fields", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Update", mock.Anything, id, testUserID, service.UpdateReportInput{}).
			Return(nil, service.ErrNoFields).Once()

		req := httptest.NewRequest(http.MethodPatch, "/reports/"+id, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Delete("/reports/:id", withUser, DeleteReport(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id, testUserID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/reports/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id, testUserID).Return(service.ErrReportNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/reports/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRestoreReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Post("/reports/:id/restore", withUser, RestoreReport(mockSvc))

	id := uuid.New().String()
	mockSvc.On("Restore", mock.Anything, id, testUserID).
		Return(&model.Report{ID: id, UserID: testUserID}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/reports/"+id+"/restore", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestListReportDocuments(t *testing.T) {
	mockReports := new(serviceMocks.MockReportService)
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/reports/:id/documents", withUser, ListReportDocuments(mockReports, mockDocs))

	t.Run("lists documents of an owned report", func(t *testing.T) {
		id := uuid.New().String()
		mockReports.On("Get", mock.Anything, id, testUserID).
			Return(&model.Report{ID: id, UserID: testUserID}, nil).Once()
		mockDocs.On("List", mock.Anything, id).
			Return([]model.Document{{ID: uuid.New().String(), Filename: "a.txt"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports/"+id+"/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
		mockReports.AssertExpectations(t)
		mockDocs.AssertExpectations(t)
	})

	t.Run("q parameter switches to search", func(t *testing.T) {
		id := uuid.New().String()
		mockReports.On("Get", mock.Anything, id, testUserID).
			Return(&model.Report{ID: id, UserID: testUserID}, nil).Once()
		mockDocs.On("Search", mock.Anything, id, "invoice").
			Return([]model.Document{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports/"+id+"/documents?q=invoice", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockReports.AssertExpectations(t)
		mockDocs.AssertExpectations(t)
	})

	t.Run("foreign report lists nothing", func(t *testing.T) {
		mockReports := new(serviceMocks.MockReportService)
		mockDocs := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Get("/reports/:id/documents", withUser, ListReportDocuments(mockReports, mockDocs))

		id := uuid.New().String()
		mockReports.On("Get", mock.Anything, id, testUserID).
			Return(nil, service.ErrUnauthorized).Once()

		req := httptest.NewRequest(http.MethodGet, "/reports/"+id+"/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockDocs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func multipartUpload(t *testing.T, reportID, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if reportID != "" {
		require.NoError(t, writer.WriteField("report_id", reportID))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		part.Write(content)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockReports := new(serviceMocks.MockReportService)
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents", withUser, UploadDocument(mockReports, mockDocs))

	t.Run("success", func(t *testing.T) {
		reportID := uuid.New().String()
		body, contentType := multipartUpload(t, reportID, "test.txt", []byte("hello world"))

		mockReports.On("Get", mock.Anything, reportID, testUserID).
			Return(&model.Report{ID: reportID, UserID: testUserID}, nil).Once()
		expectedDoc := &model.Document{ID: uuid.New().String(), ReportID: reportID, Filename: "test.txt"}
		mockDocs.On("Upload", mock.Anything, reportID, []byte("hello world"), "test.txt").
			Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockReports.AssertExpectations(t)
		mockDocs.AssertExpectations(t)
	})

	t.Run("missing report_id", func(t *testing.T) {
		body, contentType := multipartUpload(t, "", "test.txt", []byte("hello"))

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "REPORT_ID_REQUIRED", res.Error.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		reportID := uuid.New().String()
		body, contentType := multipartUpload(t, reportID, "", nil)

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("foreign report", func(t *testing.T) {
		mockReports := new(serviceMocks.MockReportService)
		mockDocs := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/documents", withUser, UploadDocument(mockReports, mockDocs))

		reportID := uuid.New().String()
		body, contentType := multipartUpload(t, reportID, "test.txt", []byte("hello"))

		mockReports.On("Get", mock.Anything, reportID, testUserID).
			Return(nil, service.ErrUnauthorized).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockDocs.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate content", func(t *testing.T) {
		reportID := uuid.New().String()
		body, contentType := multipartUpload(t, reportID, "copy.txt", []byte("same bytes"))

		mockReports.On("Get", mock.Anything, reportID, testUserID).
			Return(&model.Report{ID: reportID, UserID: testUserID}, nil).Once()
		mockDocs.On("Upload", mock.Anything, reportID, []byte("same bytes"), "copy.txt").
			Return(nil, service.ErrDuplicateDocument).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DUPLICATE_DOCUMENT", res.Error.Code)
		mockDocs.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id", withUser, GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.Document{ID: id, Filename: "test.txt"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Patch("/documents/:id", withUser, UpdateDocument(mockSvc))

	id := uuid.New().String()
	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateDocumentInput) bool {
		return in.Notes != nil && *in.Notes == "reviewed" && in.Filename == nil
	})).Return(&model.Document{ID: id, Notes: "reviewed"}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/documents/"+id, strings.NewReader(`{"notes":"reviewed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents/:id", withUser, DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.New("bucket unreachable")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRestoreDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents/:id/restore", withUser, RestoreDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Restore", mock.Anything, id).
			Return(&model.Document{ID: id}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("blocked by active duplicate", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Restore", mock.Anything, id).Return(nil, service.ErrDuplicateDocument).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/download", withUser, DownloadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("DownloadURL", mock.Anything, id).
			Return("https://minio.local/presigned", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://minio.local/presigned", body["url"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("DownloadURL", mock.Anything, id).Return("", service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockReports := new(serviceMocks.MockReportService)
	mockDocs := new(serviceMocks.MockDocumentService)
	RegisterRoutes(app, db, mockReports, mockDocs, withUser)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
