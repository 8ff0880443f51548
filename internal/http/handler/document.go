package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"reportdesk/internal/http/middleware"
	"reportdesk/internal/service"
)

type updateDocumentRequest struct {
	Filename *string `json:"filename"`
	Notes    *string `json:"notes"`
}

// UploadDocument handles POST /documents (multipart/form-data with fields
// file and report_id). Report existence and ownership are verified before
// the upload pipeline runs.
func UploadDocument(reports service.ReportService, documents service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reportID := c.FormValue("report_id")
		if reportID == "" {
			return writeError(c, fiber.StatusBadRequest, "REPORT_ID_REQUIRED", "report_id is required")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		rep, err := reports.Get(c.UserContext(), reportID, middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		doc, err := documents.Upload(c.UserContext(), rep.ID, data, fh.Filename)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument handles GET /documents/:id.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// UpdateDocument handles PATCH /documents/:id.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := svc.Update(c.UserContext(), c.Params("id"), service.UpdateDocumentInput{
			Filename: req.Filename,
			Notes:    req.Notes,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument handles DELETE /documents/:id.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestoreDocument handles POST /documents/:id/restore.
func RestoreDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Restore(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument handles GET /documents/:id/download: it returns a
// time-limited presigned URL for the document's bytes.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.DownloadURL(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
