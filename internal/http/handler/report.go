package handler

import (
	"github.com/gofiber/fiber/v2"

	"reportdesk/internal/http/middleware"
	"reportdesk/internal/service"
)

type createReportRequest struct {
	Name string `json:"name"`
}

type updateReportRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// CreateReport handles POST /reports.
func CreateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createReportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		rep, err := svc.Create(c.UserContext(), middleware.UserID(c), req.Name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rep)
	}
}

// ListReports handles GET /reports.
func ListReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reps, err := svc.List(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(reps)
	}
}

// SearchReports handles GET /reports/search?q=.
func SearchReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return writeError(c, fiber.StatusBadRequest, "QUERY_REQUIRED", "query parameter q is required")
		}

		reps, err := svc.Search(c.UserContext(), middleware.UserID(c), query)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(reps)
	}
}

// GetReport handles GET /reports/:id.
func GetReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rep, err := svc.Get(c.UserContext(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rep)
	}
}

// UpdateReport handles PATCH /reports/:id.
func UpdateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateReportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		rep, err := svc.Update(c.UserContext(), c.Params("id"), middleware.UserID(c), service.UpdateReportInput{
			Name:    req.Name,
			Content: req.Content,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rep)
	}
}

// DeleteReport handles DELETE /reports/:id.
func DeleteReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id"), middleware.UserID(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestoreReport handles POST /reports/:id/restore.
func RestoreReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rep, err := svc.Restore(c.UserContext(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rep)
	}
}

// ListReportDocuments handles GET /reports/:id/documents with an optional q
// parameter for search. The report's existence and ownership are verified
// before listing its documents.
func ListReportDocuments(reports service.ReportService, documents service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rep, err := reports.Get(c.UserContext(), c.Params("id"), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}

		var docs any
		if query := c.Query("q"); query != "" {
			docs, err = documents.Search(c.UserContext(), rep.ID, query)
		} else {
			docs, err = documents.List(c.UserContext(), rep.ID)
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}
