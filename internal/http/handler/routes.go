package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"reportdesk/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Probes stay
// unauthenticated; everything under /reports and /documents requires the
// auth middleware passed in by the caller.
func RegisterRoutes(app *fiber.App, db *sql.DB, reports service.ReportService, documents service.DocumentService, auth fiber.Handler) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	r := app.Group("/reports", auth)
	r.Post("/", CreateReport(reports))
	r.Get("/", ListReports(reports))
	r.Get("/search", SearchReports(reports))
	r.Get("/:id", GetReport(reports))
	r.Patch("/:id", UpdateReport(reports))
	r.Delete("/:id", DeleteReport(reports))
	r.Post("/:id/restore", RestoreReport(reports))
	r.Get("/:id/documents", ListReportDocuments(reports, documents))

	d := app.Group("/documents", auth)
	d.Post("/", UploadDocument(reports, documents))
	d.Get("/:id", GetDocument(documents))
	d.Patch("/:id", UpdateDocument(documents))
	d.Delete("/:id", DeleteDocument(documents))
	d.Post("/:id/restore", RestoreDocument(documents))
	d.Get("/:id/download", DownloadDocument(documents))
}
