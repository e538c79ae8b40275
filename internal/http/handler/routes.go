package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/YangSeungWon/pdf-history/internal/http/middleware"
	"github.com/YangSeungWon/pdf-history/internal/service"
)

// RouteConfig carries boundary-layer knobs that are none of the service
// layer's business: the auth key and the upload size cap.
type RouteConfig struct {
	APIKey         string
	MaxUploadBytes int64
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// validate ids and translate service errors; business logic stays below.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.RevisionService, cfg RouteConfig) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Authorization happens here at the boundary; the version store itself
	// takes no session or credential state.
	gate := middleware.APIKey(cfg.APIKey)

	app.Get("/revisions", gate, ListRevisions(svc))
	app.Post("/revisions", gate, UploadRevision(svc, cfg.MaxUploadBytes))
	app.Get("/revisions/:id", gate, GetRevision(svc))
	app.Get("/revisions/:id/file", gate, GetRevisionFile(svc))
	app.Put("/revisions/:id/memo", gate, UpdateRevisionMemo(svc))
	app.Delete("/revisions/:id", gate, DeleteRevision(svc))
	app.Get("/diff/:oldID/:newID", gate, CompareRevisions(svc))
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// ListRevisions returns all revision summaries, newest first.
func ListRevisions(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// UploadRevision accepts a multipart upload (field "file", optional "memo")
// and creates a new revision from it.
func UploadRevision(svc service.RevisionService, maxBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if maxBytes > 0 && fh.Size > maxBytes {
			return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the size limit")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		var memo *string
		if v := c.FormValue("memo"); v != "" {
			memo = &v
		}

		rev, err := svc.Upload(c.UserContext(), f, fh.Filename, memo)
		if err != nil {
			if errors.Is(err, service.ErrExtraction) {
				return writeError(c, fiber.StatusUnprocessableEntity, "EXTRACTION_FAILED", "could not extract text from the uploaded file")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(rev.Summary())
	}
}

// GetRevision returns a full revision including its extracted text.
func GetRevision(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rev, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rev)
	}
}

// GetRevisionFile streams the original uploaded binary of a revision.
func GetRevisionFile(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, rev, err := svc.GetFile(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+url.PathEscape(rev.DisplayName)+`"`)
		return c.SendStream(rc)
	}
}

type memoRequest struct {
	Memo string `json:"memo"`
}

// UpdateRevisionMemo replaces the memo of a revision in place.
func UpdateRevisionMemo(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req memoRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.UpdateMemo(c.UserContext(), id, req.Memo); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DeleteRevision removes a revision and its backing file.
func DeleteRevision(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CompareRevisions returns the line diff between two revisions' text.
func CompareRevisions(svc service.RevisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		oldID, okOld := parseID(c, "oldID")
		newID, okNew := parseID(c, "newID")
		if !okOld || !okNew {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Compare(c.UserContext(), oldID, newID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeServiceError translates service-level sentinel errors into the
// standard error envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "revision not found")
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
