package server

import (
	"errors"
	"mime/multipart"
	"strings"
	"unicode"

	"vidtube/internal/models"
	"vidtube/internal/service"
	"vidtube/internal/view"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// callerID returns the authenticated user's ID, or zero for anonymous
// requests (routes behind OptionalAuth).
func callerID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// mustUserID returns the authenticated user's ID. Routes behind AuthRequired
// always have it set.
func mustUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// parseViewParams extracts pagination and sorting query parameters. Values
// are validated downstream: unknown sort fields are rejected, out-of-range
// page numbers are clamped.
func parseViewParams(c *fiber.Ctx) view.Params {
	return view.Params{
		SortBy:   c.Query("sortBy"),
		SortDir:  c.Query("sortDir"),
		Page:     c.QueryInt("page", 0),
		PageSize: c.QueryInt("pageSize", 0),
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "channelId" -> "channel ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// formUpload opens a multipart form file as a service upload. A missing file
// returns (nil, nil) so optional uploads stay optional.
func formUpload(c *fiber.Ctx, field string) (*service.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return fileUploadFromHeader(fh)
}

func fileUploadFromHeader(fh *multipart.FileHeader) (*service.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, models.NewValidationError("Failed to read uploaded file")
	}
	return &service.FileUpload{
		Reader:      f,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
