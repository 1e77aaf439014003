package server

import (
	"strconv"

	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListVideos handles GET /api/v1/videos.
// Supported query parameters: page, pageSize, sortBy, sortDir, query (text
// search over title and description), owner (filter by channel).
func (s *Server) ListVideos(c *fiber.Ctx) error {
	p := parseViewParams(c)
	p.Filters = map[string]string{}
	if q := c.Query("query"); q != "" {
		p.Filters["query"] = q
	}
	if owner := c.Query("owner"); owner != "" {
		p.Filters["owner"] = owner
	}

	page, err := s.videoService.ListVideos(c.UserContext(), callerID(c), p)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetVideo handles GET /api/v1/videos/:id
func (s *Server) GetVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	row, err := s.videoService.GetVideo(c.UserContext(), id, callerID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"video": row})
}

// PublishVideo handles POST /api/v1/videos (multipart: video, thumbnail,
// title, description, duration).
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	in := service.PublishVideoInput{
		OwnerID:     mustUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}
	if d := c.FormValue("duration"); d != "" {
		if parsed, err := strconv.ParseFloat(d, 64); err == nil && parsed >= 0 {
			in.Duration = parsed
		}
	}

	videoFile, err := formUpload(c, "video")
	if err != nil {
		return models.RespondError(c, err)
	}
	defer videoFile.Close()
	in.Video = videoFile

	thumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return models.RespondError(c, err)
	}
	defer thumb.Close()
	in.Thumbnail = thumb

	video, err := s.videoService.PublishVideo(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"video": video})
}

// UpdateVideo handles PATCH /api/v1/videos/:id
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	in := service.UpdateVideoInput{
		UserID:      mustUserID(c),
		VideoID:     id,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	thumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return models.RespondError(c, err)
	}
	defer thumb.Close()
	in.Thumbnail = thumb

	video, err := s.videoService.UpdateVideo(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}

// TogglePublish handles PATCH /api/v1/videos/:id/toggle-publish
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	video, err := s.videoService.TogglePublish(c.UserContext(), id, mustUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"video": video})
}

// DeleteVideo handles DELETE /api/v1/videos/:id
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.videoService.DeleteVideo(c.UserContext(), id, mustUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Video deleted"})
}
