package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hackforge/hackathon-service/internal/api/dto"
	"github.com/hackforge/hackathon-service/internal/auth"
	"github.com/hackforge/hackathon-service/internal/domain"
	"github.com/hackforge/hackathon-service/internal/service"
)

const resumeFormField = "resume"

// HackerService is the application lifecycle consumed by HackerHandler.
type HackerService interface {
	Create(ctx context.Context, principal *domain.Account, input service.CreateHackerInput) (*domain.Hacker, error)
	Update(ctx context.Context, principal *domain.Account, id string, patch domain.HackerPatch) (*domain.Hacker, error)
	UpdateStatus(ctx context.Context, principal *domain.Account, id string, status domain.HackerStatus) (*domain.Hacker, error)
	UploadResume(ctx context.Context, principal *domain.Account, id string, data []byte, contentType string) (string, error)
	DownloadResume(ctx context.Context, principal *domain.Account, id string) ([]byte, error)
	Get(ctx context.Context, principal *domain.Account, id string) (*domain.Hacker, error)
	GetSelf(ctx context.Context, principal *domain.Account) (*domain.Hacker, error)
}

// HackerHandler exposes the hacker application endpoints.
type HackerHandler struct {
	hackers        HackerService
	maxResumeBytes int64
}

// NewHackerHandler constructs handler.
func NewHackerHandler(hackers HackerService, maxResumeBytes int64) *HackerHandler {
	return &HackerHandler{hackers: hackers, maxResumeBytes: maxResumeBytes}
}

// Create handles POST /api/hacker.
func (h *HackerHandler) Create(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CreateHackerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	hacker, err := h.hackers.Create(c.UserContext(), principal, service.CreateHackerInput{
		AccountID:   strings.TrimSpace(req.AccountID),
		School:      req.School,
		Gender:      req.Gender,
		NeedsBus:    bool(req.NeedsBus),
		Application: req.Application,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Hacker creation successful",
		"data":    dto.NewHackerResponse(hacker),
	})
}

// Self handles GET /api/hacker/self.
func (h *HackerHandler) Self(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	hacker, err := h.hackers.GetSelf(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHackerResponse(hacker)})
}

// Get handles GET /api/hacker/:id.
func (h *HackerHandler) Get(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	hacker, err := h.hackers.Get(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewHackerResponse(hacker)})
}

// Update handles PATCH /api/hacker/:id.
func (h *HackerHandler) Update(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateHackerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	hacker, err := h.hackers.Update(c.UserContext(), principal, c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Changed hacker information",
		"data":    dto.NewHackerResponse(hacker),
	})
}

// UpdateStatus handles PATCH /api/hacker/status/:id.
func (h *HackerHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}

	hacker, err := h.hackers.UpdateStatus(c.UserContext(), principal, c.Params("id"), domain.HackerStatus(status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Changed hacker status",
		"data":    fiber.Map{"status": string(hacker.Status)},
	})
}

// UploadResume handles POST /api/hacker/resume/:id as multipart/form-data.
func (h *HackerHandler) UploadResume(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	file, err := c.FormFile(resumeFormField)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "resume file required")
	}
	if h.maxResumeBytes > 0 && file.Size > h.maxResumeBytes {
		return fiber.NewError(http.StatusRequestEntityTooLarge, fmt.Sprintf("resume exceeds %d bytes", h.maxResumeBytes))
	}
	f, err := file.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable resume file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable resume file")
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key, err := h.hackers.UploadResume(c.UserContext(), principal, c.Params("id"), data, contentType)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Uploaded resume",
		"data":    fiber.Map{"filename": key},
	})
}

// DownloadResume handles GET /api/hacker/resume/:id.
func (h *HackerHandler) DownloadResume(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	data, err := h.hackers.DownloadResume(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resume-%s"`, c.Params("id")))
	return c.Send(data)
}

func principal(c *fiber.Ctx) (*domain.Account, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return p, nil
}
