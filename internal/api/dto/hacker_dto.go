package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hackforge/hackathon-service/internal/domain"
)

// FlexBool accepts a JSON boolean or its string form ("true", "false").
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid boolean %s", data)
	}
	*b = FlexBool(v)
	return nil
}

// CreateHackerRequest payload for POST /api/hacker.
type CreateHackerRequest struct {
	AccountID   string             `json:"accountId"`
	School      string             `json:"school"`
	Gender      string             `json:"gender"`
	NeedsBus    FlexBool           `json:"needsBus"`
	Application domain.Application `json:"application"`
}

// UpdateHackerRequest payload for PATCH /api/hacker/:id. The record id comes
// from the route; ids in the body are ignored and the owning account cannot
// be changed.
type UpdateHackerRequest struct {
	School      *string            `json:"school"`
	Gender      *string            `json:"gender"`
	NeedsBus    *FlexBool          `json:"needsBus"`
	Application domain.Application `json:"application"`
	Status      *string            `json:"status"`
}

// Patch converts the request into a store patch.
func (r UpdateHackerRequest) Patch() domain.HackerPatch {
	patch := domain.HackerPatch{
		School:      r.School,
		Gender:      r.Gender,
		Application: r.Application.WithoutResumeKey(),
	}
	if r.NeedsBus != nil {
		v := bool(*r.NeedsBus)
		patch.NeedsBus = &v
	}
	if r.Status != nil {
		if s := domain.HackerStatus(strings.TrimSpace(*r.Status)); s != "" {
			patch.Status = &s
		}
	}
	return patch
}

// UpdateStatusRequest payload for PATCH /api/hacker/status/:id.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// HackerResponse is the JSON view of a hacker application.
type HackerResponse struct {
	ID          string             `json:"id"`
	AccountID   string             `json:"accountId"`
	School      string             `json:"school"`
	Gender      string             `json:"gender"`
	NeedsBus    bool               `json:"needsBus"`
	Application domain.Application `json:"application"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// NewHackerResponse renders a hacker.
func NewHackerResponse(h *domain.Hacker) HackerResponse {
	app := h.Application
	if app == nil {
		app = domain.Application{}
	}
	return HackerResponse{
		ID:          h.ID,
		AccountID:   h.AccountID,
		School:      h.School,
		Gender:      h.Gender,
		NeedsBus:    h.NeedsBus,
		Application: app,
		Status:      string(h.Status),
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

var _ json.Unmarshaler = (*FlexBool)(nil)
