package service

import (
	"maps"

	"github.com/google/uuid"

	"github.com/hackforge/hackathon-service/internal/domain"
)

// HackerDetailsBuilder assembles the value persisted for a new application.
type HackerDetailsBuilder struct {
	details domain.HackerDetails
}

// NewHackerDetailsBuilder starts a builder with a fresh id and the Applied status.
func NewHackerDetailsBuilder() *HackerDetailsBuilder {
	return &HackerDetailsBuilder{details: domain.HackerDetails{
		ID:     uuid.NewString(),
		Status: domain.HackerStatusApplied,
	}}
}

func (b *HackerDetailsBuilder) AccountID(id string) *HackerDetailsBuilder {
	b.details.AccountID = id
	return b
}

func (b *HackerDetailsBuilder) School(school string) *HackerDetailsBuilder {
	b.details.School = school
	return b
}

func (b *HackerDetailsBuilder) Gender(gender string) *HackerDetailsBuilder {
	b.details.Gender = gender
	return b
}

func (b *HackerDetailsBuilder) NeedsBus(needsBus bool) *HackerDetailsBuilder {
	b.details.NeedsBus = needsBus
	return b
}

// Application stores a shallow copy of the form document.
func (b *HackerDetailsBuilder) Application(app domain.Application) *HackerDetailsBuilder {
	b.details.Application = maps.Clone(app)
	return b
}

// Build returns the finished details by value.
func (b *HackerDetailsBuilder) Build() domain.HackerDetails {
	details := b.details
	if details.Application == nil {
		details.Application = domain.Application{}
	}
	return details
}
