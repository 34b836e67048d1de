package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/hackforge/hackathon-service/internal/config"
	"github.com/hackforge/hackathon-service/internal/domain"
	"github.com/hackforge/hackathon-service/internal/events"
	"github.com/hackforge/hackathon-service/internal/notify"
	"github.com/hackforge/hackathon-service/internal/observability"
	"github.com/hackforge/hackathon-service/internal/pipeline"
	"github.com/hackforge/hackathon-service/internal/repository"
	"github.com/hackforge/hackathon-service/internal/storage"
	apperrors "github.com/hackforge/hackathon-service/pkg/util/errorutil"
)

const (
	pipelineCreate   = "create"
	pipelineUpdate   = "update"
	pipelineUpload   = "upload_resume"
	pipelineDownload = "download_resume"
	pipelineGet      = "get"
)

// NotificationSettings configures status-change emails.
type NotificationSettings struct {
	From      string
	Templates map[domain.HackerStatus]config.StatusTemplate
}

// HackerDependencies bundles collaborators for the hacker service.
type HackerDependencies struct {
	AccountRepo repository.AccountRepository
	HackerRepo  repository.HackerRepository
	Artifacts   storage.ArtifactStore
	Notifier    notify.Notifier
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	// Tracer receives one span per pipeline stage. Nil uses the global provider.
	Tracer trace.Tracer
}

// CreateHackerInput is the raw applicant payload.
type CreateHackerInput struct {
	AccountID   string
	School      string
	Gender      string
	NeedsBus    bool
	Application domain.Application
}

// HackerRequest is the per-call context shared by the stages of one
// pipeline run.
type HackerRequest struct {
	HackerID  string
	Principal *domain.Account

	Input   CreateHackerInput
	Details domain.HackerDetails
	Patch   domain.HackerPatch

	Hacker *domain.Hacker
	Email  string

	Resume            []byte
	ResumeContentType string
	ResumeKey         string
	ResumeData        []byte
}

// HackerService runs the hacker application lifecycle.
type HackerService struct {
	accounts   repository.AccountRepository
	hackers    repository.HackerRepository
	artifacts  storage.ArtifactStore
	notifier   notify.Notifier
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	notification NotificationSettings
	statuses     config.HackerConfig
	now          func() time.Time

	pipelines map[string]*pipeline.Executor[HackerRequest]
}

// NewHackerService builds the service. Settings are copied; the service
// never reads configuration from the environment.
func NewHackerService(deps HackerDependencies, statuses config.HackerConfig, notification NotificationSettings) *HackerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &HackerService{
		accounts:     deps.AccountRepo,
		hackers:      deps.HackerRepo,
		artifacts:    deps.Artifacts,
		notifier:     deps.Notifier,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       logger,
		notification: notification,
		statuses:     statuses,
		now:          time.Now,
		pipelines:    make(map[string]*pipeline.Executor[HackerRequest]),
	}
	for _, name := range []string{pipelineCreate, pipelineUpdate, pipelineUpload, pipelineDownload, pipelineGet} {
		opts := []pipeline.Option[HackerRequest]{pipeline.WithFailureHook[HackerRequest](s.stageFailed(name))}
		if deps.Tracer != nil {
			opts = append(opts, pipeline.WithTracer[HackerRequest](deps.Tracer))
		}
		s.pipelines[name] = pipeline.NewExecutor[HackerRequest]("hacker."+name, opts...)
	}
	return s
}

func (s *HackerService) stageFailed(name string) pipeline.FailureHook[HackerRequest] {
	return func(_ context.Context, r *HackerRequest, stage string, err error) {
		de := apperrors.ToDomainError(err)
		s.metrics.RecordStageFailure(name, stage, de.Code)
		fields := []zap.Field{
			zap.String("pipeline", name),
			zap.String("stage", stage),
			zap.String("hacker_id", r.HackerID),
			zap.String("code", de.Code),
			zap.Error(err),
		}
		if de.HTTPStatus >= 500 {
			s.logger.Error("hacker pipeline failed", fields...)
			return
		}
		s.logger.Warn("hacker pipeline stopped", fields...)
	}
}

func (s *HackerService) run(ctx context.Context, name string, r *HackerRequest, stages ...pipeline.Stage[HackerRequest]) error {
	return s.pipelines[name].Run(ctx, r, stages...)
}

// ownership returns the ownership guard for non-staff principals and nothing
// for staff, who may act on any record.
func (s *HackerService) ownership(principal *domain.Account) []pipeline.Stage[HackerRequest] {
	if principal.IsStaff() {
		return nil
	}
	return []pipeline.Stage[HackerRequest]{s.stage("ensureAccountLinkedToHacker", s.ensureAccountLinkedToHacker)}
}

// access is ownership plus, for staff, a lookup that fails with NotFound
// before any later stage has side effects.
func (s *HackerService) access(principal *domain.Account) []pipeline.Stage[HackerRequest] {
	if stages := s.ownership(principal); len(stages) > 0 {
		return stages
	}
	return []pipeline.Stage[HackerRequest]{s.stage("findHacker", s.findHacker)}
}

// Create registers a new hacker application for an eligible account.
func (s *HackerService) Create(ctx context.Context, principal *domain.Account, input CreateHackerInput) (*domain.Hacker, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if input.AccountID == "" {
		input.AccountID = principal.ID
	}
	if !principal.IsStaff() && !sameID(input.AccountID, principal.ID) {
		return nil, apperrors.NewForbidden("cannot apply on behalf of another account")
	}

	r := &HackerRequest{Principal: principal, Input: input}
	err := s.run(ctx, pipelineCreate, r,
		s.stage("buildHackerDetails", s.buildHackerDetails),
		s.stage("validateAccountEligibility", s.validateAccountEligibility),
		s.stage("checkDuplicateAccountLinks", s.checkDuplicateAccountLinks),
		s.stage("createHacker", s.createHacker),
	)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventHackerCreated, r, events.HackerCreatedPayload{
		AccountID: r.Hacker.AccountID,
		Status:    r.Hacker.Status,
	})
	return r.Hacker, nil
}

// Update applies a partial update. Only staff may change the status; a
// status-bearing update emails the owning account exactly once.
func (s *HackerService) Update(ctx context.Context, principal *domain.Account, id string, patch domain.HackerPatch) (*domain.Hacker, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	patch.Application = patch.Application.WithoutResumeKey()
	if patch.Status != nil && *patch.Status == "" {
		patch.Status = nil
	}
	if patch.IsEmpty() {
		return nil, apperrors.NewValidationError("no fields to update", map[string]any{"id": id})
	}
	if patch.Status != nil {
		if !principal.IsStaff() {
			return nil, apperrors.NewForbidden("only staff can change a hacker's status")
		}
		if !s.statuses.IsValidStatus(*patch.Status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(*patch.Status)})
		}
	}

	r := &HackerRequest{HackerID: id, Principal: principal, Patch: patch}
	stages := append(s.ownership(principal),
		s.stage("updateHacker", s.updateHacker),
		s.stage("sendStatusUpdateEmail", s.sendStatusUpdateEmail),
	)
	if err := s.run(ctx, pipelineUpdate, r, stages...); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventHackerUpdated, r, nil)
	if patch.Status != nil {
		s.publish(ctx, events.EventHackerStatusChanged, r, events.HackerStatusChangedPayload{
			NewStatus: *patch.Status,
			Email:     r.Email,
		})
	}
	return r.Hacker, nil
}

// UpdateStatus moves a hacker to a new status and notifies the owner.
func (s *HackerService) UpdateStatus(ctx context.Context, principal *domain.Account, id string, status domain.HackerStatus) (*domain.Hacker, error) {
	return s.Update(ctx, principal, id, domain.HackerPatch{Status: &status})
}

// UploadResume stores a resume and records its key on the application.
func (s *HackerService) UploadResume(ctx context.Context, principal *domain.Account, id string, data []byte, contentType string) (string, error) {
	if principal == nil {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	if len(data) == 0 {
		return "", apperrors.NewValidationError("resume file is empty", nil)
	}

	r := &HackerRequest{HackerID: id, Principal: principal, Resume: data, ResumeContentType: contentType}
	stages := append(s.access(principal), s.stage("uploadResume", s.uploadResume))
	if err := s.run(ctx, pipelineUpload, r, stages...); err != nil {
		return "", err
	}

	s.publish(ctx, events.EventResumeUploaded, r, events.ResumeUploadedPayload{Key: r.ResumeKey, Size: len(data)})
	return r.ResumeKey, nil
}

// DownloadResume returns the bytes of the hacker's resume.
func (s *HackerService) DownloadResume(ctx context.Context, principal *domain.Account, id string) ([]byte, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	r := &HackerRequest{HackerID: id, Principal: principal}
	stages := append(s.ownership(principal), s.stage("downloadResume", s.downloadResume))
	if err := s.run(ctx, pipelineDownload, r, stages...); err != nil {
		return nil, err
	}
	return r.ResumeData, nil
}

// Get returns a hacker the principal may see.
func (s *HackerService) Get(ctx context.Context, principal *domain.Account, id string) (*domain.Hacker, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	r := &HackerRequest{HackerID: id, Principal: principal}
	if err := s.run(ctx, pipelineGet, r, s.access(principal)...); err != nil {
		return nil, err
	}
	return r.Hacker, nil
}

// GetSelf returns the principal's own hacker application.
func (s *HackerService) GetSelf(ctx context.Context, principal *domain.Account) (*domain.Hacker, error) {
	if principal == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	hacker, err := s.hackers.GetByAccountID(ctx, principal.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("no hacker application for this account", map[string]any{"accountId": principal.ID})
		}
		return nil, err
	}
	return hacker, nil
}

func (s *HackerService) publish(ctx context.Context, eventType events.EventType, r *HackerRequest, payload any) {
	if s.dispatcher == nil {
		return
	}
	hackerID := r.HackerID
	if r.Hacker != nil {
		hackerID = r.Hacker.ID
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		HackerID:  hackerID,
		Timestamp: s.now().UTC(),
		Payload:   payload,
	}
	if r.Principal != nil {
		event.Actor = events.Actor{AccountID: r.Principal.ID, AccountType: r.Principal.AccountType}
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}

func (s *HackerService) stage(name string, fn func(context.Context, *HackerRequest) error) pipeline.Stage[HackerRequest] {
	return pipeline.Stage[HackerRequest]{Name: name, Run: fn}
}
