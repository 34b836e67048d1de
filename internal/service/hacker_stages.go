package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hackforge/hackathon-service/internal/domain"
	"github.com/hackforge/hackathon-service/internal/notify"
	"github.com/hackforge/hackathon-service/internal/storage"
	apperrors "github.com/hackforge/hackathon-service/pkg/util/errorutil"
)

const resumeKeyPrefix = "resumes/"

func (s *HackerService) buildHackerDetails(_ context.Context, r *HackerRequest) error {
	r.Details = NewHackerDetailsBuilder().
		AccountID(r.Input.AccountID).
		School(r.Input.School).
		Gender(r.Input.Gender).
		NeedsBus(r.Input.NeedsBus).
		Application(r.Input.Application).
		Build()
	r.HackerID = r.Details.ID
	return nil
}

func (s *HackerService) validateAccountEligibility(ctx context.Context, r *HackerRequest) error {
	accountID := r.Details.AccountID
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("account does not exist", map[string]any{"accountId": accountID})
		}
		return err
	}
	if !account.Confirmed {
		return apperrors.NewForbidden("account not confirmed")
	}
	if account.AccountType != domain.AccountTypeHacker {
		return apperrors.NewConflict("wrong account type", map[string]any{
			"accountId":   accountID,
			"accountType": string(account.AccountType),
		})
	}
	return nil
}

func (s *HackerService) checkDuplicateAccountLinks(ctx context.Context, r *HackerRequest) error {
	accountID := r.Details.AccountID
	_, err := s.hackers.GetByAccountID(ctx, accountID)
	switch {
	case err == nil:
		return duplicateLinkError(accountID)
	case apperrors.IsNotFound(err):
		return nil
	default:
		return err
	}
}

func (s *HackerService) createHacker(ctx context.Context, r *HackerRequest) error {
	hacker, err := s.hackers.Create(ctx, r.Details)
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return duplicateLinkError(r.Details.AccountID)
		}
		return err
	}
	r.Hacker = hacker
	return nil
}

func duplicateLinkError(accountID string) error {
	return apperrors.NewDomainError("HACKER_ALREADY_LINKED",
		"account already linked to a hacker application", http.StatusConflict, map[string]any{"id": accountID})
}

func (s *HackerService) ensureAccountLinkedToHacker(ctx context.Context, r *HackerRequest) error {
	hacker, err := s.hackers.GetByID(ctx, r.HackerID)
	if err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	r.Hacker = hacker
	if hacker == nil || r.Principal == nil || !sameID(hacker.AccountID, r.Principal.ID) {
		return apperrors.NewForbidden("not authorized for this hacker record")
	}
	return nil
}

func (s *HackerService) findHacker(ctx context.Context, r *HackerRequest) error {
	hacker, err := s.hackers.GetByID(ctx, r.HackerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("no such hacker application", map[string]any{"id": r.HackerID})
		}
		return err
	}
	r.Hacker = hacker
	return nil
}

func (s *HackerService) updateHacker(ctx context.Context, r *HackerRequest) error {
	hacker, err := s.hackers.UpdateOne(ctx, r.HackerID, r.Patch)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("no such hacker application", map[string]any{"id": r.HackerID})
		}
		return err
	}
	r.Hacker = hacker

	account, err := s.accounts.GetByID(ctx, hacker.AccountID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewIntegrityError("data integrity violation: application references missing account",
				map[string]any{"hackerId": hacker.ID, "accountId": hacker.AccountID})
		}
		return err
	}
	r.Email = account.Email
	return nil
}

func (s *HackerService) uploadResume(ctx context.Context, r *HackerRequest) error {
	key := fmt.Sprintf("%s%d-%s", resumeKeyPrefix, s.now().UnixMilli(), r.HackerID)
	if err := s.artifacts.Upload(ctx, key, r.ResumeContentType, r.Resume); err != nil {
		return fmt.Errorf("upload resume: %w", err)
	}
	if err := s.hackers.SetResumeKey(ctx, r.HackerID, key); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("no such hacker application", map[string]any{"id": r.HackerID})
		}
		return err
	}
	r.ResumeKey = key
	return nil
}

func (s *HackerService) downloadResume(ctx context.Context, r *HackerRequest) error {
	noResume := apperrors.NewNotFound("no resume on file", map[string]any{"id": r.HackerID})

	hacker, err := s.hackers.GetByID(ctx, r.HackerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return noResume
		}
		return err
	}
	key, ok := hacker.Application.ResumeKey()
	if !ok {
		return noResume
	}
	data, err := s.artifacts.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return noResume
		}
		return fmt.Errorf("download resume: %w", err)
	}
	r.Hacker = hacker
	r.ResumeKey = key
	r.ResumeData = data
	return nil
}

func (s *HackerService) sendStatusUpdateEmail(ctx context.Context, r *HackerRequest) error {
	if r.Patch.Status == nil {
		return nil
	}
	status := *r.Patch.Status
	tmpl, ok := s.notification.Templates[status]
	if !ok {
		return apperrors.NewConfigurationError("no email template for status",
			map[string]any{"status": string(status)})
	}

	receipt, err := s.notifier.Send(ctx, notify.Message{
		To:      r.Email,
		From:    s.notification.From,
		Subject: tmpl.Subject,
		HTML:    tmpl.Body,
	})
	if err != nil {
		s.metrics.RecordNotification(string(status), "error")
		return err
	}
	if !receipt.Accepted() {
		s.metrics.RecordNotification(string(status), "refused")
		return apperrors.NewDeliveryError(receipt.StatusCode, receipt.Message)
	}
	s.metrics.RecordNotification(string(status), "sent")
	return nil
}

// sameID compares identifiers by canonical form. Values that are not UUIDs
// are compared case-insensitively as plain strings.
func sameID(a, b string) bool {
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA == nil && errB == nil {
		return ua == ub
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
