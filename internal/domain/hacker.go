package domain

import "time"

// HackerStatus is the applicant's position in the review workflow.
type HackerStatus string

const (
	HackerStatusApplied    HackerStatus = "Applied"
	HackerStatusAccepted   HackerStatus = "Accepted"
	HackerStatusWaitlisted HackerStatus = "Waitlisted"
	HackerStatusConfirmed  HackerStatus = "Confirmed"
	HackerStatusCancelled  HackerStatus = "Cancelled"
	HackerStatusDeclined   HackerStatus = "Declined"
	HackerStatusCheckedIn  HackerStatus = "Checked-in"
	HackerStatusWithdrawn  HackerStatus = "Withdrawn"
)

// DefaultHackerStatuses is used when a deployment does not configure its own set.
var DefaultHackerStatuses = []HackerStatus{
	HackerStatusApplied,
	HackerStatusAccepted,
	HackerStatusWaitlisted,
	HackerStatusConfirmed,
	HackerStatusCancelled,
	HackerStatusDeclined,
	HackerStatusCheckedIn,
	HackerStatusWithdrawn,
}

// Hacker is a hacker application owned by a single account.
type Hacker struct {
	ID          string
	AccountID   string
	School      string
	Gender      string
	NeedsBus    bool
	Application Application
	Status      HackerStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HackerDetails is the fully built value handed to the store on creation.
type HackerDetails struct {
	ID          string
	AccountID   string
	School      string
	Gender      string
	NeedsBus    bool
	Application Application
	Status      HackerStatus
}

// HackerPatch lists the fields a partial update may touch. The owning
// account is deliberately absent.
type HackerPatch struct {
	School      *string
	Gender      *string
	NeedsBus    *bool
	Application Application
	Status      *HackerStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p HackerPatch) IsEmpty() bool {
	return p.School == nil && p.Gender == nil && p.NeedsBus == nil && p.Application == nil && p.Status == nil
}

// Application is the free-form application form document.
type Application map[string]any

const (
	applicationPortfolioKey = "portfolioURL"
	applicationResumeKey    = "resume"
)

// ResumeKey returns the artifact key stored at portfolioURL.resume. Any
// missing or mistyped level yields ok=false.
func (a Application) ResumeKey() (string, bool) {
	if a == nil {
		return "", false
	}
	var portfolio map[string]any
	switch v := a[applicationPortfolioKey].(type) {
	case map[string]any:
		portfolio = v
	case Application:
		portfolio = v
	default:
		return "", false
	}
	key, ok := portfolio[applicationResumeKey].(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// WithoutResumeKey returns a copy of a with portfolioURL.resume removed. The
// resume key is written only after an accepted upload, so client patches
// never carry it. A portfolioURL or application left empty by the removal is
// dropped as well.
func (a Application) WithoutResumeKey() Application {
	if a == nil {
		return nil
	}
	var portfolio map[string]any
	switch v := a[applicationPortfolioKey].(type) {
	case map[string]any:
		portfolio = v
	case Application:
		portfolio = v
	}
	if _, ok := portfolio[applicationResumeKey]; !ok {
		return a
	}

	out := make(Application, len(a))
	for k, v := range a {
		out[k] = v
	}
	trimmed := make(map[string]any, len(portfolio))
	for k, v := range portfolio {
		if k != applicationResumeKey {
			trimmed[k] = v
		}
	}
	if len(trimmed) == 0 {
		delete(out, applicationPortfolioKey)
	} else {
		out[applicationPortfolioKey] = trimmed
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
