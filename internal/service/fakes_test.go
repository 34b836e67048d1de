package service

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hackforge/hackathon-service/internal/domain"
	"github.com/hackforge/hackathon-service/internal/notify"
	"github.com/hackforge/hackathon-service/internal/storage"
)

type fakeAccounts struct {
	mu   sync.Mutex
	byID map[string]*domain.Account
}

func newFakeAccounts(accounts ...*domain.Account) *fakeAccounts {
	f := &fakeAccounts{byID: map[string]*domain.Account{}}
	for _, a := range accounts {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAccounts) Create(_ context.Context, a *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == a.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	if a.ID == "" {
		a.ID = "acc-" + a.Email
	}
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccounts) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

type fakeHackers struct {
	mu      sync.Mutex
	byID    map[string]*domain.Hacker
	setErr  error
	creates int
}

func newFakeHackers(hackers ...*domain.Hacker) *fakeHackers {
	f := &fakeHackers{byID: map[string]*domain.Hacker{}}
	for _, h := range hackers {
		f.byID[h.ID] = h
	}
	return f
}

func cloneHacker(h *domain.Hacker) *domain.Hacker {
	cp := *h
	cp.Application = maps.Clone(h.Application)
	return &cp
}

func (f *fakeHackers) Create(_ context.Context, d domain.HackerDetails) (*domain.Hacker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	for _, h := range f.byID {
		if h.AccountID == d.AccountID {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "hackers_account_id_key"}
		}
	}
	now := time.Now()
	h := &domain.Hacker{
		ID: d.ID, AccountID: d.AccountID, School: d.School, Gender: d.Gender,
		NeedsBus: d.NeedsBus, Application: d.Application, Status: d.Status,
		CreatedAt: now, UpdatedAt: now,
	}
	f.byID[h.ID] = h
	return cloneHacker(h), nil
}

func (f *fakeHackers) GetByID(_ context.Context, id string) (*domain.Hacker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneHacker(h), nil
}

func (f *fakeHackers) GetByAccountID(_ context.Context, accountID string) (*domain.Hacker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.byID {
		if h.AccountID == accountID {
			return cloneHacker(h), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeHackers) UpdateOne(_ context.Context, id string, p domain.HackerPatch) (*domain.Hacker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if p.School != nil {
		h.School = *p.School
	}
	if p.Gender != nil {
		h.Gender = *p.Gender
	}
	if p.NeedsBus != nil {
		h.NeedsBus = *p.NeedsBus
	}
	if p.Application != nil {
		key, hadKey := h.Application.ResumeKey()
		if h.Application == nil {
			h.Application = domain.Application{}
		}
		maps.Copy(h.Application, p.Application)
		if hadKey {
			portfolio, _ := h.Application["portfolioURL"].(map[string]any)
			portfolio = maps.Clone(portfolio)
			if portfolio == nil {
				portfolio = map[string]any{}
			}
			portfolio["resume"] = key
			h.Application["portfolioURL"] = portfolio
		}
	}
	if p.Status != nil {
		h.Status = *p.Status
	}
	h.UpdatedAt = time.Now()
	return cloneHacker(h), nil
}

func (f *fakeHackers) SetResumeKey(_ context.Context, id, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	h, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if h.Application == nil {
		h.Application = domain.Application{}
	}
	portfolio, _ := h.Application["portfolioURL"].(map[string]any)
	if portfolio == nil {
		portfolio = map[string]any{}
	}
	portfolio["resume"] = key
	h.Application["portfolioURL"] = portfolio
	return nil
}

func (f *fakeHackers) stored(id string) *domain.Hacker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

type fakeArtifacts struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	uploadErr error
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{blobs: map[string][]byte{}}
}

func (f *fakeArtifacts) Upload(_ context.Context, key, _ string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (f *fakeArtifacts) Download(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []notify.Message
	receipt notify.Receipt
	err     error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{receipt: notify.Receipt{StatusCode: 202, MessageID: "m-1"}}
}

func (f *fakeNotifier) Send(_ context.Context, msg notify.Message) (notify.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return notify.Receipt{}, f.err
	}
	return f.receipt, nil
}

func (f *fakeNotifier) calls() []notify.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Message(nil), f.sent...)
}
