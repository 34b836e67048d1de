package domain

import "time"

// AccountType differentiates the roles an account can hold at the event.
type AccountType string

const (
	AccountTypeHacker    AccountType = "Hacker"
	AccountTypeStaff     AccountType = "Staff"
	AccountTypeSponsor   AccountType = "Sponsor"
	AccountTypeVolunteer AccountType = "Volunteer"
)

// Account is the identity record a hacker application is linked to.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	AccountType  AccountType
	Confirmed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff reports whether the account may act on any hacker record.
func (a *Account) IsStaff() bool {
	return a != nil && a.AccountType == AccountTypeStaff
}
