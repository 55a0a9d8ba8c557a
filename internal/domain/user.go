package domain

import (
	"fmt"
	"strings"
	"time"
)

// User is an account known to the local auth provider.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// NewUser validates and builds an account. Emails are stored lower-cased.
func NewUser(id, email, name string, now time.Time) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, validationErr("email", fmt.Sprintf("%q is not a valid email", email))
	}
	return &User{ID: id, Email: email, Name: strings.TrimSpace(name), CreatedAt: now}, nil
}

// DisplayName prefers the user's name over their email.
func (u *User) DisplayName() string {
	return CoalesceStr(u.Name, u.Email)
}

// Summary is the dashboard overview across all workshops.
type Summary struct {
	TotalWorkshops          int
	CompletedWorkshops      int
	TotalParticipants       int
	OpportunitiesIdentified int
	FocalAreas              int
	ProjectsCreated         int
	ByQuadrant              map[Quadrant]int
}
