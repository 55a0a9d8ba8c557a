package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/alexanderramin/atelier/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSignedIn        = errors.New("not signed in")
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// Provider authenticates local accounts and keeps a single signed-in session.
type Provider struct {
	users repository.UserRepo
	cost  int
	now   func() time.Time
}

type Option func(*Provider)

// WithCost sets the bcrypt cost used when hashing new passwords.
func WithCost(cost int) Option {
	return func(p *Provider) {
		p.cost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

func NewProvider(users repository.UserRepo, opts ...Option) *Provider {
	p := &Provider{users: users, cost: bcrypt.DefaultCost, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register creates an account. It does not sign the new user in.
func (p *Provider) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if len(password) < MinPasswordLength {
		return nil, &domain.ValidationError{
			Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	u, err := domain.NewUser(uuid.New().String(), email, name, p.now())
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	if err := p.users.Create(ctx, u, hash); err != nil {
		return nil, err
	}
	return u, nil
}

// SignIn checks the credentials and makes the user current, replacing any
// earlier session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	u, hash, err := p.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := p.users.SetCurrent(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// SignOut ends the current session. Signing out twice is not an error.
func (p *Provider) SignOut(ctx context.Context) error {
	return p.users.ClearCurrent(ctx)
}

// CurrentUser returns the signed-in user or ErrNotSignedIn.
func (p *Provider) CurrentUser(ctx context.Context) (*domain.User, error) {
	u, err := p.users.Current(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return u, nil
}
