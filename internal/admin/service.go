package admin

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/gumtree-backend/internal/auth"
)

// TokenIssuer signs session tokens for authenticated admins.
type TokenIssuer interface {
	Issue(p auth.Principal) (string, error)
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	cost   int

	dummyOnce sync.Once
	dummy     []byte
}

func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Authenticate checks username and password. Unknown user and wrong password
// return the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Admin, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// spend the same bcrypt work as a real mismatch
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
			return Admin{}, ErrInvalidCredentials
		}
		return Admin{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Admin{}, ErrInvalidCredentials
	}
	return a, nil
}

func (s *Service) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummy
}

// IssueToken authenticates the admin and returns a signed session token.
func (s *Service) IssueToken(ctx context.Context, username, password string) (string, error) {
	a, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(auth.Principal{ID: a.ID, Username: a.Username})
}

// EnsureSeeded creates the admin account if it does not exist yet. It reports
// whether a new account was created.
func (s *Service) EnsureSeeded(ctx context.Context, username, password string) (bool, error) {
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, err
	}

	if _, err := s.repo.Create(ctx, Admin{Username: username, PasswordHash: string(hashed)}); err != nil {
		// another process seeded it between our lookup and insert
		if errors.Is(err, ErrUsernameExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
