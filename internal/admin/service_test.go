package admin

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/wichananm65/gumtree-backend/internal/auth"
)

func newTestService(t *testing.T) (*Service, *InMemoryRepository, *auth.Issuer) {
	t.Helper()
	repo := NewInMemoryRepository(nil)
	iss := auth.NewIssuer("test-secret", auth.DefaultTTL)
	svc := NewService(repo, iss)
	svc.cost = bcrypt.MinCost
	return svc, repo, iss
}

func TestEnsureSeeded_Idempotent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureSeeded(ctx, "gumtreeply", "gumtre#001")
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}

	created, err = svc.EnsureSeeded(ctx, "gumtreeply", "another")
	if err != nil || created {
		t.Fatalf("second seed should no-op: created=%v err=%v", created, err)
	}
	if repo.count() != 1 {
		t.Fatalf("expected exactly one admin, got %d", repo.count())
	}

	a, _ := repo.GetByUsername(ctx, "gumtreeply")
	if a.PasswordHash == "gumtre#001" {
		t.Fatalf("password stored in plain text")
	}
}

func TestIssueToken_RoundTrip(t *testing.T) {
	svc, _, iss := newTestService(t)
	ctx := context.Background()
	if _, err := svc.EnsureSeeded(ctx, "gumtreeply", "gumtre#001"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tok, err := svc.IssueToken(ctx, "gumtreeply", "gumtre#001")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	p, err := iss.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if p.Username != "gumtreeply" || p.ID != 1 {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestIssueToken_SameErrorForUnknownUserAndBadPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.EnsureSeeded(ctx, "gumtreeply", "gumtre#001"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, errUnknown := svc.IssueToken(ctx, "nobody", "gumtre#001")
	_, errWrong := svc.IssueToken(ctx, "gumtreeply", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errUnknown, errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("errors must be indistinguishable: %q vs %q", errUnknown, errWrong)
	}
}

type failingRepo struct{}

func (failingRepo) GetByUsername(context.Context, string) (Admin, error) {
	return Admin{}, errors.New("db down")
}

func (failingRepo) Create(context.Context, Admin) (Admin, error) {
	return Admin{}, errors.New("db down")
}

func TestEnsureSeeded_PropagatesStoreError(t *testing.T) {
	svc := NewService(failingRepo{}, auth.NewIssuer("x", 0))
	if _, err := svc.EnsureSeeded(context.Background(), "a", "b"); err == nil {
		t.Fatalf("expected error from store")
	}
}

func TestAuthenticate_UnknownUserStillHashes(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if cost, err := bcrypt.Cost(svc.dummy); err != nil || cost != bcrypt.MinCost {
		t.Fatalf("expected a dummy hash at the service cost, got cost=%d err=%v", cost, err)
	}
}
