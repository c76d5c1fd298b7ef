package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssuePairAndParse(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer([]byte("super-secret"), time.Hour, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}

	userID := uuid.New()
	pair, err := issuer.IssuePair(userID)
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}
	if pair.Access == pair.Refresh {
		t.Fatal("access and refresh tokens must differ")
	}

	gotUser, err := issuer.Parse(pair.Access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("Parse access error: %v", err)
	}
	if gotUser != userID {
		t.Fatalf("user = %s, want %s", gotUser, userID)
	}

	gotUser, err = issuer.Parse(pair.Refresh, TokenTypeRefresh)
	if err != nil {
		t.Fatalf("Parse refresh error: %v", err)
	}
	if gotUser != userID {
		t.Fatalf("user = %s, want %s", gotUser, userID)
	}
}

func TestParse_WrongTokenType(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer([]byte("super-secret"), time.Hour, 7*24*time.Hour)
	pair, err := issuer.IssuePair(uuid.New())
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	if _, err := issuer.Parse(pair.Access, TokenTypeRefresh); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("access-as-refresh: error = %v, want ErrWrongTokenType", err)
	}
	if _, err := issuer.Parse(pair.Refresh, TokenTypeAccess); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("refresh-as-access: error = %v, want ErrWrongTokenType", err)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer([]byte("super-secret"), time.Hour, 7*24*time.Hour)
	issuer.accessTTL = -1 * time.Second

	pair, err := issuer.IssuePair(uuid.New())
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	if _, err := issuer.Parse(pair.Access, TokenTypeAccess); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: error = %v, want ErrInvalidToken", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer([]byte("right-secret"), time.Hour, 7*24*time.Hour)
	other, _ := NewIssuer([]byte("wrong-secret"), time.Hour, 7*24*time.Hour)

	pair, err := issuer.IssuePair(uuid.New())
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	if _, err := other.Parse(pair.Access, TokenTypeAccess); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer([]byte("super-secret"), time.Hour, 7*24*time.Hour)
	if _, err := issuer.Parse("not.a.jwt", TokenTypeAccess); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestNewIssuer_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer(nil, time.Hour, time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewIssuer([]byte("k"), 0, time.Hour); err == nil {
		t.Error("expected error for zero access TTL")
	}
	if _, err := NewIssuer([]byte("k"), time.Hour, -time.Hour); err == nil {
		t.Error("expected error for negative refresh TTL")
	}
}
