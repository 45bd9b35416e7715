package tokenpkg

import (
	"testing"
	"time"

	"github.com/go-raka/kas-bank/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPasetoMaker(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) failed: %v", secretKey, err)
	}

	email := randompkg.Email()
	duration := time.Minute

	token, payload, err := maker.CreateToken(email, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, %v) returned error: %v", email, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != nil {
		t.Errorf("maker.VerifyToken(%v) returned error: %v", token, err)
	}

	want := &Payload{
		Email:     email,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	ignore := cmpopts.IgnoreFields(Payload{}, "ID")
	delta := cmpopts.EquateApproxTime(time.Minute)

	if diff := cmp.Diff(payload, want, ignore, delta); diff != "" {
		t.Errorf("maker.CreateToken(%v, %v) returned unexpected diff: %v", email, duration, diff)
	}
}

func TestExpiredPasetoToken(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) failed: %v", secretKey, err)
	}

	email := randompkg.Email()
	duration := -time.Minute

	token, _, err := maker.CreateToken(email, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, %v) returned error: %v", email, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != ErrExpiredToken {
		t.Errorf("maker.VerifyToken(%v) returned unexpected error: %v", token, err)
	}
}

func TestInvalidPasetoKeySize(t *testing.T) {
	t.Parallel()

	shortKey := randompkg.String(16)

	maker, err := NewPasetoMaker(shortKey)
	if err == nil {
		t.Errorf("NewPasetoMaker(%v) returned nil error, want key size error", shortKey)
	}

	if maker != nil {
		t.Errorf("PasetoMaker = %+v, want nil", maker)
	}
}
