package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func Test_tokenInfo(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	tok := signedToken(t, "user-42", exp)

	sub, gotExp := tokenInfo(tok)
	if sub != "user-42" {
		t.Fatalf("subject=%q, want user-42", sub)
	}
	if !gotExp.Equal(exp) {
		t.Fatalf("exp=%v, want %v", gotExp, exp)
	}
}

func Test_tokenInfo_Expired(t *testing.T) {
	// parsing skips claim validation; expiry is reported, not enforced
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	sub, gotExp := tokenInfo(signedToken(t, "user-1", exp))
	if sub != "user-1" || !gotExp.Equal(exp) {
		t.Fatalf("got %q %v", sub, gotExp)
	}
}

func Test_tokenInfo_Opaque(t *testing.T) {
	sub, exp := tokenInfo("not-a-jwt")
	if sub != "" || !exp.IsZero() {
		t.Fatalf("opaque token must yield empty info, got %q %v", sub, exp)
	}
}
