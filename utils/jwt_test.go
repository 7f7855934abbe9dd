package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, exp, err := GenerateAccessToken(secret, "u1", "ada@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}

	claims, err := ParseAccessToken(secret, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := ParseAccessToken([]byte("other"), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for wrong secret, got %v", err)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	secret := []byte("test-secret")
	token, _, err := GenerateAccessToken(secret, "u1", "", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAccessToken(secret, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword("secret1", hash) || CheckPassword("secret2", hash) {
		t.Fatal("bcrypt comparison mismatch")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	key := strings.Repeat("x", 32)
	sealed, err := Encrypt(key, []byte(`{"token":"abc"}`))
	if err != nil {
		t.Fatal(err)
	}
	plain, err := Decrypt(key, sealed)
	if err != nil || string(plain) != `{"token":"abc"}` {
		t.Fatalf("round trip failed: %q %v", plain, err)
	}
	if _, err := Decrypt(strings.Repeat("y", 32), sealed); err == nil {
		t.Fatal("expected failure with a different key")
	}
	if _, err := Encrypt("short", nil); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestMaskStringHidesBearerTokens(t *testing.T) {
	got := MaskString("Authorization: Bearer abc.def.ghi")
	if strings.Contains(got, "abc.def.ghi") {
		t.Fatalf("token leaked: %q", got)
	}
}
