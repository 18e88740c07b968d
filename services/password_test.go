package services

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	t.Run("Produces Salt And Hash Segments", func(t *testing.T) {
		hash, err := HashPassword("SecurePass123!")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if parts := strings.Split(hash, "$"); len(parts) != 2 {
			t.Errorf("expected salt$hash format, got %q", hash)
		}
	})

	t.Run("Same Password Different Hashes", func(t *testing.T) {
		a, _ := HashPassword("SecurePass123!")
		b, _ := HashPassword("SecurePass123!")
		if a == b {
			t.Error("random salt should make hashes differ")
		}
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("SecurePass123!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	t.Run("Correct Password", func(t *testing.T) {
		ok, err := VerifyPassword(hash, "SecurePass123!")
		if err != nil {
			t.Fatalf("VerifyPassword failed: %v", err)
		}
		if !ok {
			t.Error("expected match")
		}
	})

	t.Run("Wrong Password", func(t *testing.T) {
		ok, err := VerifyPassword(hash, "WrongPass456!")
		if err != nil {
			t.Fatalf("VerifyPassword failed: %v", err)
		}
		if ok {
			t.Error("expected mismatch")
		}
	})

	t.Run("Malformed Stored Hash", func(t *testing.T) {
		if _, err := VerifyPassword("not-a-valid-hash", "whatever"); err == nil {
			t.Error("expected error for malformed hash")
		}
	})
}

func TestComparePasswords(t *testing.T) {
	hash, _ := HashPassword("SecurePass123!")

	if !ComparePasswords(hash, "SecurePass123!") {
		t.Error("expected true for correct password")
	}
	if ComparePasswords(hash, "nope") {
		t.Error("expected false for wrong password")
	}
	if ComparePasswords("garbage", "nope") {
		t.Error("expected false for malformed hash")
	}
}
