package services

import (
	"strings"
	"testing"
)

func TestFieldCodecRoundTrip(t *testing.T) {
	codec := NewFieldCodec("test-app-secret")
	userID := "user-123"

	t.Run("Encrypt Then Decrypt Returns Original", func(t *testing.T) {
		plaintext := "Meditate for 10 minutes"
		ciphertext := codec.EncryptField(plaintext, userID)

		if ciphertext == plaintext {
			t.Fatal("ciphertext should differ from plaintext")
		}
		if got := codec.DecryptField(ciphertext, userID); got != plaintext {
			t.Errorf("expected %q, got %q", plaintext, got)
		}
	})

	t.Run("Empty Value Passes Through", func(t *testing.T) {
		if got := codec.EncryptField("", userID); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
		if got := codec.DecryptField("", userID); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("Same Plaintext Produces Different Ciphertexts", func(t *testing.T) {
		a := codec.EncryptField("same value", userID)
		b := codec.EncryptField("same value", userID)
		if a == b {
			t.Error("random nonce should make ciphertexts differ")
		}
	})
}

func TestFieldCodecFailSoft(t *testing.T) {
	codec := NewFieldCodec("test-app-secret")
	userID := "user-123"

	t.Run("Plain Text Comes Back Unchanged", func(t *testing.T) {
		// Records written before encryption existed hold raw values.
		legacy := "just a plain note"
		if got := codec.DecryptField(legacy, userID); got != legacy {
			t.Errorf("expected %q, got %q", legacy, got)
		}
	})

	t.Run("Wrong User Key Leaves Value Unchanged", func(t *testing.T) {
		ciphertext := codec.EncryptField("secret thing", userID)
		if got := codec.DecryptField(ciphertext, "other-user"); got != ciphertext {
			t.Errorf("expected ciphertext unchanged, got %q", got)
		}
	})

	t.Run("Truncated Ciphertext Comes Back Unchanged", func(t *testing.T) {
		short := "YWJj" // valid base64, far too short for nonce + payload
		if got := codec.DecryptField(short, userID); got != short {
			t.Errorf("expected %q, got %q", short, got)
		}
	})
}

func TestFieldCodecStructHelpers(t *testing.T) {
	codec := NewFieldCodec("test-app-secret")
	userID := "user-123"

	type record struct {
		Name     string
		Why      string
		Category string
	}

	t.Run("Only Listed Fields Are Touched", func(t *testing.T) {
		rec := &record{Name: "Run daily", Why: "Health", Category: "Personal"}
		codec.EncryptFields(rec, userID, "Name", "Why")

		if rec.Name == "Run daily" || rec.Why == "Health" {
			t.Error("listed fields should be encrypted")
		}
		if rec.Category != "Personal" {
			t.Errorf("unlisted field changed: %q", rec.Category)
		}

		codec.DecryptFields(rec, userID, "Name", "Why")
		if rec.Name != "Run daily" || rec.Why != "Health" {
			t.Errorf("round trip failed: %+v", rec)
		}
	})

	t.Run("Unknown Field Names Are Ignored", func(t *testing.T) {
		rec := &record{Name: "Run daily"}
		codec.EncryptFields(rec, userID, "DoesNotExist")
		if rec.Name != "Run daily" {
			t.Error("record should be untouched")
		}
	})

	t.Run("Non Pointer Input Is A No-Op", func(t *testing.T) {
		rec := record{Name: "Run daily"}
		codec.EncryptFields(rec, userID, "Name")
		if rec.Name != "Run daily" {
			t.Error("value receiver should not be modified")
		}
	})
}

func TestFieldCodecCiphertextLooksOpaque(t *testing.T) {
	codec := NewFieldCodec("test-app-secret")
	ciphertext := codec.EncryptField("Buy a house by 2030", "user-123")
	if strings.Contains(ciphertext, "house") {
		t.Error("ciphertext leaks plaintext")
	}
}
