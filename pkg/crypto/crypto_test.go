package crypto

import (
	"strings"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if !VerifyPassword(hash, "secret") {
		t.Fatal("expected password verification to succeed")
	}

	if VerifyPassword(hash, "incorrect") {
		t.Fatal("expected password verification to fail")
	}
}

func TestHashOutputSelfDescribes(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=2,p=4$") {
		t.Fatalf("unexpected hash prefix: %s", hash)
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	second, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestVerifyHonoursEmbeddedParams(t *testing.T) {
	params := Argon2Parameters{Time: 1, Memory: 16 * 1024, Threads: 2, KeyLength: 32}
	hash, err := HashPasswordWithParams("secret", params)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	// Verification succeeds even though the defaults use different costs.
	if !VerifyPassword(hash, "secret") {
		t.Fatal("expected verification with embedded parameters to succeed")
	}
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	cases := []string{
		"",
		"plain-text",
		"$argon2i$v=19$m=65536,t=2,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=2,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=2,p=4$!!$aGFzaA",
	}

	for _, encoded := range cases {
		if VerifyPassword(encoded, "secret") {
			t.Fatalf("expected verification to fail for %q", encoded)
		}
	}
}

func TestHashRequiresPassword(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected empty password to be rejected")
	}
}
