package sign

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

func writeTestKey(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	path := filepath.Join(t.TempDir(), "id_ed25519")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	path := writeTestKey(t)
	signer, err := NewSigner(path)
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte("deadbeef")
	value, err := signer.Sign(payload)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := Verify(value, payload)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected signature to verify against its own payload")
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	path := writeTestKey(t)
	signer, err := NewSigner(path)
	if err != nil {
		t.Fatal(err)
	}
	value, err := signer.Sign([]byte("original"))
	if err != nil {
		t.Fatal(err)
	}
	ok, err := Verify(value, []byte("tampered"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected verification to fail against a different payload")
	}
}

func TestVerifyRejectsMalformedValue(t *testing.T) {
	if _, err := Verify("not-a-signature", []byte("x")); err == nil {
		t.Fatal("expected malformed signature value to error")
	}
}

func TestConfigKeyNamespacesByHash(t *testing.T) {
	if got := ConfigKey("abc123"); got != "commit.signature.abc123" {
		t.Fatalf("unexpected config key: %s", got)
	}
}

func TestNewSignerSkipsUnusableCandidateBeforeGoodOne(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		t.Fatal(err)
	}

	// "id_bad" sorts before "id_good" but is not a parseable key, so
	// firstUsableKey must step over it instead of failing outright.
	if err := os.WriteFile(filepath.Join(sshDir, "id_bad"), []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}

	goodPath := writeTestKey(t)
	goodKey, err := os.ReadFile(goodPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sshDir, "id_good"), goodKey, 0o600); err != nil {
		t.Fatal(err)
	}

	signer, err := NewSigner("")
	if err != nil {
		t.Fatalf("expected NewSigner to skip the unusable candidate and find id_good: %v", err)
	}
	if filepath.Base(signer.Path) != "id_good" {
		t.Fatalf("expected to resolve id_good, got %s", signer.Path)
	}
}

func TestNewSignerNoCandidatesInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := NewSigner(""); err == nil {
		t.Fatal("expected NewSigner to fail when ~/.ssh has no key candidates")
	}
}
