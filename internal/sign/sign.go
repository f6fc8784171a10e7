// Package sign implements optional SSH-key commit signing (SPEC_FULL
// §4.7.2). A commit's signature is recorded as an opaque value under
// head.configuration rather than a separate object, since the
// commit master's own shape is frozen by spec §3.
package sign

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/ssh"
)

const wireVersion = 1

// ConfigKey is the head.configuration namespace a commit's
// signature is recorded under.
func ConfigKey(hash string) string { return "commit.signature." + hash }

// wireSignature is the JSON shape stored in head.configuration.
type wireSignature struct {
	V      int    `json:"v"`
	Format string `json:"format"`
	Pubkey string `json:"pubkey"`
	Sig    string `json:"sig"`
}

// Signer signs an arbitrary payload (the commit hash) with a resolved SSH
// private key.
type Signer struct {
	key  ssh.Signer
	Path string
}

// NewSigner loads keyPath, or — when keyPath is empty — searches
// ~/.ssh for the first private key file that actually parses, skipping
// any candidate that is encrypted, malformed, or otherwise unusable
// instead of committing to a single named file.
func NewSigner(keyPath string) (*Signer, error) {
	keyPath = strings.TrimSpace(keyPath)
	if keyPath != "" {
		path, err := expandUserPath(keyPath)
		if err != nil {
			return nil, err
		}
		signer, err := loadPrivateKey(path)
		if err != nil {
			return nil, err
		}
		return &Signer{key: signer, Path: path}, nil
	}

	path, signer, err := firstUsableKey()
	if err != nil {
		return nil, err
	}
	return &Signer{key: signer, Path: path}, nil
}

// Sign signs payload and renders the result as a single config value.
func (s *Signer) Sign(payload []byte) (string, error) {
	sig, err := s.key.Sign(rand.Reader, payload)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	wire := wireSignature{
		V:      wireVersion,
		Format: sig.Format,
		Pubkey: base64.StdEncoding.EncodeToString(s.key.PublicKey().Marshal()),
		Sig:    base64.StdEncoding.EncodeToString(sig.Blob),
	}
	encoded, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("sign: encode signature: %w", err)
	}
	return string(encoded), nil
}

// Verify parses a signature value written by Sign and checks it against
// payload. It does not consult any external trust store — it only checks
// that the signature blob verifies against the embedded public key.
func Verify(value string, payload []byte) (bool, error) {
	var wire wireSignature
	if err := json.Unmarshal([]byte(value), &wire); err != nil {
		return false, fmt.Errorf("sign: malformed signature value: %w", err)
	}
	if wire.V != wireVersion || wire.Format == "" || wire.Pubkey == "" || wire.Sig == "" {
		return false, fmt.Errorf("sign: malformed signature value")
	}
	pubRaw, err := base64.StdEncoding.DecodeString(wire.Pubkey)
	if err != nil {
		return false, fmt.Errorf("sign: decode public key: %w", err)
	}
	pub, err := ssh.ParsePublicKey(pubRaw)
	if err != nil {
		return false, fmt.Errorf("sign: parse public key: %w", err)
	}
	sigBlob, err := base64.StdEncoding.DecodeString(wire.Sig)
	if err != nil {
		return false, fmt.Errorf("sign: decode signature: %w", err)
	}
	sig := &ssh.Signature{Format: wire.Format, Blob: sigBlob}
	if err := pub.Verify(payload, sig); err != nil {
		return false, nil
	}
	return true, nil
}

// firstUsableKey globs ~/.ssh for id_* private key candidates (skipping
// the matching .pub files) and returns the first one that parses
// successfully, in lexical order. Unlike checking a fixed shortlist of
// filenames, this tolerates unconventional key names and silently steps
// over any candidate this process cannot actually use.
func firstUsableKey() (string, ssh.Signer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil, fmt.Errorf("sign: resolve home dir: %w", err)
	}
	matches, err := filepath.Glob(filepath.Join(home, ".ssh", "id_*"))
	if err != nil {
		return "", nil, fmt.Errorf("sign: scan ~/.ssh: %w", err)
	}
	sort.Strings(matches)

	var lastErr error
	for _, candidate := range matches {
		if strings.HasSuffix(candidate, ".pub") {
			continue
		}
		if st, err := os.Stat(candidate); err != nil || st.IsDir() {
			continue
		}
		signer, err := loadPrivateKey(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		return candidate, signer, nil
	}
	if lastErr != nil {
		return "", nil, fmt.Errorf("sign: no usable SSH private key found in ~/.ssh: %w", lastErr)
	}
	return "", nil, fmt.Errorf("sign: no SSH private key found in ~/.ssh")
}

func loadPrivateKey(path string) (ssh.Signer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sign: read key %q: %w", path, err)
	}
	signer, err := ssh.ParsePrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("sign: parse key %q: %w", path, err)
	}
	return signer, nil
}

func expandUserPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("sign: resolve home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}
