// Package secrets keeps API keys encrypted at rest in .env files using age.
package secrets

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"github.com/dohr-michael/ellie/internal/config"
)

const (
	encPrefix = "ENC[age:"
	encSuffix = "]"
)

// KeyPath returns the default age key file path: $ELLIE_PATH/.age-key.
func KeyPath() string {
	return filepath.Join(config.EllieHome(), ".age-key")
}

// EnsureIdentity loads the X25519 identity at path, creating it with 0o600
// permissions if it does not exist yet.
func EnsureIdentity(path string) (*age.X25519Identity, error) {
	id, err := LoadIdentity(path)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	id, err = age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generate age identity: %w", err)
	}

	content := fmt.Sprintf("# created by ellie\n# public key: %s\n%s\n", id.Recipient(), id)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return nil, fmt.Errorf("write age key: %w", err)
	}
	return id, nil
}

// LoadIdentity reads the first X25519 identity from path.
func LoadIdentity(path string) (*age.X25519Identity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open age key: %w", err)
	}
	defer f.Close()

	identities, err := age.ParseIdentities(f)
	if err != nil {
		return nil, fmt.Errorf("parse age key %s: %w", path, err)
	}
	for _, candidate := range identities {
		if id, ok := candidate.(*age.X25519Identity); ok {
			return id, nil
		}
	}
	return nil, fmt.Errorf("no X25519 identity in %s", path)
}

// Seal encrypts plaintext for recipient and returns an ENC[age:...] value.
func Seal(plaintext string, recipient age.Recipient) (string, error) {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return "", fmt.Errorf("age encrypt: %w", err)
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", fmt.Errorf("age encrypt: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("age encrypt: %w", err)
	}
	return encPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()) + encSuffix, nil
}

// Open decrypts an ENC[age:...] value.
func Open(value string, identity age.Identity) (string, error) {
	if !IsSealed(value) {
		return "", fmt.Errorf("value is not ENC[age:...]")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSuffix(strings.TrimPrefix(value, encPrefix), encSuffix))
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return "", fmt.Errorf("age decrypt: %w", err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("age decrypt: %w", err)
	}
	return string(plain), nil
}

// IsSealed reports whether s has the ENC[age:...] form.
func IsSealed(s string) bool {
	return len(s) >= len(encPrefix)+len(encSuffix) &&
		strings.HasPrefix(s, encPrefix) && strings.HasSuffix(s, encSuffix)
}
