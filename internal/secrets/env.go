package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"filippo.io/age"
)

// DecryptEnv replaces every ENC[age:...] environment value with its
// plaintext. The key at keyPath is only read when a sealed value exists.
// It returns the names of the decrypted variables.
func DecryptEnv(keyPath string) ([]string, error) {
	var (
		identity *age.X25519Identity
		names    []string
	)

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !IsSealed(value) {
			continue
		}

		if identity == nil {
			id, err := LoadIdentity(keyPath)
			if err != nil {
				return names, fmt.Errorf("decrypt %s: %w", name, err)
			}
			identity = id
		}

		plain, err := Open(value, identity)
		if err != nil {
			return names, fmt.Errorf("decrypt %s: %w", name, err)
		}
		if err := os.Setenv(name, plain); err != nil {
			return names, fmt.Errorf("set %s: %w", name, err)
		}
		names = append(names, name)
	}

	if len(names) > 0 {
		slog.Debug("decrypted environment secrets", "count", len(names))
	}
	return names, nil
}
