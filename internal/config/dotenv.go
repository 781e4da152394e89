package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv loads each .env file in order. Missing files are silently
// ignored and variables already present in the environment are never
// overridden, so earlier paths win over later ones.
func LoadDotenv(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
