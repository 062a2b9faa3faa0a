// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the generative-service credential. Sources, in
// precedence order: the process environment, a .env/.env.local file, and a
// directory of plain-text key files where the filename is the key name and
// the trimmed contents are the value.
//
// Supported key file: openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeyEnv is the environment variable carrying the service credential.
const APIKeyEnv = "OPENAI_API_KEY"

// apiKeyFile is the key filename inside a secrets directory.
const apiKeyFile = "openai-api-key"

// LoadDotenv loads .env.local and .env from the working directory into the
// process environment. Variables already set in the environment win; missing
// files are not errors.
func LoadDotenv() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ResolveAPIKey returns the service credential from the environment (after
// LoadDotenv, that includes .env values) or from dir. An empty result is a
// fatal configuration error for the caller; no pipeline stage may run
// without a credential.
func ResolveAPIKey(dir string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		return key, nil
	}

	loaded, err := Load(dir)
	if err != nil {
		return "", err
	}
	if key, ok := loaded[apiKeyFile]; ok {
		return key, nil
	}

	return "", fmt.Errorf("missing credential: set %s or provide %s", APIKeyEnv, filepath.Join(dir, apiKeyFile))
}
