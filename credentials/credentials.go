// Copyright 2025 RobotU AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package credentials resolves the hosted-service credentials from
// explicit values, environment variables, and the user config file, in
// that order of precedence. Credentials are never embedded in source or
// written anywhere but the user's own config file.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey is the environment variable holding the API key.
	EnvAPIKey = "MOLKIT_API_KEY"

	// EnvProjectID is the environment variable holding the project ID.
	EnvProjectID = "MOLKIT_PROJECT_ID"
)

// ErrNoAPIKey indicates no API key was found in any source.
var ErrNoAPIKey = errors.New("no API key configured")

// Credentials holds the hosted-service credentials.
type Credentials struct {
	APIKey    string `yaml:"api_key"`
	ProjectID string `yaml:"project_id,omitempty"`
}

// DefaultPath returns the default config file location,
// ~/.config/molkit/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "molkit", "config.yaml"), nil
}

// Load reads credentials from a YAML config file. A missing file is not
// an error; it yields empty credentials.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &creds, nil
}

// Save writes credentials to a YAML config file, creating parent
// directories as needed. The file is user-readable only.
func Save(path string, creds *Credentials) error {
	data, err := yaml.Marshal(creds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Resolve merges credential sources by precedence: explicit values
// beat environment variables, which beat the config file. Returns
// ErrNoAPIKey when no source provides a key.
func Resolve(explicit *Credentials, path string) (*Credentials, error) {
	fromFile, err := Load(path)
	if err != nil {
		return nil, err
	}

	resolved := &Credentials{
		APIKey:    fromFile.APIKey,
		ProjectID: fromFile.ProjectID,
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		resolved.APIKey = v
	}
	if v := os.Getenv(EnvProjectID); v != "" {
		resolved.ProjectID = v
	}
	if explicit != nil {
		if explicit.APIKey != "" {
			resolved.APIKey = explicit.APIKey
		}
		if explicit.ProjectID != "" {
			resolved.ProjectID = explicit.ProjectID
		}
	}

	if resolved.APIKey == "" {
		return nil, fmt.Errorf("%w: set %s or run \"molkit config set\"", ErrNoAPIKey, EnvAPIKey)
	}
	return resolved, nil
}
