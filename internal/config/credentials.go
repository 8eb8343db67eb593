package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
)

// Credential file types understood by Google client libraries
var knownCredentialTypes = []string{
	"authorized_user",
	"external_account",
	"impersonated_service_account",
	"service_account",
}

var (
	ErrMissingCredentials = errors.New("credentials are not configured")
	ErrMissingProject     = errors.New("project id is not configured")
)

// credentialsFile holds the fields CheckCredentials looks at
type credentialsFile struct {
	ProjectID string `json:"project_id"`
	Type      string `json:"type"`
}

// CheckCredentials verifies that a project id is set and that the
// credentials file exists and looks like a Google credentials document.
func CheckCredentials(r Resolved) error {
	if r.Project == "" {
		return fmt.Errorf("%w: set %s", ErrMissingProject, EnvProject)
	}
	if r.CredentialsFile == "" {
		return fmt.Errorf("%w: set %s", ErrMissingCredentials, EnvCredentials)
	}

	data, err := os.ReadFile(r.CredentialsFile)
	if err != nil {
		return fmt.Errorf("%w: cannot read %s: %w", ErrMissingCredentials, r.CredentialsFile, err)
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("%w: %s is not valid JSON: %w", ErrMissingCredentials, r.CredentialsFile, err)
	}
	if !slices.Contains(knownCredentialTypes, creds.Type) {
		return fmt.Errorf("%w: %s has unknown type %q", ErrMissingCredentials, r.CredentialsFile, creds.Type)
	}

	return nil
}
