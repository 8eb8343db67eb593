package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Environment variables read by the CLI and the test suites
const (
	EnvBackend     = "PRODUCTSEARCH_BACKEND"
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvEndpoint    = "PRODUCTSEARCH_ENDPOINT"
	EnvHome        = "PRODUCTSEARCH_HOME"
	EnvLocation    = "PRODUCTSEARCH_LOCATION"
	EnvProject     = "GCLOUD_PROJECT"
)

// Catalog backends
const (
	BackendLocal  = "local"
	BackendVision = "vision"
)

// DefaultLocation is used by the test suites when PRODUCTSEARCH_LOCATION is unset
const DefaultLocation = "us-west1"

// ValidBackends lists the accepted values for --backend
var ValidBackends = []string{BackendLocal, BackendVision}

// Settings represents the structure of $PRODUCTSEARCH_HOME/settings.json
type Settings struct {
	Backend         string `json:"backend,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty"`
	Debug           *bool  `json:"debug,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	MaxLogFiles     *int   `json:"max_log_files,omitempty"`
	Project         string `json:"project,omitempty"`
}

// LoadSettings loads settings from $PRODUCTSEARCH_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.CredentialsFile != "" {
		settings.CredentialsFile = ExpandPath(settings.CredentialsFile)
	}
	if settings.Backend != "" && !slices.Contains(ValidBackends, settings.Backend) {
		return nil, fmt.Errorf("invalid settings.json: unknown backend %q", settings.Backend)
	}

	return &settings, nil
}

// SaveSettings saves settings to $PRODUCTSEARCH_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(GetHome(), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Resolved is the effective configuration after applying precedence:
// environment variables > settings.json > defaults. CLI flags are applied on
// top by the cmd package.
type Resolved struct {
	Backend         string
	CredentialsFile string
	Endpoint        string
	Home            string
	Project         string
}

// Resolve merges environment variables over the loaded settings
func Resolve(settings *Settings) Resolved {
	if settings == nil {
		settings = &Settings{}
	}

	r := Resolved{
		Backend:         settings.Backend,
		CredentialsFile: settings.CredentialsFile,
		Endpoint:        settings.Endpoint,
		Home:            GetHome(),
		Project:         settings.Project,
	}

	if v, ok := os.LookupEnv(EnvBackend); ok && v != "" {
		r.Backend = v
	}
	if v, ok := os.LookupEnv(EnvCredentials); ok && v != "" {
		r.CredentialsFile = ExpandPath(v)
	}
	if v, ok := os.LookupEnv(EnvEndpoint); ok && v != "" {
		r.Endpoint = v
	}
	if v, ok := os.LookupEnv(EnvProject); ok && v != "" {
		r.Project = v
	}

	if r.Backend == "" {
		r.Backend = BackendLocal
	}

	return r
}

// Location returns $PRODUCTSEARCH_LOCATION or DefaultLocation
func Location() string {
	if v := os.Getenv(EnvLocation); v != "" {
		return v
	}
	return DefaultLocation
}
