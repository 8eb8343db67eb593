package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadSettings_MissingFileIsEmpty(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettings_RoundTrip(t *testing.T) {
	t.Setenv(EnvHome, filepath.Join(t.TempDir(), "home"))
	debug := true

	require.NoError(t, SaveSettings(&Settings{Backend: BackendVision, Debug: &debug, Project: "p"}))

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, BackendVision, settings.Backend)
	assert.Equal(t, "p", settings.Project)
	require.NotNil(t, settings.Debug)
	assert.True(t, *settings.Debug)
}

func TestLoadSettings_RejectsUnknownBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.json"), []byte(`{"backend":"mongo"}`), 0644))

	_, err := LoadSettings()
	assert.ErrorContains(t, err, "unknown backend")
}

func TestResolve_Precedence(t *testing.T) {
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvCredentials, "")
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvProject, "env-project")

	r := Resolve(&Settings{Project: "settings-project", Endpoint: "settings:443"})
	assert.Equal(t, "env-project", r.Project, "env overrides settings")
	assert.Equal(t, "settings:443", r.Endpoint, "settings used when env is empty")
	assert.Equal(t, BackendLocal, r.Backend, "backend defaults to local")

	r = Resolve(nil)
	assert.Equal(t, "env-project", r.Project)

	t.Setenv(EnvHome, "/tmp/ps-home")
	assert.Equal(t, "/tmp/ps-home", Resolve(nil).Home)
	assert.Equal(t, "/tmp/ps-home/logs", GetLogDir())
}

func TestLocation(t *testing.T) {
	t.Setenv(EnvLocation, "")
	assert.Equal(t, DefaultLocation, Location())

	t.Setenv(EnvLocation, "europe-west1")
	assert.Equal(t, "europe-west1", Location())
}

func TestCheckCredentials(t *testing.T) {
	valid := writeCredentials(t, `{"type":"service_account","project_id":"p"}`)
	badType := writeCredentials(t, `{"type":"api_key"}`)
	notJSON := writeCredentials(t, `not json`)

	tests := []struct {
		name    string
		cfg     Resolved
		wantErr error
	}{
		{name: "valid", cfg: Resolved{Project: "p", CredentialsFile: valid}},
		{name: "missing project", cfg: Resolved{CredentialsFile: valid}, wantErr: ErrMissingProject},
		{name: "missing credentials", cfg: Resolved{Project: "p"}, wantErr: ErrMissingCredentials},
		{name: "unreadable file", cfg: Resolved{Project: "p", CredentialsFile: filepath.Join(t.TempDir(), "nope.json")}, wantErr: ErrMissingCredentials},
		{name: "not json", cfg: Resolved{Project: "p", CredentialsFile: notJSON}, wantErr: ErrMissingCredentials},
		{name: "unknown type", cfg: Resolved{Project: "p", CredentialsFile: badType}, wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCredentials(tt.cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "creds.json"), ExpandPath("~/creds.json"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
