package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/renato0307/productsearch/internal/config"
)

// defaultProject is used for hermetic local runs when GCLOUD_PROJECT is unset
const defaultProject = "productsearch-test"

// fakeCredentials is a service account document accepted by the pre-flight check.
// The local backend never reads the key.
const fakeCredentials = `{
  "type": "service_account",
  "project_id": "%s",
  "client_email": "integration@%s.iam.gserviceaccount.com"
}
`

// TestEnvironment provides an isolated environment with its own PRODUCTSEARCH_HOME.
//
// With the local backend (the default) it supplies a project and a throwaway
// credentials file. With PRODUCTSEARCH_BACKEND=vision the project, credentials
// and endpoint are taken from the caller's environment so the pre-flight check
// sees exactly what the CLI will see.
type TestEnvironment struct {
	Backend         string
	CredentialsFile string
	Endpoint        string
	Home            string
	Location        string
	Project         string
	extraEnv        map[string]string
}

// NewEnvironment creates an environment rooted at home
func NewEnvironment(home string) (*TestEnvironment, error) {
	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}

	env := &TestEnvironment{
		Backend:  os.Getenv(config.EnvBackend),
		Home:     home,
		Location: config.Location(),
		Project:  os.Getenv(config.EnvProject),
		extraEnv: make(map[string]string),
	}
	if env.Backend == "" {
		env.Backend = config.BackendLocal
	}

	if env.Backend == config.BackendVision {
		env.CredentialsFile = os.Getenv(config.EnvCredentials)
		env.Endpoint = os.Getenv(config.EnvEndpoint)
		return env, nil
	}

	if env.Project == "" {
		env.Project = defaultProject
	}
	env.CredentialsFile = filepath.Join(home, "credentials.json")
	content := fmt.Sprintf(fakeCredentials, env.Project, env.Project)
	if err := os.WriteFile(env.CredentialsFile, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write credentials file: %w", err)
	}

	return env, nil
}

// NewTestEnvironment creates an isolated environment in a temp directory.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	env, err := NewEnvironment(tb.TempDir())
	if err != nil {
		tb.Fatalf("Failed to create test environment: %v", err)
	}
	return env
}

// Environ returns environment variables configured for test isolation.
// It filters out PRODUCTSEARCH_* and Google credential variables and sets:
//   - PRODUCTSEARCH_HOME to the environment's home
//   - PRODUCTSEARCH_DEBUG to empty string (disables debug logging)
//   - PRODUCTSEARCH_BACKEND, GCLOUD_PROJECT and GOOGLE_APPLICATION_CREDENTIALS
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+6+len(e.extraEnv))

	overrideKeys := map[string]bool{
		config.EnvCredentials: true,
		config.EnvProject:     true,
	}
	for k := range e.extraEnv {
		overrideKeys[k] = true
	}

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "PRODUCTSEARCH_") || overrideKeys[key] {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		config.EnvHome+"="+e.Home,
		"PRODUCTSEARCH_DEBUG=",
		config.EnvBackend+"="+e.Backend,
		config.EnvLocation+"="+e.Location,
		config.EnvProject+"="+e.Project,
	)
	if e.CredentialsFile != "" {
		env = append(env, config.EnvCredentials+"="+e.CredentialsFile)
	}
	if e.Endpoint != "" {
		env = append(env, config.EnvEndpoint+"="+e.Endpoint)
	}

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// Resolved returns the configuration the CLI resolves inside this environment
func (e *TestEnvironment) Resolved() config.Resolved {
	return config.Resolved{
		Backend:         e.Backend,
		CredentialsFile: e.CredentialsFile,
		Endpoint:        e.Endpoint,
		Home:            e.Home,
		Project:         e.Project,
	}
}

// Runner returns a Runner for the compiled binary inside this environment
func (e *TestEnvironment) Runner() *Runner {
	return &Runner{
		Binary:  GetBinaryPath(),
		Dir:     e.Home,
		Env:     e.Environ(),
		Timeout: defaultTimeout,
	}
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}
