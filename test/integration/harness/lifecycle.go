package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/productsearch/internal/cmd"
	"github.com/renato0307/productsearch/internal/config"
	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/ports"
)

// ExitSetupFailed is the TestMain exit code for configuration or fixture setup failures
const ExitSetupFailed = 2

const defaultTeardownConcurrency = 4

// State is a phase of a suite's lifecycle
type State int

const (
	StateUninitialized State = iota
	StateCredentialsVerified
	StateFixturesReady
	StateRunning
	StateTeardownInProgress
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCredentialsVerified:
		return "credentials-verified"
	case StateFixturesReady:
		return "fixtures-ready"
	case StateRunning:
		return "running"
	case StateTeardownInProgress:
		return "teardown-in-progress"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Check is a pre-flight check. A non-nil error aborts the suite before any test runs.
type Check struct {
	Name string
	Run  func(env *TestEnvironment) error
}

// CredentialsCheck verifies the project id and credentials file the CLI will use
var CredentialsCheck = Check{
	Name: "credentials",
	Run: func(env *TestEnvironment) error {
		return config.CheckCredentials(env.Resolved())
	},
}

// BinaryCheck verifies the CLI binary has been built
var BinaryCheck = Check{
	Name: "binary",
	Run: func(env *TestEnvironment) error {
		path := GetBinaryPath()
		if path == "" {
			return errors.New("binary not built")
		}
		_, err := os.Stat(path)
		return err
	},
}

// SuiteContext is the shared state handed to setup and to every test body
type SuiteContext struct {
	Catalog  ports.ProductCatalog
	Env      *TestEnvironment
	Fixtures *FixtureManager
	Runner   *Runner

	mu     sync.Mutex
	shared map[string]TestResource
}

// Share stores a fixture under name for later steps
func (c *SuiteContext) Share(name string, resource TestResource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shared == nil {
		c.shared = make(map[string]TestResource)
	}
	c.shared[name] = resource
}

// Fixture returns a fixture stored with Share
func (c *SuiteContext) Fixture(name string) (TestResource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.shared[name]
	return r, ok
}

// Run executes the CLI with args
func (c *SuiteContext) Run(ctx context.Context, args ...string) (CommandResult, error) {
	return c.Runner.Run(ctx, args...)
}

// CreateProduct creates a product fixture directly through the catalog
func (c *SuiteContext) CreateProduct(ctx context.Context, resource TestResource) error {
	parent := domain.LocationPath(resource.Project, resource.Location)
	_, err := c.Catalog.CreateProduct(ctx, parent, resource.ID, domain.Product{
		DisplayName:     resource.DisplayName,
		ProductCategory: resource.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to create product %s: %w", resource.Path, err)
	}
	return nil
}

// CreateProductSet creates a product set fixture directly through the catalog
func (c *SuiteContext) CreateProductSet(ctx context.Context, resource TestResource) error {
	parent := domain.LocationPath(resource.Project, resource.Location)
	_, err := c.Catalog.CreateProductSet(ctx, parent, resource.ID, domain.ProductSet{
		DisplayName: resource.DisplayName,
	})
	if err != nil {
		return fmt.Errorf("failed to create product set %s: %w", resource.Path, err)
	}
	return nil
}

// GetProduct fetches a product through the catalog, bypassing the CLI
func (c *SuiteContext) GetProduct(ctx context.Context, path string) (*domain.Product, error) {
	return c.Catalog.GetProduct(ctx, path)
}

// ProductAbsent reports whether the catalog answers "not found" for path.
// Any other error is returned.
func (c *SuiteContext) ProductAbsent(ctx context.Context, path string) (bool, error) {
	_, err := c.Catalog.GetProduct(ctx, path)
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Suite drives a test group through
// Uninitialized → CredentialsVerified → FixturesReady → Running → TeardownInProgress → Done.
type Suite struct {
	Checks              []Check
	Logger              *slog.Logger
	Name                string
	OpenCatalog         func(ctx context.Context, resolved config.Resolved) (ports.ProductCatalog, error)
	Setup               func(ctx context.Context, sc *SuiteContext) error
	TeardownConcurrency int

	cleanupErrors []*CleanupError
	mu            sync.Mutex
	sc            *SuiteContext
	state         State
}

func (s *Suite) logger() *slog.Logger {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil)).With("suite", s.Name)
	}
	return s.Logger
}

// State returns the current lifecycle phase
func (s *Suite) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Suite) transition(from, to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != from {
		return fmt.Errorf("suite %s: cannot move to %s from %s", s.Name, to, s.state)
	}
	s.state = to
	s.logger().Debug("Suite state changed", "from", from.String(), "to", to.String())
	return nil
}

// Context returns the suite context, nil before Start
func (s *Suite) Context() *SuiteContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sc
}

// Start runs the pre-flight checks, opens the catalog and creates the shared fixtures.
// Check failures return *ConfigurationError, setup failures *FixtureSetupError.
// Nothing is retried.
func (s *Suite) Start(ctx context.Context, env *TestEnvironment) error {
	log := s.logger()

	for _, check := range s.Checks {
		if err := check.Run(env); err != nil {
			log.Error("Pre-flight check failed", "check", check.Name, "error", err)
			return &ConfigurationError{Err: err, Setting: check.Name}
		}
	}
	if err := s.transition(StateUninitialized, StateCredentialsVerified); err != nil {
		return err
	}

	open := s.OpenCatalog
	if open == nil {
		open = cmd.NewCatalog
	}
	catalog, err := open(ctx, env.Resolved())
	if err != nil {
		return &ConfigurationError{Err: err, Setting: "catalog"}
	}

	s.mu.Lock()
	s.sc = &SuiteContext{
		Catalog:  catalog,
		Env:      env,
		Fixtures: NewFixtureManager(env.Project, env.Location),
		Runner:   env.Runner(),
	}
	sc := s.sc
	s.mu.Unlock()

	if s.Setup != nil {
		if err := s.Setup(ctx, sc); err != nil {
			log.Error("Fixture setup failed", "error", err)
			var setupErr *FixtureSetupError
			if errors.As(err, &setupErr) {
				return setupErr
			}
			return &FixtureSetupError{Err: err, Resource: s.Name}
		}
	}
	if err := s.transition(StateCredentialsVerified, StateFixturesReady); err != nil {
		return err
	}

	log.Info("Suite ready",
		"products", sc.Fixtures.Products().Len(),
		"product_sets", sc.Fixtures.ProductSets().Len())
	return s.transition(StateFixturesReady, StateRunning)
}

// Step runs one test body with the suite context
func (s *Suite) Step(t *testing.T, name string, fn func(t *testing.T, sc *SuiteContext)) bool {
	t.Helper()
	return t.Run(name, func(t *testing.T) {
		if state := s.State(); state != StateRunning {
			t.Fatalf("suite %s is %s, not running", s.Name, state)
		}
		fn(t, s.Context())
	})
}

// Teardown deletes every registered resource, logs the failures and closes the catalog.
// Each path gets exactly one deletion attempt; "not found" counts as deleted.
// Calling Teardown again is a no-op.
func (s *Suite) Teardown(ctx context.Context) []*CleanupError {
	s.mu.Lock()
	if s.state == StateTeardownInProgress || s.state == StateDone {
		s.mu.Unlock()
		return nil
	}
	from := s.state
	s.state = StateTeardownInProgress
	sc := s.sc
	s.mu.Unlock()

	log := s.logger()
	log.Debug("Suite state changed", "from", from.String(), "to", StateTeardownInProgress.String())

	if sc != nil {
		s.deleteAll(ctx, sc)
		if err := sc.Catalog.Close(); err != nil {
			log.Warn("Failed to close catalog", "error", err)
		}
	}

	s.mu.Lock()
	s.state = StateDone
	errs := s.cleanupErrors
	s.mu.Unlock()

	for _, e := range errs {
		log.Warn("Cleanup failed", "kind", e.Kind, "path", e.Path, "error", e.Err)
	}
	log.Info("Suite teardown finished", "cleanup_errors", len(errs))
	return errs
}

// CleanupErrors returns the failures collected by Teardown
func (s *Suite) CleanupErrors() []*CleanupError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupErrors
}

func (s *Suite) deleteAll(ctx context.Context, sc *SuiteContext) {
	limit := s.TeardownConcurrency
	if limit <= 0 {
		limit = defaultTeardownConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	schedule := func(registry *Registry, del func(context.Context, string) error) {
		for _, path := range registry.Drain() {
			g.Go(func() error {
				err := del(ctx, path)
				if err == nil || errors.Is(err, domain.ErrNotFound) {
					return nil
				}
				s.mu.Lock()
				s.cleanupErrors = append(s.cleanupErrors, &CleanupError{
					Err:  err,
					Kind: string(registry.Kind()),
					Path: path,
				})
				s.mu.Unlock()
				// Non-fatal - keep deleting the rest
				return nil
			})
		}
	}

	schedule(sc.Fixtures.ProductSets(), sc.Catalog.DeleteProductSet)
	schedule(sc.Fixtures.Products(), sc.Catalog.DeleteProduct)

	_ = g.Wait()
}

// Main builds the CLI, starts the suite, runs the tests and tears down.
// Use it from TestMain: os.Exit(suite.Main(m)).
func (s *Suite) Main(m *testing.M) int {
	log := s.logger()

	if _, err := BuildBinary(); err != nil {
		log.Error("Failed to build binary", "error", err)
		CleanupBinary()
		return ExitSetupFailed
	}
	defer CleanupBinary()

	home, err := os.MkdirTemp("", "productsearch-suite-*")
	if err != nil {
		log.Error("Failed to create suite home", "error", err)
		return ExitSetupFailed
	}
	defer os.RemoveAll(home)

	env, err := NewEnvironment(home)
	if err != nil {
		log.Error("Failed to create suite environment", "error", err)
		return ExitSetupFailed
	}

	ctx := context.Background()
	if err := s.Start(ctx, env); err != nil {
		log.Error("Suite aborted", "error", err)
		s.Teardown(ctx)
		return ExitSetupFailed
	}

	code := m.Run()
	s.Teardown(ctx)
	return code
}
