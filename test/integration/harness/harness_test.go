package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/productsearch/internal/config"
	"github.com/renato0307/productsearch/internal/domain"
	"github.com/renato0307/productsearch/internal/ports"
	portsmocks "github.com/renato0307/productsearch/internal/ports/mocks"
)

const helperModeEnv = "HARNESS_HELPER_MODE"

// TestHelperProcess is not a real test. It is the subprocess started by the
// runner tests and behaves according to HARNESS_HELPER_MODE.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(helperModeEnv)
	if mode == "" {
		return
	}

	switch mode {
	case "echo":
		fmt.Fprintln(os.Stdout, "Product deleted.")
		fmt.Fprintln(os.Stderr, "warning: slow network")
		os.Exit(0)
	case "fail":
		fmt.Fprintln(os.Stderr, "Error: failed to get product: Not found: product x")
		os.Exit(3)
	case "sleep":
		time.Sleep(time.Minute)
		os.Exit(0)
	case "orphan":
		// Leave a grandchild holding stdout open, then hang
		child := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
		child.Env = append(os.Environ(), helperModeEnv+"=sleep")
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr
		if err := child.Start(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(98)
		}
		fmt.Fprintf(os.Stdout, "grandchild %d\n", child.Process.Pid)
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(99)
}

func helperRunner(mode string, timeout time.Duration) *Runner {
	return &Runner{
		Binary:  os.Args[0],
		Env:     append(os.Environ(), helperModeEnv+"="+mode),
		Timeout: timeout,
	}
}

func TestRunner_Success(t *testing.T) {
	result, err := helperRunner("echo", 0).Run(context.Background(), "-test.run=^TestHelperProcess$")

	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "Product deleted.")
	assert.Contains(t, result.Stderr, "warning: slow network")
	assert.Contains(t, result.Output, "Product deleted.")
	assert.Contains(t, result.Output, "warning: slow network")
	assert.Equal(t, os.Args[0], result.Args[0])
	assert.Positive(t, result.Duration)
}

func TestRunner_NonZeroExit(t *testing.T) {
	result, err := helperRunner("fail", 0).Run(context.Background(), "-test.run=^TestHelperProcess$")

	processErr := AssertProcessError(t, err)
	require.NotNil(t, processErr)
	assert.Equal(t, 3, processErr.ExitCode)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, processErr.Error(), "Not found")
	assert.Contains(t, processErr.Error(), "exited with code 3")
}

func TestRunner_Timeout(t *testing.T) {
	start := time.Now()
	result, err := helperRunner("sleep", 300*time.Millisecond).Run(context.Background(), "-test.run=^TestHelperProcess$")

	var timeoutErr *ProcessTimeout
	require.True(t, errors.As(err, &timeoutErr), "expected *ProcessTimeout, got %v", err)
	assert.Equal(t, 300*time.Millisecond, timeoutErr.Timeout)
	assert.Equal(t, -1, result.ExitCode)
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestGenerateID_UniqueWithPrefix(t *testing.T) {
	m := NewFixtureManager("p", "us-west1")

	seen := make(map[string]bool)
	for range 100 {
		id := m.GenerateID("ProductId")
		assert.True(t, strings.HasPrefix(id, "ProductId"))
		assert.NoError(t, domain.ValidateResourceID(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFixtureManager_SeparateRegistries(t *testing.T) {
	m := NewFixtureManager("p", "us-west1")

	product := m.NewProduct("test_product_id", "lamp", domain.CategoryHomegoods)
	set := m.NewProductSet("test_product_set_id", "lights")
	tracked := m.TrackProduct("made_by_test")

	assert.Equal(t, domain.ProductPath("p", "us-west1", product.ID), product.Path)
	assert.Equal(t, domain.ProductSetPath("p", "us-west1", set.ID), set.Path)
	assert.Equal(t, KindProduct, product.Kind)
	assert.Equal(t, KindProductSet, set.Kind)

	assert.Equal(t, []string{product.Path, tracked}, m.Products().Drain())
	assert.Equal(t, []string{set.Path}, m.ProductSets().Drain())
	assert.Zero(t, m.Products().Len(), "drain empties the registry")
}

func TestCheckContains(t *testing.T) {
	output := "Product name: a\nProduct category: toys\n"

	assert.NoError(t, CheckContains(output, "Product name: a", "Product category:"))
	assert.NoError(t, CheckField(output, "Product category", "toys"))

	err := CheckContains(output, "Product name: a", "Product labels:", "Product id:")
	var failure *AssertionFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, []string{"Product labels:", "Product id:"}, failure.Missing)
	assert.Contains(t, err.Error(), `"Product labels:"`)
}

func newMockSuite(t *testing.T, catalog ports.ProductCatalog) (*Suite, *TestEnvironment) {
	t.Helper()
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvProject, "")

	suite := &Suite{
		Checks: []Check{CredentialsCheck},
		Name:   t.Name(),
		OpenCatalog: func(ctx context.Context, resolved config.Resolved) (ports.ProductCatalog, error) {
			return catalog, nil
		},
	}
	return suite, NewTestEnvironment(t)
}

func TestSuite_TeardownDeletesEachPathOnce(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	suite, env := newMockSuite(t, catalog)

	var products []TestResource
	var set TestResource
	suite.Setup = func(ctx context.Context, sc *SuiteContext) error {
		for range 3 {
			products = append(products, sc.Fixtures.NewProduct("ProductId", "lamp", domain.CategoryHomegoods))
		}
		set = sc.Fixtures.NewProductSet("SetId", "lights")
		return nil
	}

	require.NoError(t, suite.Start(context.Background(), env))
	assert.Equal(t, StateRunning, suite.State())

	catalog.EXPECT().DeleteProduct(mock.Anything, products[0].Path).Return(nil).Once()
	catalog.EXPECT().DeleteProduct(mock.Anything, products[1].Path).Return(domain.ErrNotFound).Once()
	catalog.EXPECT().DeleteProduct(mock.Anything, products[2].Path).Return(errors.New("permission denied")).Once()
	catalog.EXPECT().DeleteProductSet(mock.Anything, set.Path).Return(nil).Once()
	catalog.EXPECT().Close().Return(nil).Once()

	errs := suite.Teardown(context.Background())

	require.Len(t, errs, 1)
	assert.Equal(t, products[2].Path, errs[0].Path)
	assert.Equal(t, string(KindProduct), errs[0].Kind)
	assert.ErrorContains(t, errs[0], "permission denied")
	assert.Equal(t, StateDone, suite.State())
	assert.Equal(t, errs, suite.CleanupErrors())

	assert.Nil(t, suite.Teardown(context.Background()), "second teardown is a no-op")
	assert.Len(t, suite.CleanupErrors(), 1, "errors of the first teardown are kept")
}

func TestSuite_ConfigurationErrorStopsBeforeCatalog(t *testing.T) {
	opened := false
	suite := &Suite{
		Checks: []Check{{Name: "credentials", Run: func(*TestEnvironment) error {
			return config.ErrMissingCredentials
		}}},
		Name: t.Name(),
		OpenCatalog: func(context.Context, config.Resolved) (ports.ProductCatalog, error) {
			opened = true
			return nil, nil
		},
	}

	err := suite.Start(context.Background(), NewTestEnvironment(t))

	var configErr *ConfigurationError
	require.True(t, errors.As(err, &configErr))
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
	assert.False(t, opened)
	assert.Equal(t, StateUninitialized, suite.State())
	assert.Nil(t, suite.Teardown(context.Background()))
}

func TestSuite_SetupFailureStillTearsDown(t *testing.T) {
	catalog := portsmocks.NewMockProductCatalog(t)
	suite, env := newMockSuite(t, catalog)

	var product TestResource
	suite.Setup = func(ctx context.Context, sc *SuiteContext) error {
		product = sc.Fixtures.NewProduct("ProductId", "lamp", domain.CategoryHomegoods)
		return sc.CreateProduct(ctx, product)
	}

	catalog.EXPECT().CreateProduct(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("quota exceeded")).Once()

	err := suite.Start(context.Background(), env)

	var setupErr *FixtureSetupError
	require.True(t, errors.As(err, &setupErr))
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Equal(t, StateCredentialsVerified, suite.State())

	catalog.EXPECT().DeleteProduct(mock.Anything, product.Path).Return(domain.ErrNotFound).Once()
	catalog.EXPECT().Close().Return(nil).Once()

	assert.Empty(t, suite.Teardown(context.Background()))
	assert.Empty(t, suite.CleanupErrors())
}

func TestBinaryCheck_FailsWhenNotBuilt(t *testing.T) {
	require.Empty(t, GetBinaryPath(), "unit tests never build the binary")

	err := BinaryCheck.Run(NewTestEnvironment(t))

	assert.ErrorContains(t, err, "binary not built")
}

func TestTestEnvironment_Environ(t *testing.T) {
	t.Setenv(config.EnvBackend, "")
	t.Setenv(config.EnvProject, "")
	t.Setenv("PRODUCTSEARCH_DEBUG", "1")

	env := NewTestEnvironment(t)
	vars := env.Environ()

	assert.Contains(t, vars, config.EnvHome+"="+env.Home)
	assert.Contains(t, vars, "PRODUCTSEARCH_DEBUG=")
	assert.NotContains(t, vars, "PRODUCTSEARCH_DEBUG=1")
	assert.Contains(t, vars, config.EnvProject+"="+defaultProject)
	assert.NoError(t, config.CheckCredentials(env.Resolved()))

	env.SetEnv(config.EnvLocation, "europe-west1")
	assert.Contains(t, env.Environ(), config.EnvLocation+"=europe-west1")
}
