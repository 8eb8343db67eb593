package harness

import (
	"sync"

	"github.com/google/uuid"

	"github.com/renato0307/productsearch/internal/domain"
)

// ResourceKind names the catalog entity a TestResource stands for
type ResourceKind string

const (
	KindProduct    ResourceKind = "product"
	KindProductSet ResourceKind = "product set"
)

// TestResource describes a catalog entity created for a test
type TestResource struct {
	Category    string
	DisplayName string
	ID          string
	Kind        ResourceKind
	Location    string
	Path        string
	Project     string
}

// Registry is an ordered list of resource paths of one kind awaiting deletion
type Registry struct {
	kind  ResourceKind
	mu    sync.Mutex
	paths []string
}

// NewRegistry creates an empty registry
func NewRegistry(kind ResourceKind) *Registry {
	return &Registry{kind: kind}
}

// Kind returns the kind of resource tracked by the registry
func (r *Registry) Kind() ResourceKind {
	return r.kind
}

// Add appends a path.
func (r *Registry) Add(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Drain returns every path in insertion order and empties the registry
func (r *Registry) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := r.paths
	r.paths = nil
	return paths
}

// Len returns the number of paths awaiting deletion
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// FixtureManager generates unique identifiers and tracks every resource a
// suite creates so teardown can remove it
type FixtureManager struct {
	location    string
	mu          sync.Mutex
	products    *Registry
	productSets *Registry
	project     string
	seen        map[string]struct{}
}

// NewFixtureManager creates a manager for resources under project and location
func NewFixtureManager(project, location string) *FixtureManager {
	return &FixtureManager{
		location:    location,
		products:    NewRegistry(KindProduct),
		productSets: NewRegistry(KindProductSet),
		project:     project,
		seen:        make(map[string]struct{}),
	}
}

// Location returns the location fixtures are created in
func (m *FixtureManager) Location() string { return m.location }

// Project returns the project fixtures are created in
func (m *FixtureManager) Project() string { return m.project }

// Products returns the product registry
func (m *FixtureManager) Products() *Registry { return m.products }

// ProductSets returns the product set registry
func (m *FixtureManager) ProductSets() *Registry { return m.productSets }

// GenerateID returns prefix followed by a random UUID, unique within the run
func (m *FixtureManager) GenerateID(prefix string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		id := prefix + uuid.New().String()
		if _, dup := m.seen[id]; !dup {
			m.seen[id] = struct{}{}
			return id
		}
	}
}

// NewProduct describes a product with a fresh id and registers it for teardown
func (m *FixtureManager) NewProduct(prefix, displayName, category string) TestResource {
	id := m.GenerateID(prefix)
	return TestResource{
		Category:    category,
		DisplayName: displayName,
		ID:          id,
		Kind:        KindProduct,
		Location:    m.location,
		Path:        m.TrackProduct(id),
		Project:     m.project,
	}
}

// NewProductSet describes a product set with a fresh id and registers it for teardown
func (m *FixtureManager) NewProductSet(prefix, displayName string) TestResource {
	id := m.GenerateID(prefix)
	return TestResource{
		DisplayName: displayName,
		ID:          id,
		Kind:        KindProductSet,
		Location:    m.location,
		Path:        m.TrackProductSet(id),
		Project:     m.project,
	}
}

// TrackProduct registers a product created by a test body and returns its path
func (m *FixtureManager) TrackProduct(id string) string {
	path := domain.ProductPath(m.project, m.location, id)
	m.products.Add(path)
	return path
}

// TrackProductSet registers a product set created by a test body and returns its path
func (m *FixtureManager) TrackProductSet(id string) string {
	path := domain.ProductSetPath(m.project, m.location, id)
	m.productSets.Add(path)
	return path
}
