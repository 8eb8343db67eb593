package domain

import (
	"fmt"
	"strings"
	"time"
)

// Product categories. The catalog backend decides which ones it accepts.
const (
	CategoryApparelV2       = "apparel-v2"
	CategoryGeneralV1       = "general-v1"
	CategoryHomegoodsV2     = "homegoods-v2"
	CategoryPackagedgoodsV1 = "packagedgoods-v1"
	CategoryToysV2          = "toys-v2"

	// Legacy categories, still accepted for existing product sets
	CategoryApparel   = "apparel"
	CategoryHomegoods = "homegoods"
	CategoryToys      = "toys"
)

// Field limits enforced by the catalog
const (
	MaxDescriptionLength = 4096
	MaxDisplayNameLength = 4096
	MaxIDLength          = 128
	MaxLabels            = 500
)

// KeyValue is a product label
type KeyValue struct {
	Key   string
	Value string
}

// Product represents a catalog entry (domain entity)
type Product struct {
	Description     string
	DisplayName     string
	Labels          []KeyValue
	Name            string
	ProductCategory string
}

// ID returns the last segment of the product resource path
func (p Product) ID() string {
	return ResourceID(p.Name)
}

// ProductSet represents a named grouping of products
type ProductSet struct {
	DisplayName string
	IndexTime   time.Time
	Name        string
}

// ID returns the last segment of the product set resource path
func (s ProductSet) ID() string {
	return ResourceID(s.Name)
}

// LocationPath returns projects/{project}/locations/{location}
func LocationPath(project, location string) string {
	return fmt.Sprintf("projects/%s/locations/%s", project, location)
}

// ProductPath returns projects/{project}/locations/{location}/products/{product}
func ProductPath(project, location, product string) string {
	return LocationPath(project, location) + "/products/" + product
}

// ProductSetPath returns projects/{project}/locations/{location}/productSets/{productSet}
func ProductSetPath(project, location, productSet string) string {
	return LocationPath(project, location) + "/productSets/" + productSet
}

// ResourceID returns the last path segment of a resource name
func ResourceID(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ParentOf returns the location path a product or product set name lives under.
func ParentOf(name string) (string, error) {
	parts := strings.Split(name, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "locations" {
		return "", fmt.Errorf("%w: malformed resource name %q", ErrInvalidArgument, name)
	}
	if parts[4] != "products" && parts[4] != "productSets" {
		return "", fmt.Errorf("%w: unknown collection %q in %q", ErrInvalidArgument, parts[4], name)
	}
	return strings.Join(parts[:4], "/"), nil
}

// ValidateLocationPath checks a parent path has the projects/x/locations/y shape
func ValidateLocationPath(parent string) error {
	parts := strings.Split(parent, "/")
	if len(parts) != 4 || parts[0] != "projects" || parts[2] != "locations" || parts[1] == "" || parts[3] == "" {
		return fmt.Errorf("%w: malformed parent %q", ErrInvalidArgument, parent)
	}
	return nil
}

// ValidateResourceID checks a caller-chosen product or product set id.
// An empty id is allowed; the catalog assigns one.
func ValidateResourceID(id string) error {
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: id longer than %d characters", ErrInvalidArgument, MaxIDLength)
	}
	if strings.Contains(id, "/") {
		return fmt.Errorf("%w: id %q must not contain '/'", ErrInvalidArgument, id)
	}
	return nil
}

// Validate checks the product fields supplied at creation
func (p Product) Validate() error {
	if p.DisplayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidArgument)
	}
	if len(p.DisplayName) > MaxDisplayNameLength {
		return fmt.Errorf("%w: display name longer than %d characters", ErrInvalidArgument, MaxDisplayNameLength)
	}
	if len(p.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description longer than %d characters", ErrInvalidArgument, MaxDescriptionLength)
	}
	if p.ProductCategory == "" {
		return fmt.Errorf("%w: product category is required", ErrInvalidArgument)
	}
	return ValidateLabels(p.Labels)
}

// ValidateLabels checks label count and that no key is empty
func ValidateLabels(labels []KeyValue) error {
	if len(labels) > MaxLabels {
		return fmt.Errorf("%w: more than %d labels", ErrInvalidArgument, MaxLabels)
	}
	for _, l := range labels {
		if l.Key == "" || l.Value == "" {
			return fmt.Errorf("%w: label key and value must be non-empty", ErrInvalidArgument)
		}
	}
	return nil
}

// Validate checks the product set fields supplied at creation
func (s ProductSet) Validate() error {
	if s.DisplayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidArgument)
	}
	if len(s.DisplayName) > MaxDisplayNameLength {
		return fmt.Errorf("%w: display name longer than %d characters", ErrInvalidArgument, MaxDisplayNameLength)
	}
	return nil
}
