package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPath(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		location string
		id       string
		want     string
	}{
		{
			name:     "simple",
			project:  "my-project",
			location: "us-west1",
			id:       "shoe-1",
			want:     "projects/my-project/locations/us-west1/products/shoe-1",
		},
		{
			name:     "id with uuid suffix",
			project:  "p",
			location: "europe-west1",
			id:       "ProductId4b3c2a1e-0000-4000-8000-000000000000",
			want:     "projects/p/locations/europe-west1/products/ProductId4b3c2a1e-0000-4000-8000-000000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProductPath(tt.project, tt.location, tt.id)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ProductPath(tt.project, tt.location, tt.id), "path must be deterministic")
		})
	}
}

func TestProductSetPath(t *testing.T) {
	got := ProductSetPath("p", "us-west1", "set-1")
	assert.Equal(t, "projects/p/locations/us-west1/productSets/set-1", got)
	assert.Equal(t, "set-1", ResourceID(got))
}

func TestParentOf(t *testing.T) {
	parent, err := ParentOf("projects/p/locations/l/products/x")
	require.NoError(t, err)
	assert.Equal(t, "projects/p/locations/l", parent)

	parent, err = ParentOf("projects/p/locations/l/productSets/s")
	require.NoError(t, err)
	assert.Equal(t, "projects/p/locations/l", parent)

	_, err = ParentOf("projects/p/products/x")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParentOf("projects/p/locations/l/images/x")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestValidateLocationPath(t *testing.T) {
	assert.NoError(t, ValidateLocationPath(LocationPath("p", "us-west1")))
	assert.ErrorIs(t, ValidateLocationPath("projects//locations/us-west1"), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateLocationPath("projects/p"), ErrInvalidArgument)
}

func TestValidateResourceID(t *testing.T) {
	assert.NoError(t, ValidateResourceID(""))
	assert.NoError(t, ValidateResourceID("test_product_id"))
	assert.ErrorIs(t, ValidateResourceID("a/b"), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateResourceID(strings.Repeat("x", MaxIDLength+1)), ErrInvalidArgument)
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{
			name:    "valid",
			product: Product{DisplayName: "test_product_display_name_1", ProductCategory: CategoryHomegoods},
		},
		{
			name:    "missing display name",
			product: Product{ProductCategory: CategoryHomegoods},
			wantErr: true,
		},
		{
			name:    "missing category",
			product: Product{DisplayName: "x"},
			wantErr: true,
		},
		{
			name:    "category checked by the backend",
			product: Product{DisplayName: "x", ProductCategory: CategoryToysV2},
		},
		{
			name: "empty label key",
			product: Product{
				DisplayName:     "x",
				ProductCategory: CategoryToys,
				Labels:          []KeyValue{{Key: "", Value: "v"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductID(t *testing.T) {
	p := Product{Name: ProductPath("p", "l", "abc")}
	assert.Equal(t, "abc", p.ID())
	assert.Equal(t, "plain", ResourceID("plain"))
}
