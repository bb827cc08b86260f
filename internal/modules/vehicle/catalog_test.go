package vehicle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Resolve(t *testing.T) {
	c := DefaultCatalog()

	cl, err := c.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, "Class 1: Private Cars", cl.Name)
	assert.InDelta(t, 0.15, cl.RatePerKm, 1e-9)

	_, err = c.Resolve("9")
	assert.ErrorIs(t, err, ErrUnknownClass)

	_, err = c.Resolve(" 1")
	assert.ErrorIs(t, err, ErrUnknownClass, "ids are matched exactly")
}

func TestCatalog_ListOrdered(t *testing.T) {
	c, err := NewCatalog([]Class{
		{ID: "10", Name: "Ten"},
		{ID: "b", Name: "Bee"},
		{ID: "2", Name: "Two"},
		{ID: "a", Name: "Ay"},
	})
	require.NoError(t, err)

	var ids []string
	for _, cl := range c.List() {
		ids = append(ids, cl.ID)
	}
	assert.Equal(t, []string{"2", "10", "a", "b"}, ids)
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		classes []Class
	}{
		{"empty", nil},
		{"missing id", []Class{{Name: "x", RatePerKm: 1}}},
		{"missing name", []Class{{ID: "1", RatePerKm: 1}}},
		{"negative rate", []Class{{ID: "1", Name: "x", RatePerKm: -0.1}}},
		{"duplicate", []Class{{ID: "1", Name: "x"}, {ID: "1", Name: "y"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.classes)
			assert.ErrorIs(t, err, ErrBadCatalog)
		})
	}
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.yaml")
	body := `classes:
  - id: "1"
    name: Motorcycle
    rate_per_km: 0.05
  - id: "2"
    name: Car
    rate_per_km: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	cl, err := c.Resolve("2")
	require.NoError(t, err)
	assert.Equal(t, "Car", cl.Name)
	assert.InDelta(t, 0.2, cl.RatePerKm, 1e-9)
	assert.Len(t, c.List(), 2)
}

func TestLoadCatalog_EmptyPathUsesDefaults(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, c.List(), len(DefaultClasses))
}

func TestParseCatalog_BadYAML(t *testing.T) {
	_, err := ParseCatalog([]byte("classes: [oops"))
	assert.ErrorIs(t, err, ErrBadCatalog)
}
