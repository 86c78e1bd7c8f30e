package grinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hammamikhairi/ottobrew/internal/dataset"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	return NewCatalog(ds.Grinders, logger.New(logger.LevelOff, nil))
}

func TestByIDRoundTrip(t *testing.T) {
	c := newTestCatalog(t)
	for _, g := range c.List() {
		got, ok := c.ByID(g.ID)
		require.True(t, ok, g.ID)
		assert.Equal(t, g, got)
	}
}

func TestByIDUnknown(t *testing.T) {
	c := newTestCatalog(t)
	_, ok := c.ByID("nope")
	assert.False(t, ok)
}

func TestByType(t *testing.T) {
	c := newTestCatalog(t)

	manual := c.ByType(domain.GrinderManual)
	electric := c.ByType(domain.GrinderElectric)
	assert.Len(t, manual, 6)
	assert.Len(t, electric, 8)
	for _, g := range manual {
		assert.Equal(t, domain.GrinderManual, g.Type)
	}

	none := c.ByType(domain.GrinderType("steam"))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestByBrand(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		brand string
		want  int
	}{
		{"1Zpresso", 4},
		{"Commandante", 2},
		{"Fellow", 1},
		{"fellow", 0},
		{"NonExistent", 0},
	}
	for _, tt := range tests {
		t.Run(tt.brand, func(t *testing.T) {
			got := c.ByBrand(tt.brand)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestByIDsKeepsOrderAndSkipsUnknown(t *testing.T) {
	c := newTestCatalog(t)
	got := c.ByIDs([]string{"sage-barista-pro", "ghost", "timemore-078s"})
	require.Len(t, got, 2)
	assert.Equal(t, "sage-barista-pro", got[0].ID)
	assert.Equal(t, "timemore-078s", got[1].ID)
}

func TestSearch(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"ode", []string{"fellow-ode-gen2"}},
		{"FELLOW ODE", []string{"fellow-ode-gen2"}},
		{"commandante", []string{"commandante-c40-std", "commandante-c40-red"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Search(tt.query)
			ids := make([]string, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Len(t, c.Search("   "), len(c.List()))
}

func TestBrandsFirstSeen(t *testing.T) {
	c := newTestCatalog(t)
	brands := c.Brands()
	assert.Equal(t, "Timemore", brands[0])
	assert.Len(t, brands, 7)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := newTestCatalog(t)
	g, ok := c.ByID("commandante-c40-red")
	require.True(t, ok)
	g.Variants[0] = "mutated"
	g.Name = "mutated"

	again, _ := c.ByID("commandante-c40-red")
	assert.Equal(t, "Red Clix", again.Variants[0])
	assert.Equal(t, "C40 MK4", again.Name)
}

func TestNewCatalogDropsDuplicates(t *testing.T) {
	c := NewCatalog([]domain.Grinder{
		{ID: "a", Name: "First", Brand: "X", Type: domain.GrinderManual},
		{ID: "a", Name: "Second", Brand: "X", Type: domain.GrinderManual},
	}, logger.New(logger.LevelOff, nil))

	assert.Len(t, c.List(), 1)
	g, _ := c.ByID("a")
	assert.Equal(t, "First", g.Name)
}

func TestByTypePartitionsCatalog(t *testing.T) {
	c := newTestCatalog(t)
	all := c.List()

	rapid.Check(t, func(t *rapid.T) {
		g := rapid.SampledFrom(all).Draw(t, "grinder")
		got, ok := c.ByID(g.ID)
		if !ok || got.ID != g.ID {
			t.Fatalf("ByID(%q) did not return the grinder", g.ID)
		}
		found := false
		for _, other := range c.ByType(g.Type) {
			if other.ID == g.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("grinder %q missing from ByType(%s)", g.ID, g.Type)
		}
		for _, other := range c.ByBrand(g.Brand) {
			if other.Brand != g.Brand {
				t.Fatalf("ByBrand(%q) returned %q", g.Brand, other.Brand)
			}
		}
	})
}
