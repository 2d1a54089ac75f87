package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDefaultContainsPinnedEntries(t *testing.T) {
	c := Default()

	views, ok := c.Lookup("Instagram", "Views")
	require.True(t, ok)
	require.True(t, views.UnitPrice.Equal(decimal.NewFromInt(5)))
	require.Equal(t, PerThousand, views.Basis)

	comments, ok := c.Lookup("Instagram", "Comments")
	require.True(t, ok)
	require.True(t, comments.UnitPrice.Equal(decimal.NewFromInt(10)))
	require.Equal(t, PerUnit, comments.Basis)

	likes, ok := c.Lookup("Twitter", "Likes")
	require.True(t, ok)
	require.True(t, likes.UnitPrice.Equal(decimal.NewFromInt(300)))
	require.Equal(t, PerThousand, likes.Basis)
}

func TestLookupIsTotalForMenus(t *testing.T) {
	c := Default()
	for _, platform := range c.Platforms() {
		services := c.Services(platform)
		require.NotEmpty(t, services, "platform %s offers no services", platform)
		for _, service := range services {
			_, ok := c.Lookup(platform, service)
			require.True(t, ok, "lookup missing for %s/%s", platform, service)
		}
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Entry{
		{Platform: "Instagram", Service: "Likes", UnitPrice: decimal.NewFromInt(8), Basis: PerThousand},
		{Platform: "Instagram", Service: "Likes", UnitPrice: decimal.NewFromInt(9), Basis: PerThousand},
	})
	require.Error(t, err)
}

func TestNewRejectsBadEntries(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New([]Entry{{Platform: "", Service: "Likes", UnitPrice: decimal.NewFromInt(1), Basis: PerUnit}})
	require.Error(t, err)

	_, err = New([]Entry{{Platform: "Instagram", Service: "Likes", UnitPrice: decimal.Zero, Basis: PerUnit}})
	require.Error(t, err)

	_, err = New([]Entry{{Platform: "Instagram", Service: "Likes", UnitPrice: decimal.NewFromInt(1), Basis: "per_dozen"}})
	require.Error(t, err)
}

func TestLoadFileMatchesDefaultPins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	chart := `entries:
  - platform: Instagram
    service: Views
    unit_price: "5"
    unit_basis: per_thousand
  - platform: Instagram
    service: Comments
    unit_price: "10"
    unit_basis: per_unit
  - platform: Twitter
    service: Likes
    unit_price: "300"
    unit_basis: per_thousand
`
	require.NoError(t, os.WriteFile(path, []byte(chart), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	require.Equal(t, []string{"Instagram", "Twitter"}, c.Platforms())

	def := Default()
	for _, pair := range [][2]string{{"Instagram", "Views"}, {"Instagram", "Comments"}, {"Twitter", "Likes"}} {
		fromFile, ok := c.Lookup(pair[0], pair[1])
		require.True(t, ok)
		fromDefault, ok := def.Lookup(pair[0], pair[1])
		require.True(t, ok)
		require.True(t, fromFile.UnitPrice.Equal(fromDefault.UnitPrice))
		require.Equal(t, fromDefault.Basis, fromFile.Basis)
	}
}

func TestParseUnitBasis(t *testing.T) {
	basis, err := ParseUnitBasis(" Per_Thousand ")
	require.NoError(t, err)
	require.Equal(t, PerThousand, basis)

	_, err = ParseUnitBasis("per_dozen")
	require.Error(t, err)
}
