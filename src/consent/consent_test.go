package consent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/humanmade/platform-core/src/config"
	"github.com/humanmade/platform-core/src/module"
)

// TestModuleRegistered verifies the consent module self-registers with
// enabled defaults.
func TestModuleRegistered(t *testing.T) {
	m, ok := module.Get(Slug)
	require.True(t, ok, "consent module should self-register")
	assert.Equal(t, "Consent", m.Title)
	assert.Equal(t, true, m.DefaultSettings["enabled"])
	require.NotNil(t, m.Loader)
}

// TestOptions_BeforeLoad verifies banner options are unresolved until the
// module loads.
func TestOptions_BeforeLoad(t *testing.T) {
	if BannerOptions.Len() != 0 {
		t.Skip("banner options already resolved by an earlier test")
	}
	_, err := Options()
	assert.Error(t, err)
}

// TestBannerOptions verifies the defaults-under-overrides contract: keys
// the project sets win, keys it leaves unset fall back to the built-in
// defaults. Exercises the module loader end to end.
func TestBannerOptions(t *testing.T) {
	settings := config.Map{
		"enabled":         true,
		"banner-position": "top",
	}
	require.NoError(t, load(context.Background(), settings))

	opts, err := Options()
	require.NoError(t, err)

	assert.Equal(t, "top", opts["banner-position"], "project setting wins")
	assert.Equal(t, 30, opts["consent-expiry-days"], "default fills unset key")
	assert.Equal(t, []any{"functional", "statistics", "marketing"}, opts["display-options"])
	assert.NotContains(t, opts, "enabled", "module toggle is not a banner option")
}

// TestBannerOptions_KeepsEarlierContributions verifies the loader's
// callback merges onto whatever earlier callbacks produced instead of
// replacing it.
func TestBannerOptions_KeepsEarlierContributions(t *testing.T) {
	require.NoError(t, load(context.Background(), config.Map{
		"enabled":         true,
		"banner-position": "top",
	}))

	opts := BannerOptions.Apply(config.Map{"theme": "dark"})

	assert.Equal(t, "dark", opts["theme"], "earlier contribution survives")
	assert.Equal(t, "top", opts["banner-position"])
	assert.Equal(t, 30, opts["consent-expiry-days"])
}
