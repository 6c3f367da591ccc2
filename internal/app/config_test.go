package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoaderConfig(files ...string) aconfig.Config {
	return aconfig.Config{
		SkipFlags: true,
		EnvPrefix: "STOREFRONT",
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_DATABASE_URL", "postgres://localhost/store")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := loadConfig(testLoaderConfig())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "postgres://localhost/store", cfg.DatabaseURL)
	assert.Equal(t, int64(1), cfg.DemoUserID)
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
}

func TestLoadConfig_PlatformDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "postgres://platform/db")
	t.Setenv("PORT", "9000")

	cfg, err := loadConfig(testLoaderConfig())
	require.NoError(t, err)

	assert.Equal(t, "postgres://platform/db", cfg.DatabaseURL)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
}

func TestLoadConfig_YAML(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_url: postgres://yaml/db\ndemo_user_id: 42\ncurrency: eur\n"), 0o600))

	cfg, err := loadConfig(testLoaderConfig(path))
	require.NoError(t, err)

	assert.Equal(t, "postgres://yaml/db", cfg.DatabaseURL)
	assert.Equal(t, int64(42), cfg.DemoUserID)
	assert.Equal(t, "eur", cfg.Currency)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("STOREFRONT_DATABASE_URL", "")
		_, err := loadConfig(testLoaderConfig())
		require.Error(t, err)
	})

	t.Run("non-positive demo user", func(t *testing.T) {
		t.Setenv("STOREFRONT_DATABASE_URL", "postgres://localhost/store")
		t.Setenv("STOREFRONT_DEMO_USER_ID", "0")
		_, err := loadConfig(testLoaderConfig())
		require.Error(t, err)
	})
}
