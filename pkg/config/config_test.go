package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	require.NotNil(t, cfg)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, int64(5*1024*1024), cfg.Import.MaxFileSizeBytes)
	assert.Equal(t, 5000, cfg.Import.MaxRows)
	assert.False(t, cfg.Import.AllowPartial)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("IMPORT_ALLOW_PARTIAL", true)
	v.Set("IMPORT_MAX_FILE_SIZE", 0)
	v.Set("IMPORT_MAX_ROWS", 10)
	v.Set("ALLOWED_ORIGINS", " https://ftv.szlg.info/ , ,http://localhost:3000")

	cfg := fromViper(v)
	assert.True(t, cfg.Import.AllowPartial)
	assert.Equal(t, int64(5*1024*1024), cfg.Import.MaxFileSizeBytes)
	assert.Equal(t, 10, cfg.Import.MaxRows)
	assert.Equal(t, []string{"https://ftv.szlg.info/", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}
