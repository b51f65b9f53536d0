package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("ARCHIVE_DRIVER", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "exports/", cfg.Archive.KeyPrefix)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("ARCHIVE_DRIVER", "fs")
	t.Setenv("ARCHIVE_DIR", "/tmp/exports")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "fs", cfg.Archive.Driver)
	assert.Equal(t, "/tmp/exports", cfg.Archive.Dir)
}

func TestLoad_ArchiveDriverDesconocido(t *testing.T) {
	t.Setenv("ARCHIVE_DRIVER", "ftp")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_S3SinBucket(t *testing.T) {
	t.Setenv("ARCHIVE_DRIVER", "s3")
	t.Setenv("ARCHIVE_S3_BUCKET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}

func TestLoad_JWTSecretObligatorioEnProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_JWTSecretDeDesarrollo(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWT.Secret)
}
