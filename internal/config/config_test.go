package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_DRIVER", "SCORING_CONCURRENCY", "MODEL_DIR", "MODEL_PATH", "LOG_JSON"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 4, cfg.Scoring.Concurrency)
	assert.Equal(t, "models", cfg.Hiring.ModelDir)
	assert.Equal(t, "models/hiring_prediction_model.json", cfg.Hiring.ModelPath)
	assert.False(t, cfg.Server.LogJSON)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("S3_BUCKET", "resumes")
	t.Setenv("SCORING_CONCURRENCY", "not-a-number")
	t.Setenv("RETRY_INITIAL_DELAY", "500ms")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.LogJSON)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, 4, cfg.Scoring.Concurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.Worker.RetryInitialDelay)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Driver: "s3", MaxFileSize: 1}}
	assert.ErrorContains(t, cfg.Validate(), "S3_BUCKET")

	cfg.Storage.Driver = "ftp"
	assert.ErrorContains(t, cfg.Validate(), "ftp")

	cfg.Storage.Driver = "local"
	cfg.Storage.MaxFileSize = 0
	assert.Error(t, cfg.Validate())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "resumes"}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=resumes sslmode=disable", cfg.GetDatabaseDSN())
}
