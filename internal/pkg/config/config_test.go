package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("EARNMAP_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvAsInt("EARNMAP_TEST_INT", 7))
	assert.Equal(t, 7, GetEnvAsInt("EARNMAP_TEST_INT_MISSING", 7))

	t.Setenv("EARNMAP_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetEnvAsInt("EARNMAP_TEST_INT", 7))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("EARNMAP_TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, GetEnvAsFloat("EARNMAP_TEST_FLOAT", 1.0))
	assert.Equal(t, 1.0, GetEnvAsFloat("EARNMAP_TEST_FLOAT_MISSING", 1.0))
}

func TestAnalysisDefaults(t *testing.T) {
	configs := loadConfigFromEnv()

	assert.Equal(t, "zscore", configs.Analysis.OutlierMethod)
	assert.Equal(t, "drop", configs.Analysis.AmbiguousPolicy)
	assert.Equal(t, 6.0, configs.Analysis.RideshareMaxHours)
	assert.Equal(t, 2.0, configs.Analysis.DeliveryMaxHours)
	assert.Equal(t, 0.95, configs.Analysis.ConfidenceLevel)
	assert.Equal(t, 5.0, configs.Analysis.SuppressAboveDollars)
}
