package impl

import (
	"context"
	"testing"

	"ministry/internal/errors"
	"ministry/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestMinistryService(t *testing.T) {
	cfg := newTestConfig()
	cfg.Ministry.Latitude, cfg.Ministry.Longitude = 4.8517, 31.5825

	t.Run("info", func(t *testing.T) {
		srv := NewMinistryService(cfg, stubProbe{}, newDiscardLogger())

		info := srv.Info(context.Background())
		assert.Equal(t, "Heavenly Nature Ministry", info.Name)
		assert.Equal(t, "John 17:22", info.Scripture)
		assert.Equal(t, usecase.Coordinates{Latitude: 4.8517, Longitude: 31.5825}, info.Coordinates)
	})

	t.Run("banner", func(t *testing.T) {
		srv := NewMinistryService(cfg, stubProbe{}, newDiscardLogger())

		banner := srv.Banner(context.Background())
		assert.Equal(t, "Heavenly Nature Ministry API", banner.Message)
		assert.Equal(t, "1.0.0", banner.Version)
	})

	t.Run("healthy", func(t *testing.T) {
		srv := NewMinistryService(cfg, stubProbe{}, newDiscardLogger())

		health := srv.Health(context.Background())
		assert.True(t, health.Healthy())
		assert.Equal(t, usecase.DatabaseConnected, health.Database)
		assert.NotEmpty(t, health.Uptime)
	})

	t.Run("database down", func(t *testing.T) {
		srv := NewMinistryService(cfg, stubProbe{err: errors.New("dial tcp: connection refused")}, newDiscardLogger())

		health := srv.Health(context.Background())
		assert.False(t, health.Healthy())
		assert.Equal(t, usecase.HealthStatusUnhealthy, health.Status)
		assert.Equal(t, usecase.DatabaseDisconnected, health.Database)
	})
}
