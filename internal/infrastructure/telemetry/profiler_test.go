package telemetry_test

import (
	"testing"

	"github.com/Pratham6392/shipment/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:       false,
		ServerAddress: "http://localhost:4040",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop(), "stop is idempotent")
}

func TestNewProfiler_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     telemetry.ProfilerConfig
		wantErr string
	}{
		{
			name:    "missing server address",
			cfg:     telemetry.ProfilerConfig{Enabled: true, ApplicationName: "shiplabel"},
			wantErr: "server address",
		},
		{
			name:    "missing application name",
			cfg:     telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"},
			wantErr: "application name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := telemetry.NewProfiler(tt.cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, p)
		})
	}
}
