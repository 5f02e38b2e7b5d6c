package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spcuadros/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Batch.MaxWorkers = 7
	cfg.Extraction.Strategy = config.StrategyGlobal
	cfg.Extraction.BoilerplateMatch = config.MatchExact
	cfg.Output.RawExt = "htm"

	opts := OptionsFromConfig(cfg)

	require.Equal(t, 7, opts.MaxWorkers)
	require.Equal(t, config.StrategyGlobal, opts.Strategy)
	require.Equal(t, config.MatchExact, opts.Table.BoilerplateMatch)
	require.Equal(t, "htm", opts.Persist.RawExt)
	require.Equal(t, "h3", opts.Persist.TitleSelector)
	require.NoError(t, opts.Validate())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   error
	}{
		{"zero workers", func(o *Options) { o.MaxWorkers = 0 }, config.ErrInvalidMaxWorkers},
		{"zero attempts", func(o *Options) { o.Retry.MaxAttempts = 0 }, config.ErrInvalidMaxAttempts},
		{"negative delay", func(o *Options) { o.Retry.InitialDelayMs = -5 }, config.ErrInvalidInitialDelay},
		{"no timeout", func(o *Options) { o.Retry.TimeoutSec = 0 }, config.ErrInvalidTimeout},
		{"no row markers", func(o *Options) { o.Validation.RowMarkers = nil }, config.ErrNoRowMarkers},
		{"bad match", func(o *Options) { o.Table.BoilerplateMatch = "fuzzy" }, config.ErrInvalidBoilerplateMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := OptionsFromConfig(config.Default())
			tt.mutate(&opts)
			require.ErrorIs(t, opts.Validate(), tt.want)
		})
	}
}
