package pipeline

import (
	"spcuadros/internal/config"
	"spcuadros/internal/persist"
	"spcuadros/internal/table"
)

// Options is everything a batch needs besides its references and directories.
type Options struct {
	MaxWorkers int
	Retry      config.RetryPolicy
	Validation config.ValidationConfig
	Strategy   string
	Table      table.Options
	Persist    persist.Options
}

// OptionsFromConfig converts a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxWorkers: cfg.Batch.MaxWorkers,
		Retry:      cfg.Retry,
		Validation: cfg.Validation,
		Strategy:   cfg.Extraction.Strategy,
		Table:      table.OptionsFromConfig(cfg.Extraction),
		Persist:    persist.OptionsFromConfig(cfg),
	}
}

// Validate rejects options that would make the whole batch meaningless.
func (o Options) Validate() error {
	if o.MaxWorkers < 1 {
		return config.ErrInvalidMaxWorkers
	}

	if err := o.Retry.Validate(); err != nil {
		return err
	}

	if o.Validation.MinLength < 0 {
		return config.ErrInvalidMinLength
	}

	if len(o.Validation.TableMarkers) == 0 {
		return config.ErrNoTableMarkers
	}

	if len(o.Validation.RowMarkers) == 0 {
		return config.ErrNoRowMarkers
	}

	if o.Strategy != config.StrategyNode && o.Strategy != config.StrategyGlobal {
		return config.ErrInvalidStrategy
	}

	m := o.Table.BoilerplateMatch
	if m != "" && m != config.MatchSubstring && m != config.MatchExact {
		return config.ErrInvalidBoilerplateMatch
	}

	return nil
}
