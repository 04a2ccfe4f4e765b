package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdstrike"
	"github.com/alnah/go-mdstrike/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// loadConfig resolves the effective configuration.
// Priority: CLI flags > env vars > config file > defaults.
func loadConfig(common *commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)

	if common.workers != 0 {
		cfg.Workers = common.workers
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFormatFlags copies marker flags that were given into cfg.
func mergeFormatFlags(f *formatFlags, cfg *config.Config) error {
	if err := f.validate(); err != nil {
		return err
	}

	setString(&cfg.Format.Quote, f.quote)
	setString(&cfg.Format.Emphasis, f.emphasis)
	setString(&cfg.Format.Strong, f.strong)
	setString(&cfg.Format.Bullet, f.bullet)
	setString(&cfg.Format.BulletOrdered, f.bulletOrdered)
	setString(&cfg.Format.Fence, f.fence)
	setString(&cfg.Format.Rule, f.rule)
	if f.setext {
		cfg.Format.Setext = true
	}
	if f.resourceLink {
		cfg.Format.ResourceLink = true
	}
	if f.noStrikethrough {
		off := false
		cfg.Format.Strikethrough = &off
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// processorOptions translates the format section into Processor options.
// Markers are already validated, so every set value is one byte.
func processorOptions(f config.FormatConfig) []mdstrike.Option {
	markers := []struct {
		value string
		opt   func(byte) mdstrike.Option
	}{
		{f.Quote, mdstrike.WithQuote},
		{f.Emphasis, mdstrike.WithEmphasis},
		{f.Strong, mdstrike.WithStrong},
		{f.Bullet, mdstrike.WithBullet},
		{f.BulletOrdered, mdstrike.WithBulletOrdered},
		{f.Fence, mdstrike.WithFence},
		{f.Rule, mdstrike.WithRule},
	}

	var opts []mdstrike.Option
	for _, m := range markers {
		if m.value != "" {
			opts = append(opts, m.opt(m.value[0]))
		}
	}
	if f.Setext {
		opts = append(opts, mdstrike.WithSetext())
	}
	if f.ResourceLink {
		opts = append(opts, mdstrike.WithResourceLink())
	}
	if !f.StrikethroughEnabled() {
		opts = append(opts, mdstrike.WithoutStrikethrough())
	}
	return opts
}

// newProcessor loads config, applies flags and builds a Processor.
func newProcessor(common *commonFlags, format *formatFlags, env *Environment) (*mdstrike.Processor, *config.Config, error) {
	cfg, err := loadConfig(common, env)
	if err != nil {
		return nil, nil, err
	}
	if err := mergeFormatFlags(format, cfg); err != nil {
		return nil, nil, err
	}

	p, err := mdstrike.New(processorOptions(cfg.Format)...)
	if err != nil {
		return nil, nil, err
	}
	return p, cfg, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
