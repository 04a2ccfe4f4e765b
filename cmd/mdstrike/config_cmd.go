package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdstrike/internal/yamlutil"
	flag "github.com/spf13/pflag"
)

// runConfig prints the effective configuration as YAML. The output is a
// valid config file.
func runConfig(args []string, env *Environment) error {
	flags, rest, err := parseConfigFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConfigUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: config takes no arguments, got %q", ErrUsage, rest[0])
	}

	cfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	if err := mergeFormatFlags(&flags.format, cfg); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
