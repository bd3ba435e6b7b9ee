// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads crimeplot's defaults from the environment.
// Command-line flags override these values.
package config

import (
	"fmt"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/ggcrime/ggcrime/internal/geo"
	"github.com/ggcrime/ggcrime/internal/theme"
)

// Config holds crimeplot's environment settings.
type Config struct {
	Theme  string
	Scale  string
	OutDir string
	Addr   string

	// DateLayout is an extra timestamp layout, tried before the
	// built-in ones. It may be empty.
	DateLayout string

	// Location is the time zone of timestamps without one.
	Location *time.Location

	Strict bool

	// Region bounds the map charts. If HasRegion is false, maps
	// show every located record.
	Region    geo.Region
	HasRegion bool

	// MaxPoints limits the points drawn on map charts.
	MaxPoints int

	ShutdownTimeout time.Duration
}

// Load reads the configuration from environment variables, applying
// defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Theme:           sharedcfg.EnvOrDefault("CRIMEPLOT_THEME", theme.DefaultName),
		Scale:           sharedcfg.EnvOrDefault("CRIMEPLOT_SCALE", ""),
		OutDir:          sharedcfg.EnvOrDefault("CRIMEPLOT_OUT", "charts"),
		Addr:            sharedcfg.EnvOrDefault("CRIMEPLOT_ADDR", ":8080"),
		DateLayout:      sharedcfg.EnvOrDefault("CRIMEPLOT_DATE_LAYOUT", ""),
		ShutdownTimeout: shutdownTimeout,
	}

	if _, err := theme.Lookup(cfg.Theme); err != nil {
		return nil, fmt.Errorf("invalid CRIMEPLOT_THEME: %w", err)
	}
	if cfg.Scale != "" {
		if _, err := theme.LookupScale(cfg.Scale); err != nil {
			return nil, fmt.Errorf("invalid CRIMEPLOT_SCALE: %w", err)
		}
	}

	tz := sharedcfg.EnvOrDefault("CRIMEPLOT_TZ", "UTC")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid CRIMEPLOT_TZ: %w", err)
	}

	if cfg.Strict, err = strconv.ParseBool(sharedcfg.EnvOrDefault("CRIMEPLOT_STRICT", "false")); err != nil {
		return nil, fmt.Errorf("invalid CRIMEPLOT_STRICT: %w", err)
	}

	switch region := sharedcfg.EnvOrDefault("CRIMEPLOT_REGION", "chicago"); region {
	case "none":
	case "chicago":
		cfg.Region, cfg.HasRegion = geo.Chicago, true
	default:
		if cfg.Region, err = geo.ParseRegion(region); err != nil {
			return nil, fmt.Errorf("invalid CRIMEPLOT_REGION: %w", err)
		}
		cfg.HasRegion = true
	}

	maxPoints := sharedcfg.EnvOrDefault("CRIMEPLOT_MAX_POINTS", "20000")
	if cfg.MaxPoints, err = strconv.Atoi(maxPoints); err != nil || cfg.MaxPoints < 0 {
		return nil, fmt.Errorf("invalid CRIMEPLOT_MAX_POINTS %q", maxPoints)
	}

	return cfg, nil
}
