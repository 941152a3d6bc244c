// Package probe runs "test connection" checks: it dials an engine with its
// real driver and, when that fails, explains the failure through the
// engine's error catalog.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/koustreak/dbspec/internal/engine"
	"github.com/koustreak/dbspec/internal/errs"
	"github.com/koustreak/dbspec/internal/logger"
)

// Config holds probe settings.
type Config struct {
	// ConnectTimeout bounds a single probe, DNS lookup included.
	ConnectTimeout time.Duration
}

// DefaultConfig returns the timeout used when none is configured.
func DefaultConfig() *Config {
	return &Config{ConnectTimeout: 10 * time.Second}
}

// Result is the outcome of one probe. Errors is empty when OK is true.
type Result struct {
	OK     bool         `json:"ok"`
	Errors []errs.Error `json:"errors"`
}

// Prober runs probes. It is safe for concurrent use.
type Prober struct {
	cfg *Config
	log *logger.Logger
}

// New returns a Prober. A nil cfg means DefaultConfig, a nil log discards.
func New(cfg *Config, log *logger.Logger) *Prober {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Prober{cfg: cfg, log: log}
}

// Run pings dsn with spec's driver. Connection values parsed from the DSN
// fill in template parameters the driver message leaves out. A DSN that
// cannot be parsed is reported as a GENERIC_ERROR without dialing.
func (p *Prober) Run(ctx context.Context, spec engine.Spec, dsn string) Result {
	log := p.log.With().Str("engine", string(spec.Name())).Logger()

	params, err := spec.ConnectionContext(dsn)
	if err != nil {
		log.ErrorWith("invalid dsn", err, nil)
		return Result{Errors: []errs.Error{*errs.Generic(spec.EngineName(), err.Error())}}
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.ConnectTimeout)
	defer cancel()

	start := time.Now()
	err = spec.Ping(ctx, dsn)
	elapsed := time.Since(start)

	if err == nil {
		log.With().
			Str("host", params.Get(engine.KeyHostname)).
			Str("elapsed", elapsed.String()).
			Logger().
			Info("probe succeeded")
		return Result{OK: true, Errors: []errs.Error{}}
	}

	found := engine.Classify(spec, err, params)
	log.With().Err(err).Logger().Diagnosis(spec.EngineName(), spec.DriverMessage(err), found)
	return Result{Errors: found}
}

// RunNamed looks name up in r and probes it.
func (p *Prober) RunNamed(ctx context.Context, r *engine.Registry, name, dsn string) (Result, error) {
	spec, err := r.Get(name)
	if err != nil {
		return Result{}, fmt.Errorf("probe: %w", err)
	}
	return p.Run(ctx, spec, dsn), nil
}
