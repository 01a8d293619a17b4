package main

import (
	"context"
	"errors"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/p3nguindeity/MPF-Nixie/internal/config"
	"github.com/p3nguindeity/MPF-Nixie/internal/events"
	"github.com/p3nguindeity/MPF-Nixie/internal/link"
	"github.com/p3nguindeity/MPF-Nixie/internal/preview"
)

const defaultPreviewTubes = 16

// session is a stand-in host: it owns the event bus and the link.
type session struct {
	cfg    config.Config
	bus    *events.Bus
	mgr    *link.Manager
	mirror *preview.Mirror
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	c, err := config.Load(configPath)
	switch {
	case err == nil:
		cfg = *c
	case errors.Is(err, fs.ErrNotExist) && portFlag != "":
		log.Warn().Str("path", configPath).Msg("config not found; using flags")
	default:
		return cfg, err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}
	if debugFlag {
		cfg.Debug = true
	}
	return cfg, nil
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, bus: events.NewBus()}
	var opts []link.Option
	if cfg.Preview != "" {
		tubes := cfg.Tubes
		if tubes <= 0 {
			tubes = defaultPreviewTubes
		}
		m, err := preview.Open(cfg.Preview, cfg.PreviewSPI, tubes, log.Logger)
		if err != nil {
			log.Warn().Err(err).Str("preview", cfg.Preview).Msg("preview unavailable; continuing without it")
		} else {
			s.mirror = m
			opts = append(opts, link.WithMirror(m))
		}
	}

	s.mgr = link.New(log.Logger.With().Str("component", "nixie").Logger(), opts...)
	if err := s.mgr.Initialize(ctx, cfg, s.bus); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) close() {
	s.mgr.Stop()
	if s.mirror != nil {
		if err := s.mirror.Halt(); err != nil {
			log.Debug().Err(err).Msg("preview halt failed")
		}
	}
}
