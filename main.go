package main

import (
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/golangdaddy/turbonitro/audio"
	"github.com/golangdaddy/turbonitro/commentary"
	"github.com/golangdaddy/turbonitro/config"
	"github.com/golangdaddy/turbonitro/input"
	"github.com/golangdaddy/turbonitro/logging"
	"github.com/golangdaddy/turbonitro/pkg/game"
	"github.com/golangdaddy/turbonitro/road"
	"github.com/golangdaddy/turbonitro/session"
	"github.com/golangdaddy/turbonitro/telemetry"
	"github.com/golangdaddy/turbonitro/traffic"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger, logCloser, err := logging.Setup(logging.Options{
		Level:          cfg.LogLevel,
		File:           cfg.LogFile,
		GraylogEnabled: cfg.Graylog.Enabled,
		GraylogAddress: cfg.Graylog.Address,
		Console:        os.Stderr,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	closers := []io.Closer{logCloser}
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Error().Err(err).Msg("Error during shutdown")
			}
		}
	}()

	metrics, err := telemetry.New()
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
		metrics = nil
	}

	sink := newAudio(cfg.Audio, logger)
	if c, ok := sink.(io.Closer); ok {
		closers = append(closers, c)
	}

	seed := cfg.Race.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info().Int64("seed", seed).Int("tickRate", cfg.Race.TickRate).Msg("Starting Turbo Nitro")

	tuning := cfg.Physics
	opts := session.DefaultOptions()
	opts.Tuning = tuning
	opts.Traffic = traffic.Config{
		Interval: cfg.Race.TrafficInterval,
		SpeedMin: tuning.TrafficSpeedMin,
		SpeedMax: tuning.TrafficSpeedMax,
	}
	opts.FeatureInterval = cfg.Race.FeatureInterval
	opts.ResultDelay = cfg.Race.ResultDelayTicks()
	opts.Rand = rand.New(rand.NewSource(seed))
	opts.Keys = input.NewKeySet()
	opts.Audio = sink
	opts.Commentator = newCommentator(cfg.Commentary, logger)
	opts.Metrics = metrics
	opts.Logger = logger
	ctrl := session.New(opts)

	g := game.NewGame(game.Options{
		Session:  ctrl,
		Tuning:   tuning,
		TickRate: cfg.Race.TickRate,
		Seed:     seed,
		Logger:   logger,
	})

	ebiten.SetWindowSize(int(road.CanvasWidth*cfg.Window.Scale), int(road.CanvasHeight*cfg.Window.Scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Race.TickRate)

	if err := ebiten.RunGame(g); err != nil {
		logger.Error().Err(err).Msg("Game exited with error")
	}
}

// newAudio opens the speaker, falling back to silence if no device is available
func newAudio(cfg audio.Config, logger zerolog.Logger) audio.Sink {
	if !cfg.Enabled {
		return audio.Nop{}
	}
	synth, err := audio.NewSynth(cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Audio unavailable, continuing without sound")
		return audio.Nop{}
	}
	return synth
}

// newCommentator prefers Gemini when a key is configured and uses the local summary otherwise
func newCommentator(cfg commentary.Config, logger zerolog.Logger) *commentary.Commentator {
	if !cfg.Enabled {
		return nil
	}
	var narrator commentary.Narrator = commentary.Local{}
	gemini, err := commentary.NewGemini(context.Background(), cfg.APIKey, cfg.Model)
	switch {
	case err == nil:
		narrator = gemini
		logger.Info().Str("model", cfg.Model).Msg("Race commentary from Gemini")
	case cfg.APIKey == "":
		logger.Info().Msg("No Gemini API key, using local race commentary")
	default:
		logger.Warn().Err(err).Msg("Gemini unavailable, using local race commentary")
	}
	return commentary.NewCommentator(narrator, cfg.Timeout, logger)
}
