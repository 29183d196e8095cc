package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
)

var cfg struct {
	Backend   string
	LogLevel  string
	Hold      time.Duration
	Seed      int64
	Render    string
	RenderDur float64
}

func init() {
	flag.StringVar(&cfg.Backend, "backend", "pulse", "audio backend (pulse, oto)")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "minimum level of messages to log to console")
	flag.DurationVar(&cfg.Hold, "hold", 500*time.Millisecond, "repeat silence after which a key counts as released")
	flag.Int64Var(&cfg.Seed, "seed", 0, "RNG seed for randomize and noise (0 = time-based)")
	flag.StringVar(&cfg.Render, "render", "", "render the demo phrase to a WAV file and exit")
	flag.Float64Var(&cfg.RenderDur, "render-dur", 5.0, "render duration in seconds")
}

func main() {
	log.Logger = zerolog.New(
		zerolog.ConsoleWriter{
			Out: os.Stderr,
		},
	).With().Timestamp().Logger()

	flag.Parse()

	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Str("level", cfg.LogLevel).Msg("Unknown log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	epoch := time.Now()
	instrument := NewInstrument(epoch, rng)

	if cfg.Render != "" {
		if err := renderWAV(cfg.Render, instrument, demoScore, float32(cfg.RenderDur)); err != nil {
			log.Fatal().Err(err).Msg("render failed")
		}
		log.Info().Str("path", cfg.Render).Msg("rendered demo phrase")
		return
	}

	output, err := NewAudioOutput(cfg.Backend, instrument)
	if err != nil {
		log.Fatal().Err(err).Msg("audio output failed")
	}
	defer output.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		log.Info().Msg("Exit on SIGINT")
		cancel()
	}()

	go runStatus(ctx, instrument, time.Second)

	log.Info().
		Str("backend", cfg.Backend).
		Int64("seed", seed).
		Msg("playing; z-row for notes, r to randomize, q to quit")

	if err := runInput(ctx, []KeyboardHandler{instrument}, epoch, cfg.Hold); err != nil {
		log.Fatal().Err(err).Msg("input loop failed")
	}
}
