package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"transit-pathfinder/internal/config"
	"transit-pathfinder/internal/metrics"
	"transit-pathfinder/internal/publisher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	setupLogging(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp(cfg, os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

// setupLogging keeps stdout free for itineraries; all logs go to stderr.
func setupLogging(cfg *config.Config) {
	if cfg.LogJSON {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if cfg.Debug {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}
}

func newApp(cfg *config.Config, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "findpath",
		Usage:     "Find the fastest route between two stations of a transit network",
		ArgsUsage: "[NETWORK_FILE START_FILE TARGET_FILE]",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "db",
				Usage: "load the network from Postgres (DATABASE_URL) instead of a file; drops the NETWORK_FILE argument",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: cfg.OutputFormat,
				Usage: "output format: text, json or yaml",
			},
		},
		Action: routeAction(cfg),
		Commands: []*cli.Command{
			routeCommand(cfg),
			batchCommand(cfg),
			inspectCommand(cfg),
		},
	}
}

// session carries the optional collaborators of one invocation.
type session struct {
	cfg     *config.Config
	metrics *metrics.Collector
	pub     *publisher.NATSPublisher
}

func openSession(cfg *config.Config) (*session, error) {
	s := &session{cfg: cfg}

	if cfg.MetricsTextfile != "" {
		s.metrics = metrics.NewCollector()
	}

	if cfg.NATSURL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, cfg.LogNATSSubjects, wrapPublisherMetrics(s.metrics))
		if err != nil {
			return nil, err
		}
		s.pub = pub
	}

	return s, nil
}

func (s *session) Close() {
	if s.pub != nil {
		s.pub.Close()
	}
	if s.metrics != nil {
		if err := s.metrics.WriteTextfile(s.cfg.MetricsTextfile); err != nil {
			log.Error().Err(err).Str("path", s.cfg.MetricsTextfile).Msg("Failed to write metrics")
		}
	}
}

// wrapPublisherMetrics adapts our Collector to the PublisherMetrics interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return &pubMetrics{c: c}
}

type pubMetrics struct{ c *metrics.Collector }

func (p *pubMetrics) NATSPublishedInc()              { p.c.NATSPublished.Inc() }
func (p *pubMetrics) NATSPublishErrInc()             { p.c.NATSPublishErrs.Inc() }
func (p *pubMetrics) PublishObserve(d time.Duration) { p.c.PublishDuration.Observe(d.Seconds()) }
