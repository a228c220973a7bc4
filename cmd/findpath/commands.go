package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"transit-pathfinder/internal/config"
	"transit-pathfinder/internal/db"
	"transit-pathfinder/internal/itinerary"
	"transit-pathfinder/internal/network"
	"transit-pathfinder/internal/query"
)

func routeCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "find the fastest route between the stations named in two files",
		ArgsUsage: "[NETWORK_FILE START_FILE TARGET_FILE]",
		Action:    routeAction(cfg),
	}
}

func routeAction(cfg *config.Config) cli.ActionFunc {
	return func(c *cli.Context) error {
		format, err := itinerary.ParseFormat(c.String("format"))
		if err != nil {
			return err
		}

		args, err := positional(c, []string{cfg.NetworkFile, cfg.StartFile, cfg.TargetFile})
		if err != nil {
			return err
		}
		networkFile, startFile, targetFile := args[0], args[1], args[2]

		start, err := query.ReadStationFile(startFile)
		if err != nil {
			return err
		}
		target, err := query.ReadStationFile(targetFile)
		if err != nil {
			return err
		}

		s, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		net, err := s.loadNetwork(c.Context, c.Bool("db"), networkFile)
		if err != nil {
			return err
		}

		runner := query.NewRunner(net, 1, publisherOf(s), s.metrics)
		answer := runner.Query(c.Context, query.Query{Start: start, Target: target})
		return answer.Encode(c.App.Writer, format)
	}
}

func batchCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "answer every query of a file concurrently; one query per line as two quoted station names",
		ArgsUsage: "NETWORK_FILE QUERIES_FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Value: cfg.Workers,
				Usage: "maximum number of searches running at once",
			},
		},
		Action: func(c *cli.Context) error {
			format, err := itinerary.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}

			args, err := positional(c, []string{cfg.NetworkFile, ""})
			if err != nil {
				return err
			}
			if args[1] == "" {
				return fmt.Errorf("missing QUERIES_FILE argument")
			}

			queries, err := query.ReadQueriesFile(args[1])
			if err != nil {
				return err
			}

			s, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			net, err := s.loadNetwork(c.Context, c.Bool("db"), args[0])
			if err != nil {
				return err
			}

			started := time.Now()
			answers := query.NewRunner(net, c.Int("workers"), publisherOf(s), s.metrics).Run(c.Context, queries)
			log.Info().Int("queries", len(queries)).Dur("elapsed", time.Since(started)).Msg("Batch complete")

			for _, a := range answers {
				if err := a.Encode(c.App.Writer, format); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func inspectCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "dump the connections of a station, or list all stations",
		ArgsUsage: "NETWORK_FILE [STATION]",
		Action: func(c *cli.Context) error {
			args, err := positional(c, []string{cfg.NetworkFile, ""})
			if err != nil {
				return err
			}

			s := &session{cfg: cfg}
			net, err := s.loadNetwork(c.Context, c.Bool("db"), args[0])
			if err != nil {
				return err
			}

			if args[1] == "" {
				for _, name := range net.Stations() {
					id, _ := net.Lookup(name)
					fmt.Fprintf(c.App.Writer, "%s (%d connections)\n", name, len(net.Connections(id)))
				}
				return nil
			}

			id, ok := net.Lookup(args[1])
			if !ok {
				fmt.Fprintf(c.App.Writer, "Station %q not found in network.\n", args[1])
				return nil
			}

			type connection struct {
				To         string
				TravelTime int
				Line       string
			}
			var connections []connection
			for _, conn := range net.Connections(id) {
				connections = append(connections, connection{To: net.Name(conn.To), TravelTime: conn.TravelTime, Line: conn.Line})
			}
			pretty.Fprintf(c.App.Writer, "%# v\n", connections)
			return nil
		},
	}
}

// positional resolves the positional arguments against defaults. With
// --db the leading network file argument is dropped.
func positional(c *cli.Context, defaults []string) ([]string, error) {
	fromDB := c.Bool("db")
	if fromDB {
		defaults = append([]string{""}, defaults[1:]...)
	}

	given := c.Args().Slice()
	if fromDB {
		given = append([]string{""}, given...)
	}
	if len(given) > len(defaults) {
		return nil, fmt.Errorf("too many arguments: %d", c.NArg())
	}

	args := make([]string, len(defaults))
	copy(args, defaults)
	copy(args, given)
	return args, nil
}

func (s *session) loadNetwork(ctx context.Context, fromDB bool, path string) (*network.Network, error) {
	started := time.Now()

	var net *network.Network
	if fromDB {
		if s.cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("--db needs DATABASE_URL, PG_DSN or PGDATABASE")
		}
		conn, err := db.Connect(ctx, s.cfg.DatabaseURL, s.cfg.NetworkName)
		if err != nil {
			return nil, err
		}
		defer conn.Close()

		net, err = db.LoadNetwork(ctx, conn)
		if err != nil {
			return nil, err
		}
		path = "database"
	} else {
		var err error
		net, err = network.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	elapsed := time.Since(started)
	s.metrics.ObserveLoad(net.Len(), net.ConnectionCount(), elapsed)
	log.Debug().
		Str("source", path).
		Int("stations", net.Len()).
		Int("connections", net.ConnectionCount()).
		Dur("elapsed", elapsed).
		Msg("Network loaded")

	return net, nil
}

// publisherOf avoids handing a typed nil publisher to the runner.
func publisherOf(s *session) query.Publisher {
	if s.pub == nil {
		return nil
	}
	return s.pub
}
