package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/alexlioralexli/rangecdf/internal/api"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		workers     int64
		rateLimit   float64
		rateBurst   int64
		cacheSize   int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the quantizer REST API",
		Flags: append(loggingFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "worker goroutines per request (0 = GOMAXPROCS)",
				Destination: &workers,
			},
			&cli.Float64Flag{
				Name:        "rate-limit",
				Usage:       "sustained requests/second on /v1/quantize (0 = unlimited)",
				Destination: &rateLimit,
			},
			&cli.Int64Flag{
				Name:        "rate-burst",
				Usage:       "burst allowance when --rate-limit is set",
				Value:       1,
				Destination: &rateBurst,
			},
			&cli.Int64Flag{
				Name:        "cache-size",
				Usage:       "max cached rows (0 = default)",
				Destination: &cacheSize,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, LoadConfig(), &addr, &workers, &rateLimit, &rateBurst)
			log := newLogger()

			server := api.NewServer(api.Config{
				Workers:      int(workers),
				CacheEntries: int(cacheSize),
				RateLimit:    rateLimit,
				RateBurst:    int(rateBurst),
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr, "rate_limit", rateLimit)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
