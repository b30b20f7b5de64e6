package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/alexlioralexli/rangecdf/pkg/cdfquant"
)

func quantizeCmd() *cli.Command {
	var (
		precision int64
		workers   int64
		output    string
	)

	return &cli.Command{
		Name:      "quantize",
		Usage:     "Quantize JSON PMF rows into CDF rows",
		ArgsUsage: "[input.json | -]",
		Flags: append(loggingFlags(),
			&cli.Int64Flag{
				Name:        "precision",
				Aliases:     []string{"p"},
				Usage:       "CDF bit precision (1-16)",
				Value:       16,
				Destination: &precision,
			},
			&cli.Int64Flag{
				Name:        "workers",
				Aliases:     []string{"w"},
				Usage:       "worker goroutines (0 = GOMAXPROCS)",
				Destination: &workers,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (default stdout)",
				Destination: &output,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyQuantizeConfig(cmd, LoadConfig(), &precision, &workers)
			log := newLogger()

			rows, err := readRows(cmd.Args().First())
			if err != nil {
				return err
			}

			start := time.Now()
			cdf, err := cdfquant.QuantizeBatch(rows, int(precision), int(workers))
			if err != nil {
				return err
			}
			log.Info("quantized",
				"rows", len(rows),
				"symbols", len(rows[0]),
				"precision", precision,
				"elapsed", time.Since(start))

			return writeRows(output, cdf)
		},
	}
}

// readRows loads PMF rows from a JSON file or stdin ("-" or no argument).
// Both a single row ([0.5, 0.5]) and a batch of rows ([[...], [...]]) are
// accepted.
func readRows(path string) ([][]float64, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err == nil {
		return rows, nil
	}
	var row []float64
	if err := json.Unmarshal(data, &row); err == nil {
		return [][]float64{row}, nil
	}
	return nil, fmt.Errorf("input must be a JSON array of numbers or an array of such arrays")
}

func writeRows(path string, cdf [][]uint32) error {
	data, err := json.MarshalIndent(cdf, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
