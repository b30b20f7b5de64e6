package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/alexlioralexli/rangecdf/pkg/fingerprint"
)

func fingerprintCmd() *cli.Command {
	return &cli.Command{
		Name:      "fingerprint",
		Usage:     "Print the 64-bit fingerprint of a file's bytes",
		ArgsUsage: "[file | -]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
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
				return err
			}
			fmt.Printf("%016x\n", fingerprint.Fingerprint64(data))
			return nil
		},
	}
}
