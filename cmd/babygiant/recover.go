package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var recoverCommand = &cli.Command{
	Name:      "recover",
	Usage:     "recover the plaintext embedded in a message point",
	ArgsUsage: "<x> <y>",
	Description: `
Recover p from the point (x, y) = p·G, where x and y are 0x-prefixed hexadecimal
coordinates of at most 32 bytes, as returned by the circuit decryption.

The search uses --threads workers and only succeeds for p below 2^bitwidth.`,
	Flags:  searchFlags,
	Action: recoverPlaintext,
}

func recoverPlaintext(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("%w: recover expects exactly 2 arguments <x> <y>, got %d", errUsage, ctx.NArg())
	}
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	p, err := cfg.decoder().Recover(ctx.Args().Get(0), ctx.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, p)
	return nil
}
