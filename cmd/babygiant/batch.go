package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/naoina/toml"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"babygiant/dlog"
	"babygiant/logger"
)

var batchCommand = &cli.Command{
	Name:      "batch",
	Usage:     "recover the plaintexts of a list of message points",
	ArgsUsage: "<file.toml>",
	Description: `
The batch file lists the points as

  [[Ciphertext]]
  Label = "alice"
  X = "0x05e7..."
  Y = "0xbdb2..."

Up to --parallel entries are recovered at the same time, each with --threads
workers. A malformed entry does not stop the batch; the results are printed
as a table once every entry is done.`,
	Flags:  append([]cli.Flag{parallelFlag}, searchFlags...),
	Action: batchRecover,
}

type batchEntry struct {
	Label string
	X, Y  string
}

type batchFile struct {
	Ciphertext []batchEntry
}

type batchResult struct {
	plaintext uint64
	took      time.Duration
	err       error
}

func loadBatch(file string) (*batchFile, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var batch batchFile
	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&batch)
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return &batch, err
}

func batchRecover(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("%w: batch expects exactly 1 argument <file.toml>, got %d", errUsage, ctx.NArg())
	}
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	batch, err := loadBatch(ctx.Args().First())
	if err != nil {
		return err
	}
	results := runBatch(cfg, batch.Ciphertext)
	renderBatch(ctx.App.Writer, batch.Ciphertext, results)
	return batchError(results)
}

// runBatch recovers every entry, cfg.Parallel at a time. Errors are kept per
// entry.
func runBatch(cfg babygiantConfig, entries []batchEntry) []batchResult {
	var (
		log     = logger.Logger()
		decoder = cfg.decoder()
		results = make([]batchResult, len(entries))
		g       errgroup.Group
	)
	g.SetLimit(cfg.Parallel)
	for i := range entries {
		i := i
		g.Go(func() error {
			start := time.Now()
			p, err := decoder.Recover(entries[i].X, entries[i].Y)
			results[i] = batchResult{plaintext: p, took: time.Since(start), err: err}
			if err != nil {
				log.Warn().Str("label", entries[i].Label).Err(err).Msg("recovery failed")
			}
			return nil
		})
	}
	// closures never fail, errors live in results
	_ = g.Wait()
	return results
}

func renderBatch(w io.Writer, entries []batchEntry, results []batchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Label", "Plaintext", "Time", "Status"})
	table.SetAutoWrapText(false)
	for i, r := range results {
		row := []string{entries[i].Label, "", r.took.Round(time.Millisecond).String(), "ok"}
		if r.err != nil {
			row[3] = r.err.Error()
		} else {
			row[1] = strconv.FormatUint(r.plaintext, 10)
		}
		table.Append(row)
	}
	table.Render()
}

// batchError returns the first fatal error of the batch, or else the first
// error, so that the exit status reflects the worst entry.
func batchError(results []batchResult) error {
	var first error
	for _, r := range results {
		if r.err == nil {
			continue
		}
		if dlog.IsFatal(r.err) {
			return fmt.Errorf("batch: %w", r.err)
		}
		if first == nil {
			first = r.err
		}
	}
	if first != nil {
		return fmt.Errorf("batch: %w", first)
	}
	return nil
}
