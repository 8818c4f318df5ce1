// Command babygiant recovers the plaintext of an exponential ElGamal
// ciphertext over Baby Jubjub from the decrypted message point.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"babygiant/dlog"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""

// Commonly used command line flags.
var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "format logs with JSON",
	}
	threadsFlag = &cli.IntFlag{
		Name:  "threads",
		Usage: "number of search workers per recovery (0 = one per CPU)",
	}
	formFlag = &cli.StringFlag{
		Name:  "form",
		Usage: "curve form of the input coordinates (twisted, edwards)",
		Value: "twisted",
	}
	bitWidthFlag = &cli.UintFlag{
		Name:  "bitwidth",
		Usage: "plaintext bit width, must be even",
		Value: dlog.DefaultBitWidth,
	}
	parallelFlag = &cli.IntFlag{
		Name:  "parallel",
		Usage: "number of batch entries recovered concurrently",
		Value: 1,
	}
)

var searchFlags = []cli.Flag{
	threadsFlag,
	formFlag,
	bitWidthFlag,
}

var app = newApp()

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "babygiant"
	app.Usage = "baby-step giant-step plaintext recovery for Baby Jubjub ElGamal"
	app.Version = "0.1.0"
	if gitCommit != "" {
		app.Version += "-" + gitCommit
	}
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		logJSONFlag,
	}
	app.Commands = []*cli.Command{
		recoverCommand,
		batchCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := buildConfig(ctx)
		if err != nil {
			return err
		}
		setupLogger(cfg.Log)
		setupMaxProcs()
		return nil
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		Fatalf(exitCode(err), "%v", err)
	}
}

// errUsage marks a malformed command line.
var errUsage = errors.New("usage error")

// exitCode maps an error to the process exit status: 2 when the instance
// itself is unusable, 1 for everything the caller can fix and retry.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case dlog.IsFatal(err):
		return 2
	default:
		return 1
	}
}

// Fatalf formats a message to standard error and exits the program with the
// given code. Input format errors also print the accepted format.
func Fatalf(code int, format string, args ...interface{}) {
	fatalf(os.Stderr, format, args...)
	os.Exit(code)
}

func fatalf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	for _, arg := range args {
		if err, ok := arg.(error); ok && errors.Is(err, dlog.ErrInputFormat) {
			fmt.Fprintln(w, dlog.FormatHelp)
			break
		}
	}
}
