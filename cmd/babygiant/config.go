package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"runtime"
	"unicode"

	"github.com/naoina/toml"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"

	"babygiant/codec"
	"babygiant/dlog"
	"babygiant/logger"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "",
	Flags:       searchFlags,
	Description: `The dumpconfig command shows configuration values.`,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see %s for available fields", rt.PkgPath())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type logConfig struct {
	Verbosity int
	JSON      bool
}

type babygiantConfig struct {
	// Threads is the number of search workers per recovery, 0 means one per
	// available CPU.
	Threads  int
	Form     codec.Form
	BitWidth uint
	// Parallel is the number of batch entries recovered at the same time.
	Parallel int
	Log      logConfig
}

func defaultConfig() babygiantConfig {
	return babygiantConfig{
		Threads:  0,
		Form:     codec.TwistedEdwards,
		BitWidth: dlog.DefaultBitWidth,
		Parallel: 1,
		Log:      logConfig{Verbosity: 3},
	}
}

func loadConfig(file string, cfg *babygiantConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// buildConfig layers the defaults, the config file and the command line
// flags, in that order.
func buildConfig(ctx *cli.Context) (babygiantConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(threadsFlag.Name) {
		cfg.Threads = ctx.Int(threadsFlag.Name)
	}
	if ctx.IsSet(formFlag.Name) {
		form, err := codec.ParseForm(ctx.String(formFlag.Name))
		if err != nil {
			return cfg, err
		}
		cfg.Form = form
	}
	if ctx.IsSet(bitWidthFlag.Name) {
		cfg.BitWidth = ctx.Uint(bitWidthFlag.Name)
	}
	if ctx.IsSet(parallelFlag.Name) {
		cfg.Parallel = ctx.Int(parallelFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logJSONFlag.Name) {
		cfg.Log.JSON = ctx.Bool(logJSONFlag.Name)
	}
	return cfg, validateConfig(&cfg)
}

func validateConfig(cfg *babygiantConfig) error {
	if cfg.Threads < 0 {
		return fmt.Errorf("%w: Threads must not be negative, got %d", dlog.ErrInvalidArgument, cfg.Threads)
	}
	if cfg.Parallel < 1 {
		return fmt.Errorf("%w: Parallel must be at least 1, got %d", dlog.ErrInvalidArgument, cfg.Parallel)
	}
	if cfg.Log.Verbosity < 0 || cfg.Log.Verbosity > 5 {
		return fmt.Errorf("%w: Log.Verbosity must be between 0 and 5, got %d", dlog.ErrInvalidArgument, cfg.Log.Verbosity)
	}
	return nil
}

// threads resolves a zero thread count to the CPU quota of the process.
func (cfg *babygiantConfig) threads() int {
	if cfg.Threads > 0 {
		return cfg.Threads
	}
	return runtime.GOMAXPROCS(0)
}

func (cfg *babygiantConfig) decoder() *dlog.Decoder {
	d := dlog.NewDecoder(cfg.threads())
	d.Form = cfg.Form
	d.BitWidth = cfg.BitWidth
	return d
}

// setupLogger applies the Log section. Verbosity follows the usual 0 (silent)
// to 5 (trace) scale.
func setupLogger(cfg logConfig) {
	if cfg.Verbosity == 0 {
		logger.Disable()
		return
	}
	if cfg.JSON {
		logger.Set(zerolog.New(os.Stderr).With().Timestamp().Logger())
	}
	logger.SetLevel(verbosityLevel(cfg.Verbosity))
}

func verbosityLevel(v int) zerolog.Level {
	return zerolog.Level(4 - v)
}

// setupMaxProcs matches GOMAXPROCS to the container CPU quota, if any.
func setupMaxProcs() {
	log := logger.Logger()
	_, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug().Msgf(format, args...)
	}))
	if err != nil {
		log.Warn().Err(err).Msg("failed to set GOMAXPROCS")
	}
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := buildConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
