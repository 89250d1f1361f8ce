// SPDX-License-Identifier: MIT

// Command gridmap creates a map layer from a YAML config, feeds it
// "x y value" samples and prints the resulting traversal.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"github.com/katalvlaran/gridmap/internal/config"
	"github.com/pkg/errors"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Config  string      `help:"Layer config file (YAML)." short:"c" type:"existingfile" required:""`
	Info    struct{}    `cmd:"" help:"Prints the layer geometry."`
	Fill    struct {
		Input  string `help:"Samples file with one 'x y value' per line. Reads stdin when omitted." placeholder:"<samples-file>" arg:"" optional:"" type:"existingfile"`
		Mode   string `help:"How samples are written into cells." enum:"set,add" default:"set"`
		Strict bool   `help:"Abort on the first sample outside the layer instead of skipping it."`
	} `cmd:"" help:"Writes samples into the layer and prints every cell."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("gridmap"),
		kong.Description("Fill a resolution-quantized map layer with samples."),
		kong.Vars{
			"version": VERSION,
		},
	)

	switch strings.ToLower(cli.Logging) {
	case "trace":
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	case "debug":
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	default:
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	}

	if !knownCommand(ctx.Command()) {
		sigolo.Fatalf("Unknown command '%s'", ctx.Command())
	}

	cfg, err := config.Load(cli.Config)
	sigolo.FatalCheck(err)

	l, err := cfg.Layer.NewLayer()
	sigolo.FatalCheck(err)
	defer func() {
		sigolo.FatalCheck(l.Release())
	}()

	switch ctx.Command() {
	case "info":
		printInfo(os.Stdout, l)
	case "fill", "fill <input>":
		var in io.Reader = os.Stdin
		if cli.Fill.Input != "" {
			f, err := os.Open(cli.Fill.Input)
			sigolo.FatalCheck(errors.Wrapf(err, "Unable to open samples file %s", cli.Fill.Input))
			defer f.Close()
			in = f
		}

		samples, err := readSamples(in)
		sigolo.FatalCheck(err)
		sigolo.Debugf("Read %d samples", len(samples))

		stats, err := applySamples(l, samples, writeMode(cli.Fill.Mode), cli.Fill.Strict)
		sigolo.FatalCheck(err)
		if stats.Skipped > 0 {
			sigolo.Warnf("Skipped %d of %d samples outside the layer", stats.Skipped, len(samples))
		}
		sigolo.Debugf("Applied %d samples", stats.Applied)

		tr, err := l.MakeTraversal()
		sigolo.FatalCheck(err)
		printTraversal(os.Stdout, tr)
	}
}

// knownCommand reports whether command is one of the dispatched kong paths.
func knownCommand(command string) bool {
	switch command {
	case "info", "fill", "fill <input>":
		return true
	}

	return false
}
