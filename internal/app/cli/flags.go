// Package cli implements the coinstats command line: flag parsing, date prompting and mode dispatch.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Mode is the single action selected on the command line.
type Mode int

const (
	ModeNone Mode = iota
	ModeAverage
	ModeIncrease
	ModeExport
)

// ErrMultipleModes is returned when more than one mode flag is given.
var ErrMultipleModes = errors.New("choose only one of --average-price-by-month, --consecutive-increase, --export")

// Options holds the parsed command line.
// Coin, Format and File are also bound into viper, so config files and environment can supply them.
type Options struct {
	Average  bool
	Increase bool
	Export   bool

	StartDate string
	EndDate   string
	Coin      string
	Format    string
	File      string
	Config    string
}

// flagAliases maps short spellings onto canonical flag names.
var flagAliases = map[string]string{
	"avg":   "average-price-by-month",
	"incr":  "consecutive-increase",
	"exp":   "export",
	"sdate": "start-date",
	"edate": "end-date",
	"f":     "format",
}

// ViperBindings maps viper keys onto the flags that override them.
var ViperBindings = map[string]string{
	"coin":          "coin",
	"export.format": "format",
	"export.file":   "file",
}

// NewFlagSet registers every coinstats flag on a fresh FlagSet writing into opts.
func NewFlagSet(opts *Options, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("coinstats", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := flagAliases[name]; ok {
			name = canonical
		}
		return pflag.NormalizedName(name)
	})

	fs.BoolVar(&opts.Average, "average-price-by-month", false, "print the average closing price of every month in the range (alias --avg)")
	fs.BoolVar(&opts.Increase, "consecutive-increase", false, "print the longest run of non-decreasing closing prices (alias --incr)")
	fs.BoolVar(&opts.Export, "export", false, "export the daily closing prices to a file (alias --exp)")
	fs.StringVar(&opts.StartDate, "start-date", "", "first day of the range, yyyy-mm-dd or yyyy-mm (alias --sdate)")
	fs.StringVar(&opts.EndDate, "end-date", "", "last day of the range, yyyy-mm-dd or yyyy-mm (alias --edate)")
	fs.StringVar(&opts.Coin, "coin", "", "CoinPaprika coin id (default btc-bitcoin)")
	fs.StringVar(&opts.Format, "format", "", "export format: csv or json (default csv, alias --f)")
	fs.StringVar(&opts.File, "file", "", "export file name (default {coin}_data.{format})")
	fs.StringVar(&opts.Config, "config", "", "path to a YAML config file")

	fs.Usage = func() {
		_, _ = fmt.Fprintln(output, "Usage: coinstats [--avg | --incr | --exp] --start-date DATE --end-date DATE [options]")
		_, _ = fmt.Fprintln(output)
		fs.PrintDefaults()
	}
	return fs
}

// Mode returns the selected mode, or ErrMultipleModes.
func (o Options) Mode() (Mode, error) {
	mode, n := ModeNone, 0
	if o.Average {
		mode, n = ModeAverage, n+1
	}
	if o.Increase {
		mode, n = ModeIncrease, n+1
	}
	if o.Export {
		mode, n = ModeExport, n+1
	}
	if n > 1 {
		return ModeNone, ErrMultipleModes
	}
	return mode, nil
}

// ApplyConfig fills Coin, Format and File from viper, where bound flags, environment
// and config file have already been merged.
func (o *Options) ApplyConfig(v interface{ GetString(string) string }) {
	o.Coin = v.GetString("coin")
	o.Format = v.GetString("export.format")
	o.File = v.GetString("export.file")
}
