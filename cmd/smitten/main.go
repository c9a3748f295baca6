//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

var version = "DEV"

type Globals struct {
	LogLevel string          `help:"Log level (debug, info, warn or error)." default:"info" enum:"debug,info,warn,error"`
	Verbose  bool            `short:"v" help:"Verbose (same as --log-level=debug)."`
	Config   kong.ConfigFlag `help:"Load flags from a JSON configuration file."`
}

type CLI struct {
	Globals

	Convert   ConvertCmd   `cmd:"" help:"Convert identifiers of any format to the canonical format."`
	Parse     ParseCmd     `cmd:"" help:"Parse canonical identifiers and print their structure."`
	Normalize NormalizeCmd `cmd:"" help:"Convert and normalize identifiers to a single range."`
	Overlap   OverlapCmd   `cmd:"" help:"Report features overlapping query identifiers."`
	Refs      RefsCmd      `cmd:"" help:"Convert reference names of a SAM/BAM header."`
	Lift      LiftCmd      `cmd:"" help:"Lift alignments onto the coordinates of the raw sequence."`
	Version   VersionCmd   `cmd:"" help:"Print version."`
}

// env is bound to every command.
type env struct {
	ctx    context.Context
	stdout io.Writer
	logger *log.Logger
}

func newLogger(w io.Writer, g Globals) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: "smitten"})
	if g.Verbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	switch strings.ToLower(g.LogLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
		logger.Warn("unknown log level, defaulting to info", "provided", g.LogLevel)
	}
	return logger
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("smitten"),
		kong.Description("Sequence identifier converter and normalizer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, "/etc/smitten.json", "~/.config/smitten.json"),
		kong.DefaultEnvars("SMITTEN"),
	)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		log.Fatal(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger := newLogger(os.Stderr, cli.Globals)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := kctx.Run(&env{ctx: ctx, stdout: os.Stdout, logger: logger}); err != nil {
		logger.Error(kctx.Command(), "err", err)
		stop()
		os.Exit(1)
	}
}
