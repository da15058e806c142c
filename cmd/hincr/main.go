package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/challenai/hincr"
	"github.com/challenai/hincr/bench"
	"github.com/challenai/hincr/client"
	"github.com/challenai/hincr/logger"
)

// Positionals are taken verbatim once the first one is seen, so row keys and
// counts that start with a dash are not read as flags. Flags go first.
type CLI struct {
	Positionals []string `arg:"" optional:"" passthrough:"" name:"args" help:"<table-name> <row> <column-family-name> <column-name> <increments-count> <INCREMENT|INCREMENT_WRITE|PUT>"`

	Addr        string        `help:"Address of the HBase Thrift2 gateway." env:"HINCR_THRIFT_ADDR" default:"localhost:9090"`
	Transport   string        `help:"Thrift transport of the gateway." enum:"socket,framed,http" default:"socket"`
	Header      []string      `help:"Extra HTTP header sent with every call, http transport only." placeholder:"KEY=VALUE" sep:"none"`
	Timeout     time.Duration `help:"Connect and call timeout." default:"10s"`
	WriteBuffer int64         `help:"Client-side write buffer size in bytes." default:"2097152"`
	LogLevel    string        `help:"Diagnostics level on stderr." enum:"info,warn,error" default:"info"`
}

func (c CLI) options() (client.Options, error) {
	if c.WriteBuffer <= 0 {
		return client.Options{}, fmt.Errorf("%w: write buffer %d must be positive", bench.ErrInvalidArgument, c.WriteBuffer)
	}
	opts := client.Options{
		Addr:      c.Addr,
		Transport: client.Transport(c.Transport),
		Timeout:   c.Timeout,
	}
	for _, h := range c.Header {
		header, err := client.ParseHeader(h)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", bench.ErrInvalidArgument, err)
		}
		opts.Headers = append(opts.Headers, header)
	}
	return opts, nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var cli CLI
	exit := -1
	parser, err := kong.New(&cli,
		kong.Name("hincr"),
		kong.Description("Compares HBase increments, delta-write increments and plain puts on a single cell."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exit = code }),
	)
	if err != nil {
		panic(err)
	}
	if _, err := parser.Parse(argv); exit >= 0 {
		return exit
	} else if err != nil {
		fmt.Fprint(stdout, bench.Usage)
		return 1
	}

	log := logger.NewLogger(stderr)
	if lvl, err := logger.ParseLevel(cli.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	args, err := bench.ParseArgs(cli.Positionals)
	if err != nil {
		if errors.Is(err, bench.ErrUsage) {
			fmt.Fprint(stdout, bench.Usage)
		}
		log.Errorf("%v", err)
		return 1
	}
	opts, err := cli.options()
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}

	open := func(ctx context.Context, name string) (bench.Table, error) {
		t, err := hincr.Open(ctx, opts, name)
		if err != nil {
			return nil, err
		}
		t.SetLogger(log)
		t.SetWriteBufferSize(cli.WriteBuffer)
		return t, nil
	}
	if _, err := bench.NewDriver(args, open, stdout, log).Run(ctx); err != nil {
		log.Errorf("%v", err)
		return 2
	}
	return 0
}
