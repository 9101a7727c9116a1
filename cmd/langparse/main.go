// Command langparse is the CLI driver around the parser core, kept as a
// thin harness rather than part of the language itself: a `parse`
// subcommand reads a file, runs it through the full parser, and either
// prints collected diagnostics (the default) or a go-spew dump of the
// resulting AST (--dump), following ku-lang-ku's kingpin-based cmd layout.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/veltra-lang/veltra/internal/diag"
	"github.com/veltra-lang/veltra/internal/parser"
	"github.com/veltra-lang/veltra/internal/telemetry"
)

var (
	app = kingpin.New("langparse", "Parser core driver for the Language.")

	logLevel = app.Flag("log-level", "Minimum level for driver-side logging").Default("info").Enum("debug", "info", "warn", "error")

	parseCmd     = app.Command("parse", "Parse a source file and report diagnostics or dump its AST.")
	parseInput   = parseCmd.Arg("file", "Source file to parse").Required().String()
	parseDump    = parseCmd.Flag("dump", "Dump the parsed AST with go-spew instead of printing diagnostics").Bool()
	parseFuture  = parseCmd.Flag("future", "Enable deprecation warnings for legacy syntax").Bool()
	parseInfer   = parseCmd.Flag("method-infer", "Allow omitting parameter type annotations").Bool()
	parseVirtual = parseCmd.Flag("virtual-classes", "Permit 'trait T <:...' to mark a trait deferred").Bool()

	statsCmd   = app.Command("stats", "Parse a file as a bare template-statement sequence, skipping package/import grammar.")
	statsInput = statsCmd.Arg("file", "Source file to parse").Required().String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg := telemetry.DefaultConfig()
	cfg.Level = *logLevel
	log, err := telemetry.New(cfg)
	if err != nil {
		kingpin.Fatalf("initializing logger: %v", err)
	}
	defer log.Sync()

	switch command {
	case parseCmd.FullCommand():
		os.Exit(runParse(log))
	case statsCmd.FullCommand():
		os.Exit(runStats(log))
	}
}

func runParse(log *zap.Logger) int {
	src, err := os.ReadFile(*parseInput)
	if err != nil {
		log.Error("reading source file", zap.Error(err))
		return 1
	}

	collector := &diag.Collector{}
	opts := []parser.Option{parser.WithFilename(*parseInput), parser.WithTraceLogger(log)}
	if *parseFuture {
		opts = append(opts, parser.WithFutureFlag())
	}
	if *parseInfer {
		opts = append(opts, parser.WithMethodInfer())
	}
	if *parseVirtual {
		opts = append(opts, parser.WithVirtualClasses())
	}

	p := parser.New(string(src), collector, opts...)
	unit := p.Parse()

	if *parseDump {
		fmt.Println(spew.Sdump(unit))
		if collector.HasErrors() {
			return 1
		}
		return 0
	}

	return reportAndExitCode(collector)
}

func runStats(log *zap.Logger) int {
	src, err := os.ReadFile(*statsInput)
	if err != nil {
		log.Error("reading source file", zap.Error(err))
		return 1
	}

	collector := &diag.Collector{}
	p := parser.New(string(src), collector, parser.WithFilename(*statsInput), parser.WithTraceLogger(log))
	stats := p.ParseStats()
	fmt.Println(spew.Sdump(stats))

	return reportAndExitCode(collector)
}

func reportAndExitCode(collector *diag.Collector) int {
	formatter := diag.NewFormatter()
	for _, d := range collector.Diagnostics {
		formatter.Format(d)
	}
	if collector.HasErrors() {
		return 1
	}
	return 0
}
