package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/coilsim/internal/process"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	debug := flag.Bool("debug", false, "Turn on debug logging")
	logFile := flag.String("log", "coilsim.log", "Path to the log file")
	export := flag.Int("export", 0, "Print N timeline samples as CSV and exit")
	watch := flag.Bool("watch", false, "Reload the current recipe when its file changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [recipe.yaml ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// The TUI owns the terminal, so logs only go to the rotating file.
	zapLogger := newLogger(*logFile, *debug)
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	args := flag.Args()
	opts := simOptions{log: log, watch: *watch}

	if *export > 0 {
		if err := runExport(args, *export); err != nil {
			log.Errorw("export failed", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var model tea.Model
	if len(args) == 0 {
		model = newStartupModel(opts)
	} else {
		m, err := buildSimulationModel(args, opts)
		if err != nil {
			log.Errorw("cannot open recipes", "args", args, "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		model = m
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Errorw("program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a development or production zap logger writing to a
// size-rotated file.
func newLogger(path string, debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	encoder := zapcore.NewJSONEncoder(cfg.EncoderConfig)
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	}
	core := zapcore.NewCore(encoder, sink, cfg.Level)
	return zap.New(core, zap.AddCaller())
}

// runExport writes n samples of the first recipe's process to stdout.
func runExport(args []string, n int) error {
	q, err := buildQueue(args)
	if err != nil {
		return err
	}
	r := q.Current().Recipe
	p := r.Generator().Generate(r.Input())
	return process.WriteExport(os.Stdout, process.Export(p, n))
}
