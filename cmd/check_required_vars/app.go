package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"wincluster-go/config"
	"wincluster-go/infrastructure/logger"
	"wincluster-go/infrastructure/monitor"
	"wincluster-go/validate"
)

// app wires one validator with its logger and optional metrics sink.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	log      *logger.Logger
	layout   config.Layout
	runner   *validate.Runner
	mon      *monitor.Monitor
	textfile string
	mu       sync.Mutex
}

func newApp(stdout, stderr io.Writer) (*app, error) {
	log, err := logger.New(logger.ConfigWithEnvOverrides(config.EnvLogLevel))
	if err != nil {
		return nil, err
	}
	layout, err := config.LayoutWithEnvOverrides()
	if err != nil {
		return nil, err
	}
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		log:      log,
		layout:   layout,
		runner:   validate.NewRunner(layout, log.WithFields(map[string]interface{}{"root": layout.Root}).Logger),
		textfile: os.Getenv(config.EnvMetricsTextfile),
	}
	if a.textfile != "" {
		a.mon = monitor.New(monitor.DefaultConfig())
		a.runner.Metrics = a.mon
	}
	log.Debug("repository layout", zap.String("root", layout.Root),
		zap.String("vars", layout.VarsFile()), zap.String("inventory", layout.InventoryFile()))
	return a, nil
}

// check runs one validation, prints the report and returns the exit status.
func (a *app) check() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := a.runner.Run()
	if errors.Is(err, validate.ErrMissingDependency) {
		fmt.Fprintln(a.stdout, err)
		return validate.ExitMissingDependency
	}
	if err != nil {
		a.log.Debug("validation aborted", zap.String("root", a.layout.Root), zap.Error(err))
		fmt.Fprintln(a.stderr, err)
		return validate.ExitInvalid
	}
	if err := res.Print(a.stdout); err != nil {
		a.log.LogError(err, nil)
	}
	a.flushMetrics()
	return res.ExitCode()
}

func (a *app) flushMetrics() {
	if a.mon == nil {
		return
	}
	if err := a.mon.WriteTextfile(a.textfile); err != nil {
		a.log.Warn("metrics textfile not written", zap.Error(err))
	}
}

func (a *app) close() {
	_ = a.log.Close()
}
