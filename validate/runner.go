// Package validate checks the cluster group_vars and inventory of a repository checkout.
package validate

import (
	"errors"

	"go.uber.org/zap"

	"wincluster-go/config"
	"wincluster-go/inventory"
)

// Recorder receives the outcome of every completed run.
type Recorder interface {
	RecordRun(res Result)
}

// Runner performs one validation pass over a Layout.
type Runner struct {
	Layout  config.Layout
	Decode  config.Decoder
	Rules   []Rule
	Section string
	Logger  *zap.Logger
	Metrics Recorder
}

// NewRunner returns a Runner with the YAML decoder, the default rules and the
// windows_cluster_nodes section.
func NewRunner(layout config.Layout, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Layout:  layout,
		Decode:  config.DecodeClusterConfig,
		Rules:   DefaultRules(),
		Section: config.TargetSection,
		Logger:  logger,
	}
}

// Run reads both files, then applies every check and collects all violations.
// A missing file becomes a violation and skips only that file's checks.
// ErrMissingDependency is returned before any file is read when no decoder is set;
// a malformed vars file aborts the run with *config.ParseError.
func (r *Runner) Run() (Result, error) {
	if r.Decode == nil {
		return Result{}, ErrMissingDependency
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	section := r.Section
	if section == "" {
		section = config.TargetSection
	}

	varsPath, invPath := r.Layout.VarsFile(), r.Layout.InventoryFile()
	varsRaw, varsErr := config.ReadFile("vars", varsPath)
	invRaw, invErr := config.ReadFile("inventory", invPath)

	var res Result
	if msg, ok := missing(varsErr); ok {
		res.Errors = append(res.Errors, msg)
	} else if varsErr != nil {
		return Result{}, varsErr
	} else {
		cfg, err := r.Decode(varsRaw)
		if err != nil {
			return Result{}, &config.ParseError{Path: varsPath, Err: err}
		}
		log.Debug("vars loaded", zap.String("path", varsPath), zap.Int("keys", len(cfg)))
		res.Errors = append(res.Errors, CheckAll(cfg, r.Rules)...)
	}

	if msg, ok := missing(invErr); ok {
		res.Errors = append(res.Errors, msg)
	} else if invErr != nil {
		return Result{}, invErr
	} else {
		hosts, err := inventory.SectionHostsFromBytes(invRaw, section)
		if err != nil {
			return Result{}, err
		}
		res.Hosts = hosts
		names := make([]string, 0, len(hosts))
		for _, h := range hosts {
			names = append(names, inventory.HostName(h))
		}
		log.Debug("inventory scanned", zap.String("path", invPath),
			zap.String("section", section), zap.Strings("hosts", names))
		if len(hosts) < MinHosts {
			res.Errors = append(res.Errors, inventoryMessage(section))
		}
	}

	if !res.OK() {
		log.Debug("validation failed", zap.Int("errors", len(res.Errors)))
	}
	if r.Metrics != nil {
		r.Metrics.RecordRun(res)
	}
	return res, nil
}

func missing(err error) (string, bool) {
	var mf *config.MissingFileError
	if errors.As(err, &mf) {
		return mf.Error(), true
	}
	return "", false
}
