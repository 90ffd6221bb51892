package gologger

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Config selects level, output format, and focus filters for the go-logger
// backend.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out named child loggers from a single go-logger root,
// satisfying interfaces.LoggerProvider for the DI container.
type Provider struct {
	root *glog.BaseLogger
}

var levelNames = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// NewProvider builds the go-logger root from the supplied config. An empty
// level or format falls back to go-logger defaults (JSON output).
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if level, ok := levelNames[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}

	format, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}
	options = append(options, format)

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := trimFocus(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root}, nil
}

// GetLogger returns the child logger registered under name, or the root
// logger when name is blank.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return glog.WithLoggerTypeJSON(), nil
	case "console":
		return glog.WithLoggerTypeConsole(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", format)
	}
}

func trimFocus(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &glogAdapter{inner: inner}
}

// glogAdapter bridges a go-logger Logger to the builder logging contract.
type glogAdapter struct {
	inner glog.Logger
}

func (l *glogAdapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *glogAdapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *glogAdapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *glogAdapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *glogAdapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *glogAdapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *glogAdapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}

	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return adapt(with.WithFields(maps.Clone(fields)))
	}

	// No field support on this backend; flatten to sorted key/value args.
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return adapt(with.With(args...))
	}
	return l
}

func (l *glogAdapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return adapt(l.inner.WithContext(ctx))
}
