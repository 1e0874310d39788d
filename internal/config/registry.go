package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// Logger is the subset of leveled logging the registry needs.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

type noOpLogger struct{}

func (noOpLogger) Debugf(format string, v ...any) {}
func (noOpLogger) Infof(format string, v ...any)  {}
func (noOpLogger) Warnf(format string, v ...any)  {}
func (noOpLogger) Errorf(format string, v ...any) {}

// Report summarises what a Parse call did with each line.
type Report struct {
	Applied   []string // keys whose storage was overwritten
	Unknown   []string // keys with no registered binding
	Malformed []string // lines or values that could not be parsed
}

// Registry binds config file keys to variables owned by the caller.
// It only holds the bindings; the values live wherever the pointers point.
type Registry struct {
	mu     sync.RWMutex
	names  []string
	vars   map[string]Var
	logger Logger
}

// NewRegistry creates an empty registry. A nil logger discards diagnostics.
func NewRegistry(logger Logger) *Registry {
	if logger == nil {
		logger = noOpLogger{}
	}
	return &Registry{
		vars:   make(map[string]Var),
		logger: logger,
	}
}

// Register binds name to v. Registering an existing name replaces its binding
// but keeps its original position.
func (r *Registry) Register(name string, v Var) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.vars[name]; !exists {
		r.names = append(r.names, name)
	}
	r.vars[name] = v
}

func (r *Registry) Int(name string, p *int)       { r.Register(name, IntVar{p}) }
func (r *Registry) Float(name string, p *float64) { r.Register(name, FloatVar{p}) }
func (r *Registry) Bool(name string, p *bool)     { r.Register(name, BoolVar{p}) }

// Lookup returns the binding registered under name.
func (r *Registry) Lookup(name string) (Var, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vars[name]
	return v, ok
}

// Names returns the registered keys in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Load applies the file at path. A missing file is not an error: the
// defaults already in storage stay in place.
func (r *Registry) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warnf("config file %s not found, using defaults", path)
			return nil
		}
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	report, err := r.Parse(f)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	r.logger.Infof("config %s: %d applied, %d unknown, %d malformed",
		path, len(report.Applied), len(report.Unknown), len(report.Malformed))
	return nil
}

// Parse reads "key: value" lines from rd and stores each recognised value.
// Bad lines are reported and skipped; only read errors are returned.
func (r *Registry) Parse(rd io.Reader) (Report, error) {
	var report Report
	scanner := bufio.NewScanner(rd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, rest, found := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		fields := strings.Fields(rest)
		if !found || key == "" || len(fields) == 0 {
			r.logger.Warnf("config line %d malformed: %q", lineNo, line)
			report.Malformed = append(report.Malformed, line)
			continue
		}
		value := fields[0]

		v, ok := r.Lookup(key)
		if !ok {
			r.logger.Warnf("unknown config variable: %s", key)
			report.Unknown = append(report.Unknown, key)
			continue
		}
		if err := v.Set(value); err != nil {
			r.logger.Warnf("invalid %s value for %s: %s", v.Kind(), key, value)
			report.Malformed = append(report.Malformed, line)
			continue
		}
		r.logger.Debugf("config %s = %s", key, v.String())
		report.Applied = append(report.Applied, key)
	}
	if err := scanner.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// Write emits every binding as "name: value" in registration order.
func (r *Registry) Write(w io.Writer) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.names {
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, r.vars[name].String()); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the current values to path in the format Load reads.
func (r *Registry) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	return f.Close()
}
