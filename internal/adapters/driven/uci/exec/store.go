// Package exec is the thin executor over the uci binary. It performs
// one process invocation per store operation and parses the binary's
// output; all reconciliation decisions live in the core services.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"

	"github.com/ucikit/ucictl/internal/core/domain"
	"github.com/ucikit/ucictl/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.Store = (*Store)(nil)

// CommandRunner abstracts process execution for testing.
type CommandRunner interface {
	// Run executes the command and returns stdout, stderr and the
	// process exit code.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error)
}

// Store invokes the uci binary, one process per operation.
type Store struct {
	bin    string
	runner CommandRunner
}

// New creates a store backed by the uci binary. An empty path looks up
// "uci" on PATH; a missing binary is ErrToolNotFound.
func New(binPath string) (*Store, error) {
	if binPath == "" {
		binPath = "uci"
	}
	resolved, err := osexec.LookPath(binPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrToolNotFound, binPath)
	}
	return &Store{bin: resolved, runner: localRunner{}}, nil
}

// NewWithRunner creates a store with a custom runner. Used by tests.
func NewWithRunner(binPath string, runner CommandRunner) *Store {
	return &Store{bin: binPath, runner: runner}
}

// Changes returns the pending change lines for a config.
func (s *Store) Changes(ctx context.Context, config string) ([]string, error) {
	out, err := s.invoke(ctx, "changes", config)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// Sections returns the parsed sections of a config in store order.
func (s *Store) Sections(ctx context.Context, config string) ([]domain.Section, error) {
	out, err := s.invoke(ctx, "show", config)
	if err != nil {
		return nil, err
	}
	return parseShow(config, out)
}

// AddSection creates a section and returns its addressable identity.
func (s *Store) AddSection(ctx context.Context, config, sectionType, name string) (string, error) {
	if name != "" {
		_, err := s.invoke(ctx, "set", fmt.Sprintf("%s.%s=%s", config, name, sectionType))
		return name, err
	}
	out, err := s.invoke(ctx, "add", config, sectionType)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Set assigns a scalar option value.
func (s *Store) Set(ctx context.Context, config, section, option, value string) error {
	_, err := s.invoke(ctx, "set", fmt.Sprintf("%s.%s.%s=%s", config, section, option, value))
	return err
}

// AddList appends an entry to a list option.
func (s *Store) AddList(ctx context.Context, config, section, option, entry string) error {
	_, err := s.invoke(ctx, "add_list", fmt.Sprintf("%s.%s.%s=%s", config, section, option, entry))
	return err
}

// DelList removes an entry from a list option.
func (s *Store) DelList(ctx context.Context, config, section, option, entry string) error {
	_, err := s.invoke(ctx, "del_list", fmt.Sprintf("%s.%s.%s=%s", config, section, option, entry))
	return err
}

// DeleteOption removes an option from a section.
func (s *Store) DeleteOption(ctx context.Context, config, section, option string) error {
	_, err := s.invoke(ctx, "delete", fmt.Sprintf("%s.%s.%s", config, section, option))
	return err
}

// DeleteSection removes a whole section.
func (s *Store) DeleteSection(ctx context.Context, config, section string) error {
	_, err := s.invoke(ctx, "delete", fmt.Sprintf("%s.%s", config, section))
	return err
}

// Reorder moves a section to the given position.
func (s *Store) Reorder(ctx context.Context, config, section string, position int) error {
	_, err := s.invoke(ctx, "reorder", fmt.Sprintf("%s.%s=%d", config, section, position))
	return err
}

// Commit makes pending changes for a config durable.
func (s *Store) Commit(ctx context.Context, config string) error {
	_, err := s.invoke(ctx, "commit", config)
	return err
}

// invoke runs one uci invocation. A nonzero exit status is surfaced as
// *domain.InvocationError with the captured stderr.
func (s *Store) invoke(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, code, err := s.runner.Run(ctx, s.bin, args...)
	if err != nil || code != 0 {
		if code == 0 {
			code = 1
		}
		return "", &domain.InvocationError{
			Command:  "uci " + strings.Join(args, " "),
			ExitCode: code,
			Stderr:   strings.TrimSpace(string(stderr)),
		}
	}
	return string(stdout), nil
}

// localRunner executes commands on the local host.
type localRunner struct{}

func (localRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}

	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), nil
	}
	return stdout.Bytes(), stderr.Bytes(), 127, err
}

// splitLines splits command output into non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
