// Package memory is an in-memory implementation of the UCI store for
// testing. It mimics the store's observable behaviour: ordered
// sections, anonymous selectors, a pending-change ledger per config and
// commit clearing that ledger.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ucikit/ucictl/internal/core/domain"
	"github.com/ucikit/ucictl/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.Store = (*Store)(nil)

// Read invocations, usable as FailOn keys alongside the operation kinds.
const (
	OpChanges = domain.OpKind("changes")
	OpShow    = domain.OpKind("show")
)

type section struct {
	id        string
	typ       string
	anonymous bool
	options   map[string]domain.Value
}

type config struct {
	sections []*section
	ledger   []string
	nextID   int
}

// Store is an in-memory UCI store.
type Store struct {
	mu      sync.Mutex
	configs map[string]*config

	// FailOn makes the named invocation kind fail, for fail-fast tests.
	FailOn map[domain.OpKind]bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		configs: make(map[string]*config),
		FailOn:  make(map[domain.OpKind]bool),
	}
}

// Seed installs a section without touching the ledger, as if it had
// been committed long ago. Anonymous sections get a store-assigned id.
func (s *Store) Seed(configName, id, sectionType string, options map[string]domain.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.config(configName)
	sec := &section{
		id:        id,
		typ:       sectionType,
		anonymous: id == "",
		options:   make(map[string]domain.Value, len(options)),
	}
	if sec.anonymous {
		sec.id = cfg.assignID()
	}
	for name, v := range options {
		sec.options[name] = v
	}
	cfg.sections = append(cfg.sections, sec)
}

// Changes returns a copy of the pending-change ledger.
func (s *Store) Changes(_ context.Context, configName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(OpChanges, "changes "+configName); err != nil {
		return nil, err
	}
	cfg := s.config(configName)
	return append([]string(nil), cfg.ledger...), nil
}

// Sections returns the sections in store order. Anonymous sections are
// exposed through their @type[index] selector, as the real store's
// show output does.
func (s *Store) Sections(_ context.Context, configName string) ([]domain.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(OpShow, "show "+configName); err != nil {
		return nil, err
	}
	cfg := s.config(configName)

	out := make([]domain.Section, 0, len(cfg.sections))
	typeCount := make(map[string]int)
	for _, sec := range cfg.sections {
		id := sec.id
		if sec.anonymous {
			id = fmt.Sprintf("@%s[%d]", sec.typ, typeCount[sec.typ])
		}
		typeCount[sec.typ]++

		opts := make(map[string]domain.Value, len(sec.options))
		for name, v := range sec.options {
			opts[name] = v
		}
		out = append(out, domain.Section{
			ID:        id,
			Type:      sec.typ,
			Anonymous: sec.anonymous,
			Options:   opts,
		})
	}
	return out, nil
}

// AddSection creates a section and returns its assigned identity.
func (s *Store) AddSection(_ context.Context, configName, sectionType, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(domain.OpCreateSection, "add "+configName+" "+sectionType); err != nil {
		return "", err
	}
	cfg := s.config(configName)

	sec := &section{
		id:        name,
		typ:       sectionType,
		anonymous: name == "",
		options:   make(map[string]domain.Value),
	}
	if sec.anonymous {
		sec.id = cfg.assignID()
	}
	cfg.sections = append(cfg.sections, sec)
	cfg.ledger = append(cfg.ledger, fmt.Sprintf("%s.%s='%s'", configName, sec.id, sectionType))
	return sec.id, nil
}

// Set assigns a scalar option value.
func (s *Store) Set(_ context.Context, configName, sectionRef, option, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := fmt.Sprintf("set %s.%s.%s=%s", configName, sectionRef, option, value)
	if err := s.failure(domain.OpSetOption, cmd); err != nil {
		return err
	}
	sec, err := s.resolve(configName, sectionRef, cmd)
	if err != nil {
		return err
	}
	sec.options[option] = domain.String(value)
	s.config(configName).ledger = append(s.config(configName).ledger,
		fmt.Sprintf("%s.%s.%s='%s'", configName, sec.id, option, value))
	return nil
}

// AddList appends an entry to a list option. An existing scalar is
// treated as a single-entry list, matching the binary's behaviour.
func (s *Store) AddList(_ context.Context, configName, sectionRef, option, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := fmt.Sprintf("add_list %s.%s.%s=%s", configName, sectionRef, option, entry)
	if err := s.failure(domain.OpAddListEntry, cmd); err != nil {
		return err
	}
	sec, err := s.resolve(configName, sectionRef, cmd)
	if err != nil {
		return err
	}

	var entries []string
	if cur, ok := sec.options[option]; ok {
		if cur.IsList() {
			entries = cur.Entries()
		} else {
			entries = []string{cur.Scalar()}
		}
	}
	sec.options[option] = domain.List(append(entries, entry)...)
	s.config(configName).ledger = append(s.config(configName).ledger,
		fmt.Sprintf("%s.%s.%s+='%s'", configName, sec.id, option, entry))
	return nil
}

// DelList removes every matching entry from a list option. Removing the
// last entry removes the option.
func (s *Store) DelList(_ context.Context, configName, sectionRef, option, entry string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := fmt.Sprintf("del_list %s.%s.%s=%s", configName, sectionRef, option, entry)
	if err := s.failure(domain.OpRemoveListEntry, cmd); err != nil {
		return err
	}
	sec, err := s.resolve(configName, sectionRef, cmd)
	if err != nil {
		return err
	}

	cur, ok := sec.options[option]
	if !ok {
		return nil
	}
	var kept []string
	for _, e := range cur.Entries() {
		if e != entry {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(sec.options, option)
	} else {
		sec.options[option] = domain.List(kept...)
	}
	s.config(configName).ledger = append(s.config(configName).ledger,
		fmt.Sprintf("-%s.%s.%s='%s'", configName, sec.id, option, entry))
	return nil
}

// DeleteOption removes an option from a section.
func (s *Store) DeleteOption(_ context.Context, configName, sectionRef, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := fmt.Sprintf("delete %s.%s.%s", configName, sectionRef, option)
	if err := s.failure(domain.OpDeleteOption, cmd); err != nil {
		return err
	}
	sec, err := s.resolve(configName, sectionRef, cmd)
	if err != nil {
		return err
	}
	if _, ok := sec.options[option]; !ok {
		return s.invocationError(cmd, "uci: Entry not found")
	}
	delete(sec.options, option)
	s.config(configName).ledger = append(s.config(configName).ledger,
		fmt.Sprintf("-%s.%s.%s", configName, sec.id, option))
	return nil
}

// DeleteSection removes a whole section.
func (s *Store) DeleteSection(_ context.Context, configName, sectionRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := fmt.Sprintf("delete %s.%s", configName, sectionRef)
	if err := s.failure(domain.OpDeleteSection, cmd); err != nil {
		return err
	}
	sec, err := s.resolve(configName, sectionRef, cmd)
	if err != nil {
		return err
	}

	cfg := s.config(configName)
	for i, candidate := range cfg.sections {
		if candidate == sec {
			cfg.sections = append(cfg.sections[:i], cfg.sections[i+1:]...)
			break
		}
	}
	cfg.ledger = append(cfg.ledger, fmt.Sprintf("-%s.%s", configName, sec.id))
	return nil
}

// Reorder moves a section so its ordinal among sections of its type
// becomes position.
func (s *Store) Reorder(_ context.Context, configName, sectionRef string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := fmt.Sprintf("reorder %s.%s=%d", configName, sectionRef, position)
	if err := s.failure(domain.OpReorder, cmd); err != nil {
		return err
	}
	sec, err := s.resolve(configName, sectionRef, cmd)
	if err != nil {
		return err
	}

	cfg := s.config(configName)
	var rest []*section
	for _, candidate := range cfg.sections {
		if candidate != sec {
			rest = append(rest, candidate)
		}
	}

	// Insert before the position-th remaining section of the same type;
	// past the end means last.
	insert := len(rest)
	ordinal := 0
	for i, candidate := range rest {
		if candidate.typ != sec.typ {
			continue
		}
		if ordinal == position {
			insert = i
			break
		}
		ordinal++
	}

	cfg.sections = append(rest[:insert:insert], append([]*section{sec}, rest[insert:]...)...)
	cfg.ledger = append(cfg.ledger, fmt.Sprintf("^%s.%s=%d", configName, sec.id, position))
	return nil
}

// Commit makes pending changes durable by clearing the ledger.
func (s *Store) Commit(_ context.Context, configName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failure(domain.OpCommit, "commit "+configName); err != nil {
		return err
	}
	s.config(configName).ledger = nil
	return nil
}

// Option returns a section's option value for test assertions.
func (s *Store) Option(configName, sectionRef, option string) (domain.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, err := s.resolve(configName, sectionRef, "")
	if err != nil {
		return domain.Value{}, false
	}
	v, ok := sec.options[option]
	return v, ok
}

// OptionNames returns the option names present on a section.
func (s *Store) OptionNames(configName, sectionRef string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec, err := s.resolve(configName, sectionRef, "")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(sec.options))
	for name := range sec.options {
		names = append(names, name)
	}
	return names
}

// config returns the named config, creating it when absent: the real
// store treats an unknown config as empty for reads.
func (s *Store) config(name string) *config {
	cfg, ok := s.configs[name]
	if !ok {
		cfg = &config{}
		s.configs[name] = cfg
	}
	return cfg
}

// resolve addresses a section by stable name, assigned anonymous id, or
// @type[index] selector (negative indexes count from the end).
func (s *Store) resolve(configName, ref, cmd string) (*section, error) {
	cfg := s.config(configName)

	if strings.HasPrefix(ref, "@") {
		typ, idx, ok := parseSelector(ref)
		if !ok {
			return nil, s.invocationError(cmd, "uci: Invalid argument")
		}
		var ofType []*section
		for _, sec := range cfg.sections {
			if sec.typ == typ {
				ofType = append(ofType, sec)
			}
		}
		if idx < 0 {
			idx += len(ofType)
		}
		if idx < 0 || idx >= len(ofType) {
			return nil, s.invocationError(cmd, "uci: Entry not found")
		}
		return ofType[idx], nil
	}

	for _, sec := range cfg.sections {
		if sec.id == ref {
			return sec, nil
		}
	}
	return nil, s.invocationError(cmd, "uci: Entry not found")
}

func (s *Store) failure(kind domain.OpKind, cmd string) error {
	if s.FailOn[kind] {
		return s.invocationError(cmd, "uci: I/O error")
	}
	return nil
}

func (s *Store) invocationError(cmd, stderr string) error {
	return &domain.InvocationError{Command: "uci " + cmd, ExitCode: 1, Stderr: stderr}
}

// assignID produces a store-style anonymous identity.
func (c *config) assignID() string {
	c.nextID++
	return fmt.Sprintf("cfg%06x", c.nextID)
}

// parseSelector splits "@type[idx]" into its parts.
func parseSelector(ref string) (string, int, bool) {
	open := strings.IndexByte(ref, '[')
	if open < 0 || !strings.HasSuffix(ref, "]") {
		return "", 0, false
	}
	typ := ref[1:open]
	var idx int
	if _, err := fmt.Sscanf(ref[open:], "[%d]", &idx); err != nil {
		return "", 0, false
	}
	return typ, idx, true
}
