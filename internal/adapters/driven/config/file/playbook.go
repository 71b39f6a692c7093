package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ucikit/ucictl/internal/core/domain"
)

// CommitPolicy controls when a spec's commit request is honoured.
type CommitPolicy string

const (
	// CommitAlways issues the commit whenever a spec requests it,
	// independent of whether anything changed.
	CommitAlways CommitPolicy = "always"
	// CommitOnChange suppresses the commit when no operation was
	// sequenced.
	CommitOnChange CommitPolicy = "on-change"
)

// Defaults are playbook-wide settings applied to every spec.
type Defaults struct {
	// UciBin is the path to the uci binary. Empty means PATH lookup.
	UciBin string

	// CommitPolicy defaults to CommitAlways, the original contract.
	CommitPolicy CommitPolicy

	// MatchPolicy applies to specs that do not set their own.
	MatchPolicy domain.MatchPolicy
}

// Playbook is a parsed playbook: defaults plus the specs in file order.
type Playbook struct {
	Defaults Defaults
	Specs    []domain.DesiredSpec
}

type playbookDoc struct {
	Defaults defaultsDoc `toml:"defaults"`
	Specs    []specDoc   `toml:"uci"`
}

type defaultsDoc struct {
	UciBin       string `toml:"uci_bin"`
	CommitPolicy string `toml:"commit_policy"`
	MatchPolicy  string `toml:"match_policy"`
}

type specDoc struct {
	Name        string         `toml:"name"`
	State       string         `toml:"state"`
	Config      string         `toml:"config"`
	Section     string         `toml:"section"`
	Type        string         `toml:"type"`
	Options     map[string]any `toml:"options"`
	Position    *int           `toml:"position"`
	Find        map[string]any `toml:"find"`
	FindBy      map[string]any `toml:"find_by"`
	Search      map[string]any `toml:"search"`
	Replace     bool           `toml:"replace"`
	SetFind     bool           `toml:"set_find"`
	Commit      bool           `toml:"commit"`
	MatchPolicy string         `toml:"match_policy"`
}

// Load reads and converts a playbook file.
func Load(path string) (*Playbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading playbook %s: %w", path, err)
	}
	return Parse(data)
}

// Parse converts playbook TOML into domain specs.
func Parse(data []byte) (*Playbook, error) {
	var doc playbookDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing playbook: %w", err)
	}

	defaults, err := convertDefaults(doc.Defaults)
	if err != nil {
		return nil, err
	}

	pb := &Playbook{Defaults: defaults}
	for i, sd := range doc.Specs {
		spec, err := convertSpec(sd, defaults)
		if err != nil {
			return nil, fmt.Errorf("uci[%d]: %w", i, err)
		}
		pb.Specs = append(pb.Specs, spec)
	}
	return pb, nil
}

func convertDefaults(d defaultsDoc) (Defaults, error) {
	out := Defaults{
		UciBin:       d.UciBin,
		CommitPolicy: CommitPolicy(d.CommitPolicy),
		MatchPolicy:  domain.MatchPolicy(d.MatchPolicy),
	}
	switch out.CommitPolicy {
	case "", CommitAlways, CommitOnChange:
	default:
		return out, fmt.Errorf("%w: unknown commit_policy %q", domain.ErrValidation, d.CommitPolicy)
	}
	if out.CommitPolicy == "" {
		out.CommitPolicy = CommitAlways
	}
	if out.MatchPolicy != "" && !out.MatchPolicy.IsValid() {
		return out, fmt.Errorf("%w: unknown match_policy %q", domain.ErrValidation, d.MatchPolicy)
	}
	return out, nil
}

func convertSpec(sd specDoc, defaults Defaults) (domain.DesiredSpec, error) {
	spec := domain.DesiredSpec{
		Name:        sd.Name,
		State:       domain.State(sd.State),
		Config:      sd.Config,
		Section:     sd.Section,
		Type:        sd.Type,
		Position:    sd.Position,
		Replace:     sd.Replace,
		SetFind:     sd.SetFind,
		Commit:      sd.Commit,
		MatchPolicy: domain.MatchPolicy(sd.MatchPolicy),
	}
	if spec.MatchPolicy == "" {
		spec.MatchPolicy = defaults.MatchPolicy
	}

	find, err := pickFind(sd)
	if err != nil {
		return spec, err
	}
	if spec.Find, err = convertValues(find); err != nil {
		return spec, fmt.Errorf("find: %w", err)
	}
	if spec.Options, err = convertValues(sd.Options); err != nil {
		return spec, fmt.Errorf("options: %w", err)
	}
	return spec, nil
}

// pickFind resolves the find aliases: find, find_by and search name the
// same field and at most one may be set.
func pickFind(sd specDoc) (map[string]any, error) {
	var picked map[string]any
	count := 0
	for _, m := range []map[string]any{sd.Find, sd.FindBy, sd.Search} {
		if len(m) != 0 {
			picked = m
			count++
		}
	}
	if count > 1 {
		return nil, fmt.Errorf("%w: find, find_by and search are aliases; set at most one", domain.ErrValidation)
	}
	return picked, nil
}

// convertValues maps TOML values onto domain values. Scalars of any
// TOML type render to their string form; arrays become ordered lists.
func convertValues(in map[string]any) (map[string]domain.Value, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]domain.Value, len(in))
	for name, raw := range in {
		v, err := convertValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func convertValue(raw any) (domain.Value, error) {
	switch v := raw.(type) {
	case string:
		return domain.String(v), nil
	case bool, int64, float64:
		return domain.String(fmt.Sprint(v)), nil
	case []any:
		entries := make([]string, 0, len(v))
		for _, item := range v {
			switch e := item.(type) {
			case string:
				entries = append(entries, e)
			case bool, int64, float64:
				entries = append(entries, fmt.Sprint(e))
			default:
				return domain.Value{}, fmt.Errorf("%w: unsupported list entry type %T", domain.ErrValidation, item)
			}
		}
		return domain.List(entries...), nil
	}
	return domain.Value{}, fmt.Errorf("%w: unsupported value type %T", domain.ErrValidation, raw)
}
