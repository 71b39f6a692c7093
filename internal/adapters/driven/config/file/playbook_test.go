package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucikit/ucictl/internal/core/domain"
)

func TestParse_FullPlaybook(t *testing.T) {
	data := []byte(`
[defaults]
uci_bin = "/sbin/uci"
commit_policy = "on-change"
match_policy = "error"

[[uci]]
name = "lan baseline"
config = "network"
section = "lan"
commit = true

[uci.options]
proto = "static"
ipaddr = "192.168.1.1"
dns = ["8.8.8.8", "1.1.1.1"]

[[uci]]
name = "drop radio"
config = "wireless"
section = "radio1"
state = "absent"
`)

	pb, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "/sbin/uci", pb.Defaults.UciBin)
	assert.Equal(t, CommitOnChange, pb.Defaults.CommitPolicy)
	assert.Equal(t, domain.MatchError, pb.Defaults.MatchPolicy)

	require.Len(t, pb.Specs, 2)

	lan := pb.Specs[0]
	assert.Equal(t, "lan baseline", lan.Name)
	assert.Equal(t, "network", lan.Config)
	assert.Equal(t, "lan", lan.Section)
	assert.True(t, lan.Commit)
	assert.Equal(t, domain.String("static"), lan.Options["proto"])
	assert.Equal(t, domain.List("8.8.8.8", "1.1.1.1"), lan.Options["dns"])
	require.NoError(t, lan.Validate())

	radio := pb.Specs[1]
	assert.Equal(t, domain.StateAbsent, radio.EffectiveState())
}

func TestParse_DefaultsApplied(t *testing.T) {
	pb, err := Parse([]byte(`
[[uci]]
config = "network"
section = "lan"
`))
	require.NoError(t, err)

	assert.Equal(t, CommitAlways, pb.Defaults.CommitPolicy)
	assert.Empty(t, pb.Defaults.UciBin)
	assert.Equal(t, domain.MatchFirst, pb.Specs[0].EffectiveMatchPolicy())
}

func TestParse_DefaultMatchPolicyFlowsIntoSpecs(t *testing.T) {
	pb, err := Parse([]byte(`
[defaults]
match_policy = "error"

[[uci]]
config = "wireless"
type = "wifi-iface"

[uci.find]
device = "radio0"
`))
	require.NoError(t, err)
	assert.Equal(t, domain.MatchError, pb.Specs[0].MatchPolicy)
}

func TestParse_SpecMatchPolicyOverridesDefault(t *testing.T) {
	pb, err := Parse([]byte(`
[defaults]
match_policy = "error"

[[uci]]
config = "wireless"
type = "wifi-iface"
match_policy = "first"

[uci.find]
device = "radio0"
`))
	require.NoError(t, err)
	assert.Equal(t, domain.MatchFirst, pb.Specs[0].MatchPolicy)
}

func TestParse_FindAliases(t *testing.T) {
	for _, alias := range []string{"find", "find_by", "search"} {
		t.Run(alias, func(t *testing.T) {
			pb, err := Parse([]byte(`
[[uci]]
config = "wireless"
type = "wifi-iface"

[uci.` + alias + `]
device = "radio0"
`))
			require.NoError(t, err)
			assert.Equal(t, domain.String("radio0"), pb.Specs[0].Find["device"])
		})
	}
}

func TestParse_ConflictingFindAliases(t *testing.T) {
	_, err := Parse([]byte(`
[[uci]]
config = "wireless"
type = "wifi-iface"

[uci.find]
device = "radio0"

[uci.search]
mode = "ap"
`))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "aliases")
}

func TestParse_NonStringScalarsRenderToStrings(t *testing.T) {
	pb, err := Parse([]byte(`
[[uci]]
config = "wireless"
section = "radio0"

[uci.options]
channel = 11
disabled = false
txpower = 20.5
`))
	require.NoError(t, err)

	opts := pb.Specs[0].Options
	assert.Equal(t, domain.String("11"), opts["channel"])
	assert.Equal(t, domain.String("false"), opts["disabled"])
	assert.Equal(t, domain.String("20.5"), opts["txpower"])
}

func TestParse_UnknownCommitPolicy(t *testing.T) {
	_, err := Parse([]byte(`
[defaults]
commit_policy = "sometimes"
`))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "commit_policy")
}

func TestParse_UnsupportedOptionValue(t *testing.T) {
	_, err := Parse([]byte(`
[[uci]]
config = "network"
section = "lan"

[uci.options.nested]
key = "value"
`))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParse_MalformedToml(t *testing.T) {
	_, err := Parse([]byte(`[[uci]`))
	assert.ErrorContains(t, err, "parsing playbook")
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbook.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[uci]]
config = "network"
section = "lan"
`), 0o644))

	pb, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, pb.Specs, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorContains(t, err, "reading playbook")
}
