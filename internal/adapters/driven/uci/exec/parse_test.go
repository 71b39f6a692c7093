package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucikit/ucictl/internal/core/domain"
)

func TestParseShow_NamedSections(t *testing.T) {
	out := `network.lan=interface
network.lan.proto='static'
network.lan.ipaddr='192.168.1.1'
network.wan=interface
network.wan.proto='dhcp'
`

	sections, err := parseShow("network", out)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	lan := sections[0]
	assert.Equal(t, "lan", lan.ID)
	assert.Equal(t, "interface", lan.Type)
	assert.False(t, lan.Anonymous)
	assert.Equal(t, "static", lan.Options["proto"].Scalar())
	assert.Equal(t, "192.168.1.1", lan.Options["ipaddr"].Scalar())

	assert.Equal(t, "wan", sections[1].ID)
	assert.Equal(t, "dhcp", sections[1].Options["proto"].Scalar())
}

func TestParseShow_AnonymousSelectors(t *testing.T) {
	out := `firewall.@defaults[0]=defaults
firewall.@defaults[0].input='ACCEPT'
firewall.@rule[0]=rule
firewall.@rule[0].name='Allow-SSH'
firewall.@rule[1]=rule
firewall.@rule[1].name='Allow-DHCP'
`

	sections, err := parseShow("firewall", out)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	assert.Equal(t, "@defaults[0]", sections[0].ID)
	assert.True(t, sections[0].Anonymous)
	assert.Equal(t, "ACCEPT", sections[0].Options["input"].Scalar())

	assert.Equal(t, "@rule[1]", sections[2].ID)
	assert.Equal(t, "rule", sections[2].Type)
	assert.Equal(t, "Allow-DHCP", sections[2].Options["name"].Scalar())
}

func TestParseShow_ListOptions(t *testing.T) {
	out := `network.lan=interface
network.lan.dns='8.8.8.8' '1.1.1.1'
`

	sections, err := parseShow("network", out)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	dns := sections[0].Options["dns"]
	require.True(t, dns.IsList())
	assert.Equal(t, []string{"8.8.8.8", "1.1.1.1"}, dns.Entries())
}

func TestParseShow_SingleQuotedWordIsScalar(t *testing.T) {
	// The export format cannot distinguish a scalar from a one-entry
	// list; both parse as scalar.
	out := `network.lan=interface
network.lan.dns='8.8.8.8'
`

	sections, err := parseShow("network", out)
	require.NoError(t, err)
	assert.False(t, sections[0].Options["dns"].IsList())
	assert.Equal(t, "8.8.8.8", sections[0].Options["dns"].Scalar())
}

func TestParseShow_EmbeddedQuote(t *testing.T) {
	out := `system.@system[0]=system
system.@system[0].description='it'\''s a router'
`

	sections, err := parseShow("system", out)
	require.NoError(t, err)
	assert.Equal(t, "it's a router", sections[0].Options["description"].Scalar())
}

func TestParseShow_ValueContainingDots(t *testing.T) {
	out := `system.ntp=timeserver
system.ntp.server='0.openwrt.pool.ntp.org'
`

	sections, err := parseShow("system", out)
	require.NoError(t, err)
	assert.Equal(t, "0.openwrt.pool.ntp.org", sections[0].Options["server"].Scalar())
}

func TestParseShow_RejectsForeignConfigLine(t *testing.T) {
	_, err := parseShow("network", "wireless.radio0=wifi-device\n")
	assert.ErrorContains(t, err, "unexpected show line")
}

func TestParseShow_RejectsOrphanOptionLine(t *testing.T) {
	_, err := parseShow("network", "network.lan.proto='static'\n")
	assert.ErrorContains(t, err, "precedes its section")
}

func TestParseShow_EmptyOutput(t *testing.T) {
	sections, err := parseShow("network", "")
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestSplitQuoted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single word", "'static'", []string{"static"}},
		{"two words", "'a' 'b'", []string{"a", "b"}},
		{"embedded quote", `'it'\''s'`, []string{"it's"}},
		{"space inside quotes", "'a b' 'c'", []string{"a b", "c"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitQuoted(tt.in))
		})
	}
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, domain.String("x"), parseValue("'x'"))
	assert.Equal(t, domain.List("x", "y"), parseValue("'x' 'y'"))
}
