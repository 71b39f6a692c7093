package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucikit/ucictl/internal/adapters/driven/uci/memory"
)

func TestVersion_PrintsVersion(t *testing.T) {
	out, err := runCommand(t, memory.NewStore(), nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ucictl version")
}
