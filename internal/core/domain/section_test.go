package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSection_Matches(t *testing.T) {
	sec := &Section{
		ID:   "lan",
		Type: "interface",
		Options: map[string]Value{
			"proto": String("static"),
			"dns":   List("8.8.8.8", "1.1.1.1"),
		},
	}

	assert.True(t, sec.Matches(nil))
	assert.True(t, sec.Matches(map[string]Value{"proto": String("static")}))
	assert.True(t, sec.Matches(map[string]Value{
		"proto": String("static"),
		"dns":   List("8.8.8.8", "1.1.1.1"),
	}))

	assert.False(t, sec.Matches(map[string]Value{"proto": String("dhcp")}))
	assert.False(t, sec.Matches(map[string]Value{"missing": String("x")}))
	// Ordered comparison, not membership.
	assert.False(t, sec.Matches(map[string]Value{"dns": List("1.1.1.1", "8.8.8.8")}))
}
