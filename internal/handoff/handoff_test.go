package handoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpec(t *testing.T) {
	t.Run("builds directory flag before server command", func(t *testing.T) {
		spec := NewSpec("/opt/homebrew/bin/uv", "/srv/app",
			[]string{"run", "mcp_snowflake_server"}, []string{"PATH=/usr/bin"})

		assert.Equal(t, "/opt/homebrew/bin/uv", spec.Runner)
		assert.Equal(t,
			[]string{"/opt/homebrew/bin/uv", "--directory", "/srv/app", "run", "mcp_snowflake_server"},
			spec.Args)
		assert.Equal(t, []string{"PATH=/usr/bin"}, spec.Env)
	})

	t.Run("argv zero is the runner path", func(t *testing.T) {
		spec := NewSpec("/usr/bin/uv", "/srv/app", nil, nil)
		assert.Equal(t, spec.Runner, spec.Args[0])
	})
}
