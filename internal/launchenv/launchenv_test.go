package launchenv

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("splits on first equals sign", func(t *testing.T) {
		tab := Parse([]string{"PATH=/usr/bin", "OPTS=a=b=c"})
		assert.Equal(t, "/usr/bin", tab.Get("PATH"))
		assert.Equal(t, "a=b=c", tab.Get("OPTS"))
	})

	t.Run("ignores malformed entries", func(t *testing.T) {
		tab := Parse([]string{"NOEQUALS", "=emptykey", "OK=1"})
		assert.Equal(t, 1, tab.Len())
		assert.Equal(t, "1", tab.Get("OK"))
	})

	t.Run("later entries win", func(t *testing.T) {
		tab := Parse([]string{"X=old", "X=new"})
		assert.Equal(t, "new", tab.Get("X"))
	})
}

func TestPrependPath(t *testing.T) {
	sep := string(os.PathListSeparator)

	t.Run("prepends before existing entries", func(t *testing.T) {
		tab := Parse([]string{"PATH=/usr/bin" + sep + "/bin"})
		tab.PrependPath("/opt/node/bin")
		assert.Equal(t, "/opt/node/bin"+sep+"/usr/bin"+sep+"/bin", tab.Get(PathVar))
	})

	t.Run("becomes sole entry when PATH unset", func(t *testing.T) {
		tab := New()
		tab.PrependPath("/opt/node/bin")
		assert.Equal(t, "/opt/node/bin", tab.Get(PathVar))
	})

	t.Run("prepend is unconditional even when already present", func(t *testing.T) {
		tab := Parse([]string{"PATH=/opt/node/bin"})
		tab.PrependPath("/opt/node/bin")
		assert.Equal(t, "/opt/node/bin"+sep+"/opt/node/bin", tab.Get(PathVar))
	})
}

func TestEnviron(t *testing.T) {
	tab := Parse([]string{"B=2", "A=1", "C=3"})
	environ := tab.Environ()
	require.Len(t, environ, 3)
	assert.Equal(t, []string{"A=1", "B=2", "C=3"}, environ)
}

func TestLookup(t *testing.T) {
	tab := Parse([]string{"EMPTY="})

	v, ok := tab.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = tab.Lookup("MISSING")
	assert.False(t, ok)
}
