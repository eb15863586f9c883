package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	assert.Equal(t, "foo", Expand("${foo}", func(s string) string { return s }))
	assert.Equal(t, "a-b-c", Expand("a-${x}-c", func(string) string { return "b" }))
	assert.Equal(t, "${not closed", Expand("${not closed", func(string) string { return "x" }))
}

func TestEnv(t *testing.T) {
	t.Setenv("RILL_OUT_DIR", "/var/log")
	assert.Equal(t, "/var/log/out.txt", Expand("${env.RILL_OUT_DIR}/out.txt", Env))
	assert.Equal(t, "/out.txt", Expand("${RILL_OUT_DIR}/out.txt", Env))
}
