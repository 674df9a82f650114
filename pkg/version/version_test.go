package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMore(t *testing.T) {
	s := GetMore(false)
	assert.True(t, strings.HasPrefix(s, "version "+Version))
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestGetMore_Commit(t *testing.T) {
	old := Commit
	defer func() { Commit = old }()

	Commit = "abc1234"
	assert.Contains(t, GetMore(false), "(abc1234)")
}
