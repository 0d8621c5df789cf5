package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, CommitHash, info.CommitHash)
}

func TestString(t *testing.T) {
	dev := Info{Version: "dev", CommitHash: "abc1234", BuildTime: "unknown"}
	assert.Equal(t, "entmirror dev (commit abc1234, built unknown)", dev.String())

	tagged := Info{Version: "v0.3.0", CommitHash: "abc1234", BuildTime: "2026-10-01"}
	assert.Equal(t, "entmirror v0.3.0 (commit abc1234, built 2026-10-01)", tagged.String())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "0123456", Info{CommitHash: "0123456789abcdef"}.Short())
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}
