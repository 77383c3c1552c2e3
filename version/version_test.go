package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matsim-eth/python-matsim/naming"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Equal(t, naming.DefaultRuntimeVersion, info.DefaultRuntime)
	assert.NotEmpty(t, info.Version)
}

func TestString(t *testing.T) {
	dev := Info{Version: "dev", CommitHash: "0123456789abcdef", BuildTime: "now"}
	assert.Equal(t, "pyhints dev (commit 0123456, built now)", dev.String())

	tagged := Info{Version: "v1.2.0", CommitHash: "abc", BuildTime: "then", Modified: true}
	assert.Equal(t, "pyhints v1.2.0 (commit abc+dirty, built then)", tagged.String())
}

func TestApplyBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "feedfacecafe"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"}
	info.applyBuildInfo(bi)
	assert.Equal(t, "v0.3.1", info.Version)
	assert.Equal(t, "feedfacecafe", info.CommitHash)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildTime)
	assert.True(t, info.Modified)

	// ldflags values win
	stamped := Info{Version: "v9", CommitHash: "abc1234", BuildTime: "then"}
	stamped.applyBuildInfo(bi)
	assert.Equal(t, "v9", stamped.Version)
	assert.Equal(t, "abc1234", stamped.CommitHash)
	assert.Equal(t, "then", stamped.BuildTime)

	devel := Info{Version: "dev"}
	devel.applyBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "dev", devel.Version)
}
