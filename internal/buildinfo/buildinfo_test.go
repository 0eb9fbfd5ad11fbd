package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_fromBuildInfo(t *testing.T) {
	info := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.21.5",
		Main:      debug.Module{Path: "github.com/kagren/solana-sdk", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "-compiler", Value: "gc"},
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "false"},
		},
	})
	require.Equal(t, "github.com/kagren/solana-sdk", info.Module)
	require.Equal(t, "(devel)", info.Version)
	require.Equal(t, "go1.21.5", info.GoVersion)
	require.Equal(t, map[string]string{"revision": "abc123", "modified": "false"}, info.VCS)
	require.Equal(t, "vcs.revision=abc123 vcs.modified=false", info.String())

	require.Empty(t, fromBuildInfo(&debug.BuildInfo{}).String())
}

func TestRead(t *testing.T) {
	info, ok := Read()
	require.True(t, ok)
	require.NotEmpty(t, info.GoVersion)
}
