package contracts

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, APIVersion, info.APIVersion)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
}

func TestGetFullVersionString(t *testing.T) {
	s := GetFullVersionString()

	assert.Contains(t, s, "Energy Forecast v"+Version)
	assert.Contains(t, s, "commit: "+GitCommit)
}
