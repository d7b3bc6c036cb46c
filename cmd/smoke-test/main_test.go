package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kargones/frontcheck/internal/constants"
)

func TestDispatch(t *testing.T) {
	cmd, rest := dispatch(nil)
	assert.Equal(t, constants.ActSmokeTest, cmd)
	assert.Empty(t, rest)

	cmd, rest = dispatch([]string{"serve", "-s", "/tmp/build", "-l", "3000"})
	assert.Equal(t, constants.ActServe, cmd)
	assert.Equal(t, []string{"-s", "/tmp/build", "-l", "3000"}, rest)

	cmd, rest = dispatch([]string{"--verbose"})
	assert.Equal(t, constants.ActSmokeTest, cmd)
	assert.Equal(t, []string{"--verbose"}, rest)
}
