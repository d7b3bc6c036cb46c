package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
	}{
		{name: "no args", args: nil, wantCmd: "", wantRest: nil},
		{name: "command only", args: []string{"validate-versions"}, wantCmd: "validate-versions", wantRest: []string{}},
		{name: "command with args", args: []string{"serve", "-s", "build", "-l", "3000"}, wantCmd: "serve", wantRest: []string{"-s", "build", "-l", "3000"}},
		{name: "flag first", args: []string{"-s", "build"}, wantCmd: "", wantRest: []string{"-s", "build"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, rest := dispatch(tt.args)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}
