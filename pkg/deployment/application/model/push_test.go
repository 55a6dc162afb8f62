package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPushContext(t *testing.T) {
	testCases := map[string]struct {
		ref      string
		baseRef  string
		isBranch bool
		isTag    bool
		refType  string
	}{
		"branch":        {ref: "refs/heads/3.0", baseRef: "3.0", isBranch: true, refType: "branch"},
		"tag":           {ref: "refs/tags/3.0.1", baseRef: "3.0.1", isTag: true, refType: "tag"},
		"nested branch": {ref: "refs/heads/release/3.0", baseRef: "3.0", isBranch: true, refType: "branch"},
		"other ref":     {ref: "refs/notes/commits", baseRef: "commits", refType: "ref"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			push := NewPushContext("hash1", "hash2", tc.ref)
			assert.Equal(t, tc.baseRef, push.BaseRef)
			assert.Equal(t, tc.isBranch, push.IsBranch())
			assert.Equal(t, tc.isTag, push.IsTag())
			assert.Equal(t, tc.refType, push.RefType())
			assert.Equal(t, "hash1", push.OldRevision)
			assert.Equal(t, "hash2", push.NewRevision)
		})
	}
}

func TestPushContextIsDeletion(t *testing.T) {
	zero := strings.Repeat("0", 40)
	assert.True(t, NewPushContext("hash1", zero, "refs/heads/3.0").IsDeletion())
	assert.False(t, NewPushContext(zero, "hash2", "refs/heads/3.0").IsDeletion())
	assert.False(t, NewPushContext("hash1", strings.Repeat("0", 39), "refs/heads/3.0").IsDeletion())
}

func TestConfigGitArgs(t *testing.T) {
	config := Config{
		GitDir:      "/var/www/test.fh.org",
		GitWorkTree: "/var/www/test.fh.org",
		GitFlags:    []string{"-c", "core.quotepath=off"},
	}
	assert.Equal(t, []string{
		"--git-dir", "/var/www/test.fh.org/.git",
		"--work-tree", "/var/www/test.fh.org/.",
		"-c", "core.quotepath=off",
	}, config.GitArgs())
	assert.False(t, config.IsProduction())
	assert.True(t, Config{RemoteName: ProductionRemote}.IsProduction())
}
