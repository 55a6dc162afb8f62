package transcript

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptFormat(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, false)

	logger.Warning("You are in test mode. No deployment will actually take place.")
	logger.Info("It exists. So we're ok.")
	logger.Debug("hidden")

	assert.Equal(t, "WARNING: You are in test mode. No deployment will actually take place.\nIt exists. So we're ok.\n", out.String())
}

func TestTranscriptVerbose(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, true)

	logger.Debug("Already on '3.0'")

	assert.Equal(t, "Already on '3.0'\n", out.String())
}

func TestNewLoggerUsesGivenLogger(t *testing.T) {
	logrusLogger, hook := test.NewNullLogger()
	logger := NewLogger(logrusLogger)

	logger.Warning("Branch name does not match expected auto-tag format.")
	logger.Info("CANNOT CONTINUE AUTO-DEPLOYMENT!")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, logrus.InfoLevel, entries[1].Level)
	assert.Equal(t, "CANNOT CONTINUE AUTO-DEPLOYMENT!", entries[1].Message)
}
