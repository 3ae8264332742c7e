package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	setupLogger(log.DebugLevel)
	require.Equal(t, log.DebugLevel, log.GetLevel())

	formatter, ok := log.StandardLogger().Formatter.(*log.TextFormatter)
	require.True(t, ok)
	require.True(t, formatter.FullTimestamp)
}
