package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestCmdFlags(t *testing.T) {
	cmd := newDigestCmd()

	for _, flag := range []string{"config", "query", "max", "dry-run", "debug"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestDigestCmdRejectsInvalidConfig(t *testing.T) {
	// No GEMINI_API_KEY or SLACK_WEBHOOK_URL in the environment.
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SLACK_WEBHOOK_URL", "")

	err := runDigest(digestOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "inboxdigest version "))
}

func TestAuthCmdFlags(t *testing.T) {
	cmd := newAuthCmd()

	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}
