package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetMCPFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		require.NoError(t, mcpServeCmd.Flags().Set("port", "0"))
		mcpHost = "localhost"
	})
}

func TestMCPServe_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)

	host := mcpServeCmd.Flags().Lookup("host")
	require.NotNil(t, host)
	assert.Equal(t, "localhost", host.DefValue)
}

func TestMCPServe_NotConfigured(t *testing.T) {
	resetMCPFlags(t)

	_, err := execute(t, nil, "mcp", "serve")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestMCPServe_InvalidPort(t *testing.T) {
	setupTestServices(t)
	resetMCPFlags(t)

	_, err := execute(t, nil, "mcp", "serve", "--port", "70000")

	assert.EqualError(t, err, "invalid port 70000")
}

func TestMCPServe_RejectsArgs(t *testing.T) {
	setupTestServices(t)
	resetMCPFlags(t)

	_, err := execute(t, nil, "mcp", "serve", "extra")

	assert.Error(t, err)
}
