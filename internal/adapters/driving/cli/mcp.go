package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/taxdesk/internal/adapters/driving/mcp"
)

// mcpHost is the interface the HTTP transport binds to.
var mcpHost string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve taxdesk to AI assistants over MCP",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server so an AI assistant can list your
extracted tax documents, generate a report for one and ask the tax
assistant about it.

Tools:     list_documents, select_document, ask
Resources: taxdesk://documents, taxdesk://documents/{documentId},
           taxdesk://report, taxdesk://conversation

The server speaks JSON-RPC over stdio unless --port is given, in which case
it serves the streamable HTTP transport. Config file changes are applied
while the server runs.

Claude Desktop (claude_desktop_config.json):
  {
    "mcpServers": {
      "taxdesk": {"command": "/path/to/taxdesk", "args": ["mcp", "serve"]}
    }
  }`,
	Example: `  taxdesk mcp serve
  taxdesk mcp serve --port 8080
  taxdesk --demo mcp serve --port 8080 --host 0.0.0.0`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP interface to bind")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	if deskService == nil {
		return fmt.Errorf("desk: %w", errNotConfigured)
	}

	server, err := mcp.NewServer(mcp.NewPorts(deskService))
	if err != nil {
		return err
	}

	startWatch(cmd.Context())

	if port == 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(port))
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
