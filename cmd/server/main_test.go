package main

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// The test binary doubles as the server when STAGEBOARD_TEST_SERVE is set.
func TestMain(m *testing.M) {
	if os.Getenv("STAGEBOARD_TEST_SERVE") == "1" {
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func serverCommand(ctx context.Context, t *testing.T, dataDir string) *exec.Cmd {
	t.Helper()
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=^$")
	cmd.Env = append(os.Environ(),
		"STAGEBOARD_TEST_SERVE=1",
		"STAGEBOARD_TRANSPORT=stdio",
		"STAGEBOARD_STORE_BACKEND=jsonfile",
		"STAGEBOARD_DATA_DIR="+dataDir,
		"STAGEBOARD_LOG_LEVEL=debug",
	)
	return cmd
}

// TestStdioProtocolCompliance drives the server over stdio with the SDK client.
func TestStdioProtocolCompliance(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dataDir := t.TempDir()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: serverCommand(ctx, t, dataDir)}, nil)
	require.NoError(t, err, "Failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.NotNil(t, initResult.ServerInfo)
		require.Equal(t, "stageboard", initResult.ServerInfo.Name)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err, "tools/list failed")
		require.Len(t, tools.Tools, 12)
	})

	t.Run("CallCreateProject", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
			Name:      "create_project",
			Arguments: map[string]any{"projectName": "Alpha"},
		})
		require.NoError(t, err, "tools/call create_project failed")
		require.False(t, result.IsError, "create_project returned error: %v", result)
	})

	t.Run("CallListProjects", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "list_projects"})
		require.NoError(t, err, "tools/call list_projects failed")
		require.False(t, result.IsError, "list_projects returned error: %v", result)
		require.NotEmpty(t, result.Content)

		text, ok := result.Content[0].(*sdkmcp.TextContent)
		require.True(t, ok)
		var out struct {
			Projects []struct {
				ProjectName string `json:"projectName"`
			} `json:"projects"`
		}
		require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
		require.Len(t, out.Projects, 1)
		require.Equal(t, "Alpha", out.Projects[0].ProjectName)
	})

	// Writes land in the configured data directory
	_, err = os.Stat(filepath.Join(dataDir, "projects.json"))
	require.NoError(t, err)
}
