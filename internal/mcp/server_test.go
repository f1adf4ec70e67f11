package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/ganot/stageboard/internal/jsonfile"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	store, err := jsonfile.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	server := NewServer(Config{Service: board.NewService(store, nil)})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	if out != nil && !res.IsError {
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), out))
	}
	return res
}

func resultText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestListTools(t *testing.T) {
	session := newTestSession(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_projects", "get_project", "create_project", "delete_project",
		"add_stage", "set_stage_status", "cycle_stage_status", "reorder_stage", "delete_stage",
		"list_downloads", "create_download", "delete_download",
	}, names)
}

func TestToolsBoardFlow(t *testing.T) {
	session := newTestSession(t)

	var downloads DownloadsResult
	callTool(t, session, "create_download", map[string]any{"name": "Spec", "description": "d", "fileUrl": "/spec.pdf"}, &downloads)
	require.Len(t, downloads.Downloads, 1)

	var created ProjectResult
	res := callTool(t, session, "create_project", map[string]any{"projectName": "Alpha"}, &created)
	require.False(t, res.IsError)
	require.Equal(t, 1, created.Project.ProjectID)
	require.Len(t, created.Project.Stages, 1)
	require.Equal(t, board.StatusIncomplete, created.Project.Stages[0].Status)

	var added StageResult
	callTool(t, session, "add_stage", map[string]any{"projectId": 1, "name": "Review"}, &added)
	require.Equal(t, board.StatusOngoing, added.Stage.Status)

	var cycled StageResult
	callTool(t, session, "cycle_stage_status", map[string]any{"projectId": 1, "stageId": added.Stage.ID}, &cycled)
	require.Equal(t, board.StatusCompleted, cycled.Stage.Status)

	var set StageResult
	callTool(t, session, "set_stage_status", map[string]any{"projectId": 1, "stageId": added.Stage.ID, "status": "incomplete"}, &set)
	require.Equal(t, board.StatusIncomplete, set.Stage.Status)

	var reordered StagesResult
	callTool(t, session, "reorder_stage", map[string]any{"projectId": 1, "fromIndex": 1, "toIndex": 0}, &reordered)
	require.Equal(t, "Review", reordered.Stages[0].Name)

	var remaining StagesResult
	callTool(t, session, "delete_stage", map[string]any{"projectId": 1, "stageId": added.Stage.ID}, &remaining)
	require.Len(t, remaining.Stages, 1)

	var project ProjectResult
	callTool(t, session, "get_project", map[string]any{"projectId": 1}, &project)
	require.Equal(t, "Alpha", project.Project.ProjectName)

	var afterDelete DownloadsResult
	callTool(t, session, "delete_download", map[string]any{"id": downloads.Downloads[0].ID}, &afterDelete)
	require.Empty(t, afterDelete.Downloads)

	var projects ProjectsResult
	callTool(t, session, "delete_project", map[string]any{"projectId": 1}, &projects)
	require.Empty(t, projects.Projects)
}

func TestToolErrorCodes(t *testing.T) {
	session := newTestSession(t)

	res := callTool(t, session, "get_project", map[string]any{"projectId": 42}, nil)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), CodeProjectNotFound)

	callTool(t, session, "create_project", map[string]any{"projectName": "Alpha"}, nil)

	res = callTool(t, session, "create_project", map[string]any{"projectName": "alpha"}, nil)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), CodeDuplicateName)

	res = callTool(t, session, "cycle_stage_status", map[string]any{"projectId": 1, "stageId": 9}, nil)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), CodeStageNotFound)

	res = callTool(t, session, "set_stage_status", map[string]any{"projectId": 1, "stageId": 1, "status": "done"}, nil)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), CodeInvalidInput)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))

	tests := []struct {
		err  error
		code string
	}{
		{board.ErrProjectNotFound, CodeProjectNotFound},
		{board.ErrStageNotFound, CodeStageNotFound},
		{board.ErrDuplicateName, CodeDuplicateName},
		{board.ErrInvalidStatus, CodeInvalidInput},
		{board.ErrIndexOutOfRange, CodeInvalidInput},
		{errors.New("disk on fire"), CodeInternal},
	}
	for _, tt := range tests {
		apiErr := MapError(tt.err)
		require.Equal(t, tt.code, apiErr.Code, tt.err.Error())
		require.ErrorIs(t, apiErr, tt.err)
	}
}

type staticResolver map[string]string

func (r staticResolver) ResolveUser(_ context.Context, token string) (string, error) {
	if user, ok := r[token]; ok {
		return user, nil
	}
	return "", errors.New("unknown token")
}

func TestAuthMiddlewareRejectsMissingHeaders(t *testing.T) {
	mw := authMiddleware(staticResolver{"tok": "admin"})
	called := false
	handler := mw(func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
		called = true
		return nil, nil
	})

	_, err := handler(context.Background(), "tools/call", &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "list_projects"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, CodeUnauthorized, apiErr.Code)
	require.False(t, called)

	_, err = handler(context.Background(), "tools/list", &sdkmcp.ListToolsRequest{})
	require.NoError(t, err)
	require.True(t, called)
}
