package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/stageboard/internal/domain/board"
)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRunCLI(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	require.NoError(t, err, out)
	return out
}

func TestProjectsCommands(t *testing.T) {
	dir := t.TempDir()

	out := mustRunCLI(t, dir, "projects", "create", "Alpha", "Launch")
	require.Contains(t, out, "Created project 1 (Alpha Launch) with 0 stages")

	out = mustRunCLI(t, dir, "projects", "list")
	require.Contains(t, out, "Alpha Launch")
	require.Contains(t, strings.ToLower(out), "completed")

	_, err := runCLI(t, dir, "projects", "create", "alpha launch")
	require.ErrorIs(t, err, board.ErrDuplicateName)

	out = mustRunCLI(t, dir, "--json", "projects", "show", "1")
	var project board.Project
	require.NoError(t, json.Unmarshal([]byte(out), &project))
	require.Equal(t, "Alpha Launch", project.ProjectName)

	out = mustRunCLI(t, dir, "projects", "delete", "1")
	require.Contains(t, out, "(none)")

	_, err = runCLI(t, dir, "projects", "show", "1")
	require.ErrorIs(t, err, board.ErrProjectNotFound)
}

func TestStagesCommands(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "projects", "create", "Alpha")

	out := mustRunCLI(t, dir, "stages", "add", "1", "Design", "--file", "/design.pdf")
	require.Contains(t, out, "Added stage 1 (Design): ongoing")
	mustRunCLI(t, dir, "stages", "add", "1", "Build")

	out = mustRunCLI(t, dir, "stages", "cycle", "1", "1")
	require.Contains(t, out, "completed")

	out = mustRunCLI(t, dir, "stages", "status", "1", "2", "incomplete")
	require.Contains(t, out, "Updated stage 2 (Build): incomplete")

	_, err := runCLI(t, dir, "stages", "status", "1", "2", "done")
	require.ErrorIs(t, err, board.ErrInvalidStatus)

	out = mustRunCLI(t, dir, "--json", "stages", "move", "1", "1", "0")
	var stages []board.Stage
	require.NoError(t, json.Unmarshal([]byte(out), &stages))
	require.Equal(t, []string{"Build", "Design"}, []string{stages[0].Name, stages[1].Name})

	_, err = runCLI(t, dir, "stages", "move", "1", "0", "5")
	require.ErrorIs(t, err, board.ErrIndexOutOfRange)

	out = mustRunCLI(t, dir, "stages", "delete", "1", "2")
	require.Contains(t, out, "Design")
	require.NotContains(t, out, "Build")
}

func TestDownloadsCommands(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "projects", "create", "Alpha")

	out := mustRunCLI(t, dir, "downloads", "add", "Spec", "--description", "Requirements doc", "--file", "/spec.pdf")
	require.Contains(t, out, "1 download(s)")

	out = mustRunCLI(t, dir, "--json", "projects", "show", "1")
	var project board.Project
	require.NoError(t, json.Unmarshal([]byte(out), &project))
	require.Len(t, project.Stages, 1)
	require.Equal(t, "Spec", project.Stages[0].Name)
	require.Equal(t, board.StatusIncomplete, project.Stages[0].Status)

	out = mustRunCLI(t, dir, "downloads", "list")
	require.Contains(t, out, "Requirements doc")

	out = mustRunCLI(t, dir, "downloads", "delete", "1")
	require.Contains(t, out, "0 download(s)")

	// Stages survive catalog removal
	out = mustRunCLI(t, dir, "projects", "show", "1")
	require.Contains(t, out, "Spec")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	mustRunCLI(t, dir, "downloads", "add", "Spec")
	mustRunCLI(t, dir, "projects", "create", "Alpha")

	dbPath := filepath.Join(t.TempDir(), "board.db")
	out := mustRunCLI(t, dir, "export", "--to", "sqlite", "--to-db", dbPath)
	require.Contains(t, out, "Exported 1 project(s) and 1 download(s) from jsonfile to sqlite")

	out = mustRunCLI(t, dir, "--backend", "sqlite", "--db", dbPath, "projects", "list")
	require.Contains(t, out, "Alpha")

	_, err := runCLI(t, dir, "export")
	require.Error(t, err)

	_, err = runCLI(t, dir, "export", "--to", "jsonfile")
	require.Error(t, err)
}

func TestInvalidArguments(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "projects", "show", "abc")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "projectId must be an integer"))

	_, err = runCLI(t, dir, "--backend", "redis", "projects", "list")
	require.Error(t, err)
}

func TestConfigFileFlag(t *testing.T) {
	dataDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "stageboard.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[store]\ndataDir = \""+filepath.ToSlash(dataDir)+"\"\n"), 0o644))

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "projects", "create", "Alpha"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(dataDir, "projects.json"))
	require.NoError(t, err)
}
