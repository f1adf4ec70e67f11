package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/ganot/stageboard/internal/domain/board"
	"github.com/ganot/stageboard/internal/testserver"
)

// BoardBDDTestContext holds the state of one scenario.
type BoardBDDTestContext struct {
	t      *testing.T
	server *testserver.TestServer
	status int
	body   []byte
}

func (c *BoardBDDTestContext) anEmptyBoard() error {
	c.server = testserver.New(c.t)
	c.status = 0
	c.body = nil
	return nil
}

func (c *BoardBDDTestContext) request(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, c.server.URL(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.status = resp.StatusCode
	c.body, err = io.ReadAll(resp.Body)
	return err
}

func (c *BoardBDDTestContext) iSend(method, path string) error {
	return c.request(method, path, nil)
}

func (c *BoardBDDTestContext) iSendWithBody(method, path string, doc *godog.DocString) error {
	return c.request(method, path, bytes.NewBufferString(doc.Content))
}

func (c *BoardBDDTestContext) theResponseStatusShouldBe(code int) error {
	if c.status != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, c.status, c.body)
	}
	return nil
}

func (c *BoardBDDTestContext) theResponseShouldListDownloads(count, lastID int) error {
	var downloads []board.Download
	if err := json.Unmarshal(c.body, &downloads); err != nil {
		return err
	}
	if len(downloads) != count {
		return fmt.Errorf("expected %d downloads, got %d", count, len(downloads))
	}
	if got := downloads[len(downloads)-1].ID; got != lastID {
		return fmt.Errorf("expected newest download id %d, got %d", lastID, got)
	}
	return nil
}

func (c *BoardBDDTestContext) projectShouldHaveID(name string, id int) error {
	var project board.Project
	if err := json.Unmarshal(c.body, &project); err != nil {
		return err
	}
	if project.ProjectName != name || project.ProjectID != id {
		return fmt.Errorf("expected project %q with id %d, got %q with id %d", name, id, project.ProjectName, project.ProjectID)
	}
	return nil
}

func (c *BoardBDDTestContext) theResponseShouldHaveStages(table *godog.Table) error {
	var project board.Project
	if err := json.Unmarshal(c.body, &project); err != nil {
		return err
	}

	rows := table.Rows[1:]
	if len(project.Stages) != len(rows) {
		return fmt.Errorf("expected %d stages, got %d", len(rows), len(project.Stages))
	}
	for i, row := range rows {
		id, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return err
		}
		want := board.Stage{
			ID:      id,
			Name:    row.Cells[1].Value,
			FileURL: row.Cells[2].Value,
			Status:  board.Status(row.Cells[3].Value),
		}
		if project.Stages[i] != want {
			return fmt.Errorf("stage %d: expected %+v, got %+v", i, want, project.Stages[i])
		}
	}
	return nil
}

func (c *BoardBDDTestContext) projectsExist(names string) error {
	for _, name := range splitNames(names) {
		if _, err := c.server.Service.CreateProject(context.Background(), name); err != nil {
			return err
		}
	}
	return nil
}

func (c *BoardBDDTestContext) projectHasStages(projectID int, names string) error {
	for _, name := range splitNames(names) {
		if _, err := c.server.Service.AddStage(context.Background(), projectID, board.AddStageRequest{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

func (c *BoardBDDTestContext) everyProjectShouldEndWith(name string) error {
	projects, err := c.server.Service.ListProjects(context.Background())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return fmt.Errorf("no projects")
	}
	for _, p := range projects {
		if len(p.Stages) == 0 {
			return fmt.Errorf("project %q has no stages", p.ProjectName)
		}
		last := p.Stages[len(p.Stages)-1]
		if last.Name != name || last.Status != board.StatusIncomplete {
			return fmt.Errorf("project %q ends with %+v", p.ProjectName, last)
		}
	}
	return nil
}

func (c *BoardBDDTestContext) thereShouldBeProjects(count int) error {
	projects, err := c.server.Service.ListProjects(context.Background())
	if err != nil {
		return err
	}
	if len(projects) != count {
		return fmt.Errorf("expected %d projects, got %d", count, len(projects))
	}
	return nil
}

func (c *BoardBDDTestContext) theStageOrderShouldBe(names string) error {
	var stages []board.Stage
	if err := json.Unmarshal(c.body, &stages); err != nil {
		return err
	}
	got := make([]string, 0, len(stages))
	for _, s := range stages {
		got = append(got, s.Name)
	}
	if want := splitNames(names); strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected order %v, got %v", want, got)
	}
	return nil
}

func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func initializeBoardScenario(t *testing.T) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		testCtx := &BoardBDDTestContext{t: t}

		// Background steps
		ctx.Step(`^an empty board$`, testCtx.anEmptyBoard)

		// Setup steps
		ctx.Step(`^projects "([^"]*)" exist$`, testCtx.projectsExist)
		ctx.Step(`^project (\d+) has (?:a stage|stages) "([^"]*)"$`, testCtx.projectHasStages)

		// Request steps
		ctx.Step(`^I (GET|DELETE|POST) "([^"]*)"$`, testCtx.iSend)
		ctx.Step(`^I (POST|PUT) "([^"]*)" with body:$`, testCtx.iSendWithBody)

		// Assertion steps
		ctx.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
		ctx.Step(`^the response should list (\d+) downloads? with id (\d+)$`, testCtx.theResponseShouldListDownloads)
		ctx.Step(`^project "([^"]*)" should have id (\d+)$`, testCtx.projectShouldHaveID)
		ctx.Step(`^the response should have stages:$`, testCtx.theResponseShouldHaveStages)
		ctx.Step(`^every project should end with an incomplete stage named "([^"]*)"$`, testCtx.everyProjectShouldEndWith)
		ctx.Step(`^there should be (\d+) projects?$`, testCtx.thereShouldBeProjects)
		ctx.Step(`^the stage order should be "([^"]*)"$`, testCtx.theStageOrderShouldBe)
	}
}

// TestBoardFeatures runs the BDD tests for the board API
func TestBoardFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeBoardScenario(t),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/board.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
