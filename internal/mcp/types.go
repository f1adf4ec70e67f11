package mcp

import "github.com/ganot/stageboard/internal/domain/board"

type EmptyParams struct{}

type ProjectRefParams struct {
	ProjectID int `json:"projectId" jsonschema:"project id"`
}

type CreateProjectParams struct {
	ProjectName string `json:"projectName" jsonschema:"unique project name"`
}

type AddStageParams struct {
	ProjectID int    `json:"projectId" jsonschema:"project id"`
	Name      string `json:"name" jsonschema:"stage name"`
	FileURL   string `json:"fileUrl,omitempty" jsonschema:"optional file link for the stage"`
}

type SetStageStatusParams struct {
	ProjectID int    `json:"projectId" jsonschema:"project id"`
	StageID   int    `json:"stageId" jsonschema:"stage id"`
	Status    string `json:"status" jsonschema:"one of ongoing, completed, incomplete"`
}

type StageRefParams struct {
	ProjectID int `json:"projectId" jsonschema:"project id"`
	StageID   int `json:"stageId" jsonschema:"stage id"`
}

type ReorderStageParams struct {
	ProjectID int `json:"projectId" jsonschema:"project id"`
	FromIndex int `json:"fromIndex" jsonschema:"current zero-based position"`
	ToIndex   int `json:"toIndex" jsonschema:"target zero-based position"`
}

type CreateDownloadParams struct {
	Name        string `json:"name" jsonschema:"download name, also used as the stage name"`
	Description string `json:"description,omitempty" jsonschema:"download description"`
	FileURL     string `json:"fileUrl,omitempty" jsonschema:"file link"`
}

type DownloadRefParams struct {
	ID int `json:"id" jsonschema:"download id"`
}

type ProjectsResult struct {
	Projects []board.Project `json:"projects"`
}

type ProjectResult struct {
	Project board.Project `json:"project"`
}

type StageResult struct {
	Stage board.Stage `json:"stage"`
}

type StagesResult struct {
	Stages []board.Stage `json:"stages"`
}

type DownloadsResult struct {
	Downloads []board.Download `json:"downloads"`
}
