package board

// Stage is one step of a project's progress.
type Stage struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	FileURL string `json:"fileUrl,omitempty"`
	Status  Status `json:"status"`
}

// Project owns an ordered list of stages. Stage order is display order.
type Project struct {
	ProjectID   int     `json:"projectId"`
	ProjectName string  `json:"projectName"`
	Stages      []Stage `json:"stages"`
}

// Download is a file record. New downloads are also cloned into every
// project as a stage.
type Download struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FileURL     string `json:"fileUrl"`
}

// Stage clones the download into a fresh incomplete stage.
func (d Download) Stage() Stage {
	return Stage{
		ID:      d.ID,
		Name:    d.Name,
		FileURL: d.FileURL,
		Status:  StatusIncomplete,
	}
}

// StageIndex returns the position of the stage with the given id, or -1.
func (p *Project) StageIndex(stageID int) int {
	for i := range p.Stages {
		if p.Stages[i].ID == stageID {
			return i
		}
	}
	return -1
}

// NextStageID returns one past the highest stage id in the project.
func (p *Project) NextStageID() int {
	next := 1
	for _, st := range p.Stages {
		if st.ID >= next {
			next = st.ID + 1
		}
	}
	return next
}

// AddStageRequest defines inputs for adding a stage directly to a project.
type AddStageRequest struct {
	Name    string
	FileURL string
}

// CreateDownloadRequest defines download creation inputs.
type CreateDownloadRequest struct {
	Name        string
	Description string
	FileURL     string
}
