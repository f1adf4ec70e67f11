package board

import (
	"errors"
	"fmt"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrStageNotFound indicates the stage doesn't exist in the project.
	ErrStageNotFound = errors.New("stage not found")
	// ErrDuplicateName indicates a project with the same name already exists.
	ErrDuplicateName = errors.New("project name already exists")
	// ErrInvalidInput indicates a missing or malformed argument.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidStatus indicates a stage status outside the known set.
	ErrInvalidStatus = fmt.Errorf("%w: unknown stage status", ErrInvalidInput)
	// ErrIndexOutOfRange indicates a reorder index outside the stage list.
	ErrIndexOutOfRange = fmt.Errorf("%w: stage index out of range", ErrInvalidInput)
)
