package domain

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunStatusInitializing RunStatus = "initializing"
	RunStatusRunning      RunStatus = "running"
	RunStatusCompleted    RunStatus = "completed"
	RunStatusFailed       RunStatus = "failed"
	RunStatusCached       RunStatus = "cached"
)

// ParseRunStatus validates a raw run status value.
func ParseRunStatus(raw string) (RunStatus, error) {
	switch RunStatus(raw) {
	case RunStatusInitializing, RunStatusRunning, RunStatusCompleted, RunStatusFailed, RunStatusCached:
		return RunStatus(raw), nil
	}
	return "", ErrInvalidRunStatus
}

type Pipeline struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// PipelineDeployment is a frozen, executable rendering of a pipeline. Step
// configurations are stored as one JSON blob mapping step name to its config
// envelope.
type PipelineDeployment struct {
	ID                 uuid.UUID  `json:"id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	WorkspaceID        uuid.UUID  `json:"workspace_id"`
	PipelineID         *uuid.UUID `json:"pipeline_id"`
	StepConfigurations string     `json:"step_configurations"`
}

// PipelineRun is one execution of a deployment. OrchestratorRunID is the
// identifier the orchestrator assigned; together with DeploymentID it is
// unique once the run-uniqueness migration has been applied.
type PipelineRun struct {
	ID                uuid.UUID  `json:"id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	WorkspaceID       uuid.UUID  `json:"workspace_id"`
	PipelineID        *uuid.UUID `json:"pipeline_id"`
	DeploymentID      *uuid.UUID `json:"deployment_id"`
	OrchestratorRunID *string    `json:"orchestrator_run_id"`
	Name              string     `json:"name"`
	Status            RunStatus  `json:"status"`
}

type StepRun struct {
	ID                uuid.UUID `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	PipelineRunID     uuid.UUID `json:"pipeline_run_id"`
	Name              string    `json:"name"`
	Status            RunStatus `json:"status"`
	StepConfiguration string    `json:"step_configuration"`
}
