package dto

import "github.com/google/uuid"

type CreatePipelineRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type PipelineResponse struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type ListPipelinesResponse struct {
	Items      []PipelineResponse `json:"items"`
	Total      int                `json:"total"`
	PageSize   int                `json:"page_size"`
	NextOffset int                `json:"next_offset"`
}

type CreateDeploymentRequest struct {
	PipelineID         *uuid.UUID `json:"pipeline_id"`
	StepConfigurations string     `json:"step_configurations"`
}

type DeploymentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	CreatedAt          string     `json:"created_at"`
	UpdatedAt          string     `json:"updated_at"`
	WorkspaceID        uuid.UUID  `json:"workspace_id"`
	PipelineID         *uuid.UUID `json:"pipeline_id"`
	StepConfigurations string     `json:"step_configurations,omitempty"`
}

type ListDeploymentsResponse struct {
	Items      []DeploymentResponse `json:"items"`
	Total      int                  `json:"total"`
	PageSize   int                  `json:"page_size"`
	NextOffset int                  `json:"next_offset"`
}

type CreatePipelineRunRequest struct {
	Name              string     `json:"name" binding:"required"`
	PipelineID        *uuid.UUID `json:"pipeline_id"`
	DeploymentID      *uuid.UUID `json:"deployment_id"`
	OrchestratorRunID *string    `json:"orchestrator_run_id"`
	Status            string     `json:"status"`
}

type PipelineRunResponse struct {
	ID                uuid.UUID  `json:"id"`
	CreatedAt         string     `json:"created_at"`
	UpdatedAt         string     `json:"updated_at"`
	WorkspaceID       uuid.UUID  `json:"workspace_id"`
	PipelineID        *uuid.UUID `json:"pipeline_id"`
	DeploymentID      *uuid.UUID `json:"deployment_id"`
	OrchestratorRunID *string    `json:"orchestrator_run_id"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
}

type ListPipelineRunsResponse struct {
	Items      []PipelineRunResponse `json:"items"`
	Total      int                   `json:"total"`
	PageSize   int                   `json:"page_size"`
	NextOffset int                   `json:"next_offset"`
}

type CreateStepRunRequest struct {
	Name              string `json:"name" binding:"required"`
	Status            string `json:"status"`
	StepConfiguration string `json:"step_configuration"`
}

type StepRunResponse struct {
	ID                uuid.UUID `json:"id"`
	CreatedAt         string    `json:"created_at"`
	UpdatedAt         string    `json:"updated_at"`
	PipelineRunID     uuid.UUID `json:"pipeline_run_id"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	StepConfiguration string    `json:"step_configuration,omitempty"`
}
