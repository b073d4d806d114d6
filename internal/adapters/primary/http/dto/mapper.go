package dto

import (
	"time"

	"ml-metadata-service/internal/core/domain"
)

const timeFormat = time.RFC3339

func ToWorkspaceResponse(ws *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID,
		CreatedAt:   ws.CreatedAt.Format(timeFormat),
		UpdatedAt:   ws.UpdatedAt.Format(timeFormat),
		Name:        ws.Name,
		Description: ws.Description,
	}
}

func ToModelResponse(m *domain.Model) ModelResponse {
	return ModelResponse{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt.Format(timeFormat),
		UpdatedAt:     m.UpdatedAt.Format(timeFormat),
		WorkspaceID:   m.WorkspaceID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		License:       m.License,
		Audience:      m.Audience,
		UseCases:      m.UseCases,
		Limitations:   m.Limitations,
		TradeOffs:     m.TradeOffs,
		Ethics:        m.Ethics,
		VersionCount:  m.VersionCount,
		LatestVersion: m.LatestVersion,
	}
}

func ToModelVersionResponse(d *domain.ModelVersionDetails) ModelVersionResponse {
	resp := ModelVersionResponse{
		ID:                  d.ID,
		CreatedAt:           d.CreatedAt.Format(timeFormat),
		UpdatedAt:           d.UpdatedAt.Format(timeFormat),
		ModelID:             d.ModelID,
		WorkspaceID:         d.WorkspaceID,
		UserID:              d.UserID,
		Number:              d.Number,
		Name:                d.Name,
		Stage:               string(d.Stage),
		ModelArtifactIDs:    d.Links.Model,
		DataArtifactIDs:     d.Links.Data,
		EndpointArtifactIDs: d.Links.Endpoint,
		PipelineRunIDs:      d.RunIDs,
	}
	if meta, err := d.Metadata(); err == nil {
		resp.Metadata = &ModelVersionMetadataResponse{
			Description:   meta.Description,
			WorkspaceName: meta.WorkspaceName,
			ModelName:     meta.ModelName,
		}
	}
	return resp
}

func ToArtifactResponse(a *domain.Artifact) ArtifactResponse {
	return ArtifactResponse{
		ID:            a.ID,
		CreatedAt:     a.CreatedAt.Format(timeFormat),
		UpdatedAt:     a.UpdatedAt.Format(timeFormat),
		WorkspaceID:   a.WorkspaceID,
		Name:          a.Name,
		HasCustomName: a.HasCustomName,
	}
}

func ToArtifactVersionResponse(v *domain.ArtifactVersion) ArtifactVersionResponse {
	return ArtifactVersionResponse{
		ID:              v.ID,
		CreatedAt:       v.CreatedAt.Format(timeFormat),
		UpdatedAt:       v.UpdatedAt.Format(timeFormat),
		ArtifactID:      v.ArtifactID,
		WorkspaceID:     v.WorkspaceID,
		UserID:          v.UserID,
		ArtifactStoreID: v.ArtifactStoreID,
		Version:         v.Version,
		VersionNumber:   v.VersionNumber,
		Type:            string(v.Type),
		URI:             v.URI,
		Materializer:    toSourceDTO(v.Materializer),
		DataType:        toSourceDTO(v.DataType),
	}
}

func toSourceDTO(s domain.Source) *SourceDTO {
	if s == (domain.Source{}) {
		return nil
	}
	return &SourceDTO{Module: s.Module, Attribute: s.Attribute, Type: s.Type}
}

// ToSource decodes an optional source DTO; nil maps to the zero descriptor.
func ToSource(s *SourceDTO) domain.Source {
	if s == nil {
		return domain.Source{}
	}
	return domain.Source{Module: s.Module, Attribute: s.Attribute, Type: s.Type}
}

func ToArtifactLinkResponse(l *domain.ArtifactLink) ArtifactLinkResponse {
	return ArtifactLinkResponse{
		ID:                l.ID,
		ModelVersionID:    l.ModelVersionID,
		ArtifactVersionID: l.ArtifactVersionID,
		Kind:              string(l.Kind),
		Name:              l.Name,
		VersionLabel:      l.VersionLabel,
	}
}

func ToRunLinkResponse(l *domain.RunLink) RunLinkResponse {
	return RunLinkResponse{
		ID:             l.ID,
		ModelVersionID: l.ModelVersionID,
		PipelineRunID:  l.PipelineRunID,
		Name:           l.Name,
	}
}

func ToPipelineResponse(p *domain.Pipeline) PipelineResponse {
	return PipelineResponse{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt.Format(timeFormat),
		UpdatedAt:   p.UpdatedAt.Format(timeFormat),
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Description: p.Description,
	}
}

func ToDeploymentResponse(d *domain.PipelineDeployment) DeploymentResponse {
	return DeploymentResponse{
		ID:                 d.ID,
		CreatedAt:          d.CreatedAt.Format(timeFormat),
		UpdatedAt:          d.UpdatedAt.Format(timeFormat),
		WorkspaceID:        d.WorkspaceID,
		PipelineID:         d.PipelineID,
		StepConfigurations: d.StepConfigurations,
	}
}

func ToPipelineRunResponse(run *domain.PipelineRun) PipelineRunResponse {
	return PipelineRunResponse{
		ID:                run.ID,
		CreatedAt:         run.CreatedAt.Format(timeFormat),
		UpdatedAt:         run.UpdatedAt.Format(timeFormat),
		WorkspaceID:       run.WorkspaceID,
		PipelineID:        run.PipelineID,
		DeploymentID:      run.DeploymentID,
		OrchestratorRunID: run.OrchestratorRunID,
		Name:              run.Name,
		Status:            string(run.Status),
	}
}

func ToStepRunResponse(s *domain.StepRun) StepRunResponse {
	return StepRunResponse{
		ID:                s.ID,
		CreatedAt:         s.CreatedAt.Format(timeFormat),
		UpdatedAt:         s.UpdatedAt.Format(timeFormat),
		PipelineRunID:     s.PipelineRunID,
		Name:              s.Name,
		Status:            string(s.Status),
		StepConfiguration: s.StepConfiguration,
	}
}

// ToHydratedSet maps one resolved link partition into response shape.
func ToHydratedSet(set map[string]map[string]*domain.ArtifactVersion) map[string]map[string]ArtifactVersionResponse {
	out := make(map[string]map[string]ArtifactVersionResponse, len(set))
	for name, labels := range set {
		bucket := make(map[string]ArtifactVersionResponse, len(labels))
		for label, v := range labels {
			bucket[label] = ToArtifactVersionResponse(v)
		}
		out[name] = bucket
	}
	return out
}

// ToRunMap maps resolved run links into response shape.
func ToRunMap(runs map[string]*domain.PipelineRun) map[string]PipelineRunResponse {
	out := make(map[string]PipelineRunResponse, len(runs))
	for name, run := range runs {
		out[name] = ToPipelineRunResponse(run)
	}
	return out
}
