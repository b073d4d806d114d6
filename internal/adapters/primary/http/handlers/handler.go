package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
	"ml-metadata-service/internal/core/services"
)

type Handler struct {
	workspaceSvc *services.WorkspaceService
	modelSvc     *services.ModelService
	versionSvc   *services.ModelVersionService
	artifactSvc  *services.ArtifactService
	lineageSvc   *services.LineageService
	pipelineSvc  *services.PipelineService
	resolver     *services.Resolver

	// Fallback artifact store used for external reference resolution when
	// the caller does not send X-Artifact-Store-ID.
	defaultArtifactStoreID uuid.UUID
}

func New(
	workspaceSvc *services.WorkspaceService,
	modelSvc *services.ModelService,
	versionSvc *services.ModelVersionService,
	artifactSvc *services.ArtifactService,
	lineageSvc *services.LineageService,
	pipelineSvc *services.PipelineService,
	resolver *services.Resolver,
	defaultArtifactStoreID uuid.UUID,
) *Handler {
	return &Handler{
		workspaceSvc:           workspaceSvc,
		modelSvc:               modelSvc,
		versionSvc:             versionSvc,
		artifactSvc:            artifactSvc,
		lineageSvc:             lineageSvc,
		pipelineSvc:            pipelineSvc,
		resolver:               resolver,
		defaultArtifactStoreID: defaultArtifactStoreID,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Workspaces
	r.GET("/workspaces", h.ListWorkspaces)
	r.POST("/workspaces", h.CreateWorkspace)
	r.GET("/workspaces/:id", h.GetWorkspace)
	r.DELETE("/workspaces/:id", h.DeleteWorkspace)

	// Models (":id" accepts a UUID or a name)
	r.GET("/models", h.ListModels)
	r.POST("/models", h.CreateModel)
	r.GET("/models/:id", h.GetModel)
	r.PATCH("/models/:id", h.UpdateModel)
	r.DELETE("/models/:id", h.DeleteModel)

	// Model versions (":ver" accepts a UUID, a name, a number, a stage, or "latest")
	r.GET("/models/:id/versions", h.ListModelVersions)
	r.POST("/models/:id/versions", h.CreateModelVersion)
	r.GET("/models/:id/versions/:ver", h.GetModelVersion)
	r.PATCH("/models/:id/versions/:ver", h.UpdateModelVersion)
	r.DELETE("/models/:id/versions/:ver", h.DeleteModelVersion)

	// Lineage
	r.POST("/models/:id/versions/:ver/artifacts", h.LinkArtifact)
	r.GET("/models/:id/versions/:ver/artifacts", h.GetLinkedArtifact)
	r.GET("/models/:id/versions/:ver/lineage", h.GetLineage)
	r.POST("/models/:id/versions/:ver/runs", h.LinkRun)

	// Artifacts
	r.GET("/artifacts", h.ListArtifacts)
	r.POST("/artifacts", h.CreateArtifact)
	r.GET("/artifacts/:id", h.GetArtifact)
	r.DELETE("/artifacts/:id", h.DeleteArtifact)
	r.GET("/artifacts/:id/versions", h.ListArtifactVersions)
	r.POST("/artifacts/:id/versions", h.CreateArtifactVersion)
	r.GET("/artifacts/:id/versions/:ver", h.GetArtifactVersion)

	// External references
	r.POST("/external_artifacts/resolve", h.ResolveExternalArtifact)

	// Pipelines and runs
	r.GET("/pipelines", h.ListPipelines)
	r.POST("/pipelines", h.CreatePipeline)
	r.GET("/deployments", h.ListDeployments)
	r.POST("/deployments", h.CreateDeployment)
	r.GET("/runs", h.ListRuns)
	r.POST("/runs", h.CreateRun)
	r.GET("/runs/:id", h.GetRun)
	r.GET("/runs/:id/steps", h.ListStepRuns)
	r.POST("/runs/:id/steps", h.CreateStepRun)
}

func getWorkspaceID(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader("Workspace-ID")
	if header == "" {
		return uuid.Nil, domain.ErrMissingWorkspace
	}
	id, err := uuid.Parse(header)
	if err != nil {
		return uuid.Nil, domain.ErrMissingWorkspace
	}
	return id, nil
}
