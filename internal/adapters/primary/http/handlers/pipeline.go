package handlers

import (
	"net/http"
	"strconv"

	"ml-metadata-service/internal/adapters/primary/http/dto"
	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListPipelines(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	pipelines, total, err := h.pipelineSvc.List(c.Request.Context(), workspaceID, limit, offset)
	if err != nil {
		log.WithError(err).Error("list pipelines failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.PipelineResponse, 0, len(pipelines))
	for _, p := range pipelines {
		items = append(items, dto.ToPipelineResponse(p))
	}

	c.JSON(http.StatusOK, dto.ListPipelinesResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreatePipeline(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreatePipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pipeline, err := h.pipelineSvc.Create(c.Request.Context(), workspaceID, req.Name, req.Description)
	if err != nil {
		log.WithError(err).Error("create pipeline failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPipelineResponse(pipeline))
}

func (h *Handler) ListDeployments(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	deployments, total, err := h.pipelineSvc.ListDeployments(c.Request.Context(), workspaceID, limit, offset)
	if err != nil {
		log.WithError(err).Error("list deployments failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.DeploymentResponse, 0, len(deployments))
	for _, d := range deployments {
		items = append(items, dto.ToDeploymentResponse(d))
	}

	c.JSON(http.StatusOK, dto.ListDeploymentsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreateDeployment(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreateDeploymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deployment, err := h.pipelineSvc.CreateDeployment(c.Request.Context(), workspaceID, req.PipelineID, req.StepConfigurations)
	if err != nil {
		log.WithError(err).Error("create deployment failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDeploymentResponse(deployment))
}

func (h *Handler) ListRuns(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.RunFilter{
		WorkspaceID: workspaceID,
		Status:      c.Query("status"),
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
		Limit:       limit,
		Offset:      offset,
	}
	if raw := c.Query("pipeline_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pipeline_id"})
			return
		}
		filter.PipelineID = id
	}
	if raw := c.Query("deployment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deployment_id"})
			return
		}
		filter.DeploymentID = id
	}

	runs, total, err := h.pipelineSvc.ListRuns(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list runs failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.PipelineRunResponse, 0, len(runs))
	for _, run := range runs {
		items = append(items, dto.ToPipelineRunResponse(run))
	}

	c.JSON(http.StatusOK, dto.ListPipelineRunsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreateRun(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreatePipelineRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := domain.RunStatusInitializing
	if req.Status != "" {
		status, err = domain.ParseRunStatus(req.Status)
		if err != nil {
			mapDomainError(c, err)
			return
		}
	}

	run, err := h.pipelineSvc.CreateRun(c.Request.Context(), workspaceID,
		req.PipelineID, req.DeploymentID, req.OrchestratorRunID, req.Name, status)
	if err != nil {
		log.WithError(err).Error("create run failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPipelineRunResponse(run))
}

func (h *Handler) GetRun(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	run, err := h.resolver.PipelineRun(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPipelineRunResponse(run))
}

func (h *Handler) ListStepRuns(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	run, err := h.resolver.PipelineRun(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	steps, err := h.pipelineSvc.ListStepRuns(c.Request.Context(), workspaceID, run.ID)
	if err != nil {
		log.WithError(err).Error("list step runs failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.StepRunResponse, 0, len(steps))
	for _, s := range steps {
		items = append(items, dto.ToStepRunResponse(s))
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateStepRun(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	run, err := h.resolver.PipelineRun(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreateStepRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := domain.RunStatusInitializing
	if req.Status != "" {
		status, err = domain.ParseRunStatus(req.Status)
		if err != nil {
			mapDomainError(c, err)
			return
		}
	}

	step, err := h.pipelineSvc.CreateStepRun(c.Request.Context(), workspaceID, run.ID, req.Name, status, req.StepConfiguration)
	if err != nil {
		log.WithError(err).Error("create step run failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStepRunResponse(step))
}
