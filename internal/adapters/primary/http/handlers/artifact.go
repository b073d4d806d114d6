package handlers

import (
	"net/http"
	"strconv"

	"ml-metadata-service/internal/adapters/primary/http/dto"
	ports "ml-metadata-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListArtifacts(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.ArtifactFilter{
		WorkspaceID: workspaceID,
		Name:        c.Query("name"),
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
		Limit:       limit,
		Offset:      offset,
	}
	if raw := c.Query("has_custom_name"); raw != "" {
		v := raw == "true"
		filter.HasCustomName = &v
	}

	artifacts, total, err := h.artifactSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list artifacts failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ArtifactResponse, 0, len(artifacts))
	for _, a := range artifacts {
		items = append(items, dto.ToArtifactResponse(a))
	}

	c.JSON(http.StatusOK, dto.ListArtifactsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreateArtifact(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artifact, err := h.artifactSvc.Create(c.Request.Context(), workspaceID, req.Name, req.HasCustomName)
	if err != nil {
		log.WithError(err).Error("create artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToArtifactResponse(artifact))
}

func (h *Handler) GetArtifact(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	artifact, err := h.resolver.Artifact(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactResponse(artifact))
}

func (h *Handler) DeleteArtifact(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	artifact, err := h.resolver.Artifact(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	if err := h.artifactSvc.Delete(c.Request.Context(), workspaceID, artifact.ID); err != nil {
		log.WithError(err).Error("delete artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListArtifactVersions(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	artifact, err := h.resolver.Artifact(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.ArtifactVersionFilter{
		WorkspaceID: workspaceID,
		ArtifactID:  artifact.ID,
		Type:        c.Query("type"),
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
		Limit:       limit,
		Offset:      offset,
	}

	versions, total, err := h.artifactSvc.ListVersions(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list artifact versions failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ArtifactVersionResponse, 0, len(versions))
	for _, v := range versions {
		items = append(items, dto.ToArtifactVersionResponse(v))
	}

	c.JSON(http.StatusOK, dto.ListArtifactVersionsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreateArtifactVersion(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	artifact, err := h.resolver.Artifact(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreateArtifactVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	version, err := h.artifactSvc.CreateVersion(c.Request.Context(), workspaceID, artifact.ID,
		req.UserID, req.ArtifactStoreID, req.Version, req.Type, req.URI,
		dto.ToSource(req.Materializer), dto.ToSource(req.DataType))
	if err != nil {
		log.WithError(err).Error("create artifact version failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToArtifactVersionResponse(version))
}

// GetArtifactVersion fetches one version by label. "latest" (or an empty
// label) picks the newest by the ordering rule used everywhere else.
func (h *Handler) GetArtifactVersion(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	artifact, err := h.resolver.Artifact(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	version, err := h.artifactSvc.GetVersion(c.Request.Context(), workspaceID, artifact.ID, c.Param("ver"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactVersionResponse(version))
}
