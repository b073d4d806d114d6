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

func (h *Handler) ListModelVersions(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	model, err := h.resolver.Model(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	number, _ := strconv.Atoi(c.Query("number"))

	userID, _ := uuid.Parse(c.Query("user_id"))

	filter := ports.ModelVersionFilter{
		WorkspaceID: workspaceID,
		ModelID:     model.ID,
		UserID:      userID,
		Name:        c.Query("name"),
		Number:      number,
		Stage:       c.Query("stage"),
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
		Limit:       limit,
		Offset:      offset,
	}

	versions, total, err := h.versionSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list model versions failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ModelVersionResponse, 0, len(versions))
	for _, mv := range versions {
		details, err := h.lineageSvc.Details(c.Request.Context(), mv, false)
		if err != nil {
			log.WithError(err).Error("load version links failed")
			mapDomainError(c, err)
			return
		}
		items = append(items, dto.ToModelVersionResponse(details))
	}

	c.JSON(http.StatusOK, dto.ListModelVersionsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreateModelVersion(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	model, err := h.resolver.Model(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreateModelVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mv, err := h.versionSvc.Create(c.Request.Context(), workspaceID, model.ID, req.UserID, req.Name, req.Description)
	if err != nil {
		log.WithError(err).Error("create model version failed")
		mapDomainError(c, err)
		return
	}

	details, err := h.lineageSvc.Details(c.Request.Context(), mv, false)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToModelVersionResponse(details))
}

// GetModelVersion returns one version. The ":ver" segment accepts a UUID, a
// name, a number, a stage, or "latest". With ?hydrate=true the response also
// carries the workspace and model names.
func (h *Handler) GetModelVersion(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	mv, err := h.resolveVersion(c, workspaceID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	hydrate := c.DefaultQuery("hydrate", "false") == "true"
	details, err := h.lineageSvc.Details(c.Request.Context(), mv, hydrate)
	if err != nil {
		log.WithError(err).Error("load model version failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelVersionResponse(details))
}

func (h *Handler) UpdateModelVersion(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	mv, err := h.resolveVersion(c, workspaceID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.UpdateModelVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Stage != nil {
		mv, err = h.versionSvc.SetStage(c.Request.Context(), workspaceID, mv.ModelID, mv.ID, *req.Stage, req.Force)
		if err != nil {
			log.WithError(err).Error("set stage failed")
			mapDomainError(c, err)
			return
		}
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		mv, err = h.versionSvc.Update(c.Request.Context(), workspaceID, mv.ID, updates)
		if err != nil {
			log.WithError(err).Error("update model version failed")
			mapDomainError(c, err)
			return
		}
	}

	details, err := h.lineageSvc.Details(c.Request.Context(), mv, false)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelVersionResponse(details))
}

func (h *Handler) DeleteModelVersion(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	mv, err := h.resolveVersion(c, workspaceID)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	if err := h.versionSvc.Delete(c.Request.Context(), workspaceID, mv.ID); err != nil {
		log.WithError(err).Error("delete model version failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) resolveVersion(c *gin.Context, workspaceID uuid.UUID) (*domain.ModelVersion, error) {
	model, err := h.resolver.Model(c.Request.Context(), workspaceID, c.Param("id"))
	if err != nil {
		return nil, err
	}
	return h.resolver.ModelVersion(c.Request.Context(), workspaceID, model.ID, c.Param("ver"))
}
