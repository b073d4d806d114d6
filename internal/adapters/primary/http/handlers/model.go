package handlers

import (
	"net/http"
	"strconv"

	"ml-metadata-service/internal/adapters/primary/http/dto"
	ports "ml-metadata-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListModels(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.ModelFilter{
		WorkspaceID: workspaceID,
		Name:        c.Query("name"),
		Search:      c.Query("search"),
		SortBy:      c.Query("sort_by"),
		Order:       c.Query("order"),
		Limit:       limit,
		Offset:      offset,
	}

	models, total, err := h.modelSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list models failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ModelResponse, 0, len(models))
	for _, m := range models {
		items = append(items, dto.ToModelResponse(m))
	}

	c.JSON(http.StatusOK, dto.ListModelsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreateModel(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := h.modelSvc.Create(c.Request.Context(), workspaceID, req.UserID,
		req.Name, req.Description, req.License, req.Audience,
		req.UseCases, req.Limitations, req.TradeOffs, req.Ethics)
	if err != nil {
		log.WithError(err).Error("create model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToModelResponse(model))
}

func (h *Handler) GetModel(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.ToModelResponse(model))
}

func (h *Handler) UpdateModel(c *gin.Context) {
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

	var req dto.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.License != nil {
		updates["license"] = *req.License
	}
	if req.Audience != nil {
		updates["audience"] = *req.Audience
	}
	if req.UseCases != nil {
		updates["use_cases"] = *req.UseCases
	}
	if req.Limitations != nil {
		updates["limitations"] = *req.Limitations
	}
	if req.TradeOffs != nil {
		updates["trade_offs"] = *req.TradeOffs
	}
	if req.Ethics != nil {
		updates["ethics"] = *req.Ethics
	}

	updated, err := h.modelSvc.Update(c.Request.Context(), workspaceID, model.ID, updates)
	if err != nil {
		log.WithError(err).Error("update model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelResponse(updated))
}

func (h *Handler) DeleteModel(c *gin.Context) {
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

	if err := h.modelSvc.Delete(c.Request.Context(), workspaceID, model.ID); err != nil {
		log.WithError(err).Error("delete model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
