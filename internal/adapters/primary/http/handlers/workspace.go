package handlers

import (
	"net/http"
	"strconv"

	"ml-metadata-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListWorkspaces(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	workspaces, total, err := h.workspaceSvc.List(c.Request.Context(), limit, offset)
	if err != nil {
		log.WithError(err).Error("list workspaces failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.WorkspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		items = append(items, dto.ToWorkspaceResponse(ws))
	}

	c.JSON(http.StatusOK, dto.ListWorkspacesResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) CreateWorkspace(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.workspaceSvc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		log.WithError(err).Error("create workspace failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

func (h *Handler) GetWorkspace(c *gin.Context) {
	ws, err := h.resolver.Workspace(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *Handler) DeleteWorkspace(c *gin.Context) {
	ws, err := h.resolver.Workspace(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	if err := h.workspaceSvc.Delete(c.Request.Context(), ws.ID); err != nil {
		log.WithError(err).Error("delete workspace failed")
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
