package handlers

import (
	"net/http"

	"ml-metadata-service/internal/adapters/primary/http/dto"
	"ml-metadata-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) LinkArtifact(c *gin.Context) {
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

	var req dto.LinkArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.versionSvc.LinkArtifact(c.Request.Context(), mv.ID, req.Kind, req.Name, req.VersionLabel, req.ArtifactVersionID)
	if err != nil {
		log.WithError(err).Error("link artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToArtifactLinkResponse(link))
}

// GetLinkedArtifact looks up one linked artifact version by name. The kind
// query parameter narrows the search to a single partition; without it the
// partitions are consulted in model, data, endpoint order. A name with no
// matching link yields 404.
func (h *Handler) GetLinkedArtifact(c *gin.Context) {
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

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}
	versionLabel := c.Query("version")

	var av *domain.ArtifactVersion
	if rawKind := c.Query("kind"); rawKind != "" {
		kind, err := domain.ParseLinkKind(rawKind)
		if err != nil {
			mapDomainError(c, err)
			return
		}
		av, err = h.lineageSvc.GetArtifactOfKind(c.Request.Context(), mv, kind, name, versionLabel)
		if err != nil {
			log.WithError(err).Error("resolve linked artifact failed")
			mapDomainError(c, err)
			return
		}
	} else {
		av, err = h.lineageSvc.GetArtifact(c.Request.Context(), mv, name, versionLabel)
		if err != nil {
			log.WithError(err).Error("resolve linked artifact failed")
			mapDomainError(c, err)
			return
		}
	}

	if av == nil {
		mapDomainError(c, domain.ErrArtifactNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactVersionResponse(av))
}

func (h *Handler) GetLineage(c *gin.Context) {
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

	sets, runs, err := h.lineageSvc.Lineage(c.Request.Context(), mv)
	if err != nil {
		log.WithError(err).Error("load lineage failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LineageResponse{
		ModelVersionID:    mv.ID,
		ModelArtifacts:    dto.ToHydratedSet(sets[domain.LinkKindModel]),
		DataArtifacts:     dto.ToHydratedSet(sets[domain.LinkKindData]),
		EndpointArtifacts: dto.ToHydratedSet(sets[domain.LinkKindEndpoint]),
		Runs:              dto.ToRunMap(runs),
	})
}

func (h *Handler) LinkRun(c *gin.Context) {
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

	var req dto.LinkRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.versionSvc.LinkRun(c.Request.Context(), workspaceID, mv.ID, req.Name, req.PipelineRunID)
	if err != nil {
		log.WithError(err).Error("link run failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRunLinkResponse(link))
}
