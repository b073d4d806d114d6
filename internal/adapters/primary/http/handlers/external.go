package handlers

import (
	"net/http"

	"ml-metadata-service/internal/adapters/primary/http/dto"
	"ml-metadata-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ResolveExternalArtifact turns a loose artifact reference into a concrete
// artifact version. The active store is taken from the X-Artifact-Store-ID
// header, falling back to the configured default; a reference that resolves
// into a different store is rejected.
func (h *Handler) ResolveExternalArtifact(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.ResolveExternalArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activeStoreID := h.defaultArtifactStoreID
	if header := c.GetHeader("X-Artifact-Store-ID"); header != "" {
		parsed, err := uuid.Parse(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid X-Artifact-Store-ID header"})
			return
		}
		activeStoreID = parsed
	}

	ref := domain.ExternalArtifactRef{
		ID:             req.ID,
		Name:           req.Name,
		Version:        req.Version,
		ModelVersionID: req.ModelVersionID,
	}

	version, err := h.lineageSvc.ResolveExternal(c.Request.Context(), workspaceID, ref, activeStoreID)
	if err != nil {
		log.WithError(err).Error("resolve external artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactVersionResponse(version))
}
