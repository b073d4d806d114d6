package handlers

import (
	"errors"
	"net/http"

	"ml-metadata-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrWorkspaceNotFound),
		errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrModelVersionNotFound),
		errors.Is(err, domain.ErrArtifactNotFound),
		errors.Is(err, domain.ErrArtifactVersionNotFound),
		errors.Is(err, domain.ErrPipelineNotFound),
		errors.Is(err, domain.ErrRunNotFound),
		errors.Is(err, domain.ErrDeploymentNotFound),
		errors.Is(err, domain.ErrStepRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Conflict errors
	case errors.Is(err, domain.ErrWorkspaceNameConflict),
		errors.Is(err, domain.ErrModelNameConflict),
		errors.Is(err, domain.ErrVersionNameConflict),
		errors.Is(err, domain.ErrArtifactNameConflict),
		errors.Is(err, domain.ErrArtifactVersionConflict),
		errors.Is(err, domain.ErrPipelineNameConflict),
		errors.Is(err, domain.ErrRunConflict),
		errors.Is(err, domain.ErrStageOccupied),
		errors.Is(err, domain.ErrLinkConflict),
		errors.Is(err, domain.ErrRunLinkConflict),
		errors.Is(err, domain.ErrAmbiguousReference):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidStage),
		errors.Is(err, domain.ErrInvalidLinkKind),
		errors.Is(err, domain.ErrInvalidArtifactType),
		errors.Is(err, domain.ErrInvalidRunStatus),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrMissingWorkspace),
		errors.Is(err, domain.ErrEmptyReference),
		errors.Is(err, domain.ErrConflictingReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Contract violations against the active execution context
	case errors.Is(err, domain.ErrCrossStoreReference):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
