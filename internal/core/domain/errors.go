package domain

import "errors"

// ============================================================================
// Not Found Errors
// ============================================================================

var (
	ErrWorkspaceNotFound       = errors.New("workspace not found")
	ErrModelNotFound           = errors.New("model not found")
	ErrModelVersionNotFound    = errors.New("model version not found")
	ErrArtifactNotFound        = errors.New("artifact not found")
	ErrArtifactVersionNotFound = errors.New("artifact version not found")
	ErrPipelineNotFound        = errors.New("pipeline not found")
	ErrRunNotFound             = errors.New("pipeline run not found")
	ErrDeploymentNotFound      = errors.New("pipeline deployment not found")
	ErrStepRunNotFound         = errors.New("step run not found")
)

// ============================================================================
// Conflict Errors
// ============================================================================

var (
	ErrWorkspaceNameConflict   = errors.New("workspace with this name already exists")
	ErrModelNameConflict       = errors.New("model with this name already exists in the workspace")
	ErrVersionNameConflict     = errors.New("version with this name already exists for this model")
	ErrArtifactNameConflict    = errors.New("artifact with this name already exists in the workspace")
	ErrArtifactVersionConflict = errors.New("artifact version with this label already exists")
	ErrPipelineNameConflict    = errors.New("pipeline with this name already exists in the workspace")
	ErrRunConflict             = errors.New("pipeline run violates the orchestrator run uniqueness rule")
	ErrStageOccupied           = errors.New("another model version already occupies the target stage")
	ErrLinkConflict            = errors.New("artifact link already exists with a different artifact version")
	ErrRunLinkConflict         = errors.New("run link already exists with a different pipeline run")
	ErrAmbiguousReference      = errors.New("reference matches more than one entity")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	ErrInvalidStage         = errors.New("invalid model version stage")
	ErrInvalidLinkKind      = errors.New("invalid artifact link kind")
	ErrInvalidArtifactType  = errors.New("invalid artifact type")
	ErrInvalidRunStatus     = errors.New("invalid run status")
	ErrInvalidName          = errors.New("name is required")
	ErrMissingWorkspace     = errors.New("workspace is required (Workspace-ID header)")
	ErrEmptyReference       = errors.New("either the ID or the name of the artifact must be provided")
	ErrConflictingReference = errors.New("only one of the ID or the name of the artifact may be provided")
)

// ============================================================================
// Contract Errors
// ============================================================================

var (
	// ErrCrossStoreReference is returned when a resolved artifact version lives
	// in an artifact store other than the caller's active one.
	ErrCrossStoreReference = errors.New("artifact version is not stored in the active artifact store")

	// ErrNotHydrated is returned when metadata fields are read from a response
	// that was materialized without hydration.
	ErrNotHydrated = errors.New("response metadata requested before hydration")
)

// ============================================================================
// Migration Errors
// ============================================================================

var (
	ErrMigrationAbort = errors.New("migration aborted")
	ErrRevisionChain  = errors.New("migration revision chain is not linear")
)
