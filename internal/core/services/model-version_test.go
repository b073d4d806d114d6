package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
	"ml-metadata-service/internal/testutil"
)

type versionServiceMocks struct {
	versionRepo  *testutil.MockModelVersionRepo
	modelRepo    *testutil.MockModelRepo
	linkRepo     *testutil.MockLinkRepo
	artifactVers *testutil.MockArtifactVersionRepo
	runRepo      *testutil.MockPipelineRunRepo
}

func newVersionService() (*ModelVersionService, versionServiceMocks) {
	m := versionServiceMocks{
		versionRepo:  new(testutil.MockModelVersionRepo),
		modelRepo:    new(testutil.MockModelRepo),
		linkRepo:     new(testutil.MockLinkRepo),
		artifactVers: new(testutil.MockArtifactVersionRepo),
		runRepo:      new(testutil.MockPipelineRunRepo),
	}
	svc := NewModelVersionService(m.versionRepo, m.modelRepo, m.linkRepo, m.artifactVers, m.runRepo)
	return svc, m
}

func TestModelVersionService_Create(t *testing.T) {
	svc, m := newVersionService()

	workspaceID := uuid.New()
	modelID := uuid.New()

	parent := &domain.Model{ID: modelID, WorkspaceID: workspaceID, Name: "churn"}
	created := &domain.ModelVersion{ID: uuid.New(), ModelID: modelID, Number: 3, Name: "3", Stage: domain.StageNone}

	m.modelRepo.On("GetByID", mock.Anything, workspaceID, modelID).Return(parent, nil)
	m.versionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ModelVersion")).Return(nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mock.AnythingOfType("uuid.UUID")).Return(created, nil)

	version, err := svc.Create(context.Background(), workspaceID, modelID, nil, "", "first cut")
	assert.NoError(t, err)
	assert.Equal(t, 3, version.Number)
	assert.Equal(t, domain.StageNone, version.Stage)
}

func TestModelVersionService_Create_ModelNotFound(t *testing.T) {
	svc, m := newVersionService()

	workspaceID := uuid.New()
	modelID := uuid.New()
	m.modelRepo.On("GetByID", mock.Anything, workspaceID, modelID).Return(nil, domain.ErrModelNotFound)

	_, err := svc.Create(context.Background(), workspaceID, modelID, nil, "v1", "")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
	m.versionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestModelVersionService_SetStage(t *testing.T) {
	svc, m := newVersionService()

	workspaceID := uuid.New()
	modelID := uuid.New()
	versionID := uuid.New()
	promoted := &domain.ModelVersion{ID: versionID, ModelID: modelID, Stage: domain.StageProduction}

	m.versionRepo.On("SetStage", mock.Anything, modelID, versionID, domain.StageProduction, false).Return(nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, versionID).Return(promoted, nil)

	version, err := svc.SetStage(context.Background(), workspaceID, modelID, versionID, "production", false)
	assert.NoError(t, err)
	assert.Equal(t, domain.StageProduction, version.Stage)
}

func TestModelVersionService_SetStage_InvalidStage(t *testing.T) {
	svc, m := newVersionService()

	_, err := svc.SetStage(context.Background(), uuid.New(), uuid.New(), uuid.New(), "shadow", false)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
	m.versionRepo.AssertNotCalled(t, "SetStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModelVersionService_SetStage_LatestNotAssignable(t *testing.T) {
	svc, m := newVersionService()

	_, err := svc.SetStage(context.Background(), uuid.New(), uuid.New(), uuid.New(), "latest", false)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
	m.versionRepo.AssertNotCalled(t, "SetStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModelVersionService_SetStage_Occupied(t *testing.T) {
	svc, m := newVersionService()

	workspaceID := uuid.New()
	modelID := uuid.New()
	versionID := uuid.New()

	m.versionRepo.On("SetStage", mock.Anything, modelID, versionID, domain.StageStaging, false).Return(domain.ErrStageOccupied)

	_, err := svc.SetStage(context.Background(), workspaceID, modelID, versionID, "staging", false)
	assert.ErrorIs(t, err, domain.ErrStageOccupied)
}

func TestModelVersionService_SetStage_Forced(t *testing.T) {
	svc, m := newVersionService()

	workspaceID := uuid.New()
	modelID := uuid.New()
	versionID := uuid.New()
	promoted := &domain.ModelVersion{ID: versionID, ModelID: modelID, Stage: domain.StageStaging}

	m.versionRepo.On("SetStage", mock.Anything, modelID, versionID, domain.StageStaging, true).Return(nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, versionID).Return(promoted, nil)

	version, err := svc.SetStage(context.Background(), workspaceID, modelID, versionID, "staging", true)
	assert.NoError(t, err)
	assert.Equal(t, domain.StageStaging, version.Stage)
}

func TestModelVersionService_LinkArtifact(t *testing.T) {
	svc, m := newVersionService()

	modelVersionID := uuid.New()
	artifactVersionID := uuid.New()
	av := &domain.ArtifactVersion{ID: artifactVersionID, Version: "2"}

	m.artifactVers.On("GetByID", mock.Anything, artifactVersionID).Return(av, nil)
	m.linkRepo.On("LinkArtifact", mock.Anything, mock.AnythingOfType("*domain.ArtifactLink")).Return(nil)

	link, err := svc.LinkArtifact(context.Background(), modelVersionID, "model", "weights", "", artifactVersionID)
	assert.NoError(t, err)
	assert.Equal(t, domain.LinkKindModel, link.Kind)
	// Label defaults to the artifact version's own label.
	assert.Equal(t, "2", link.VersionLabel)
}

func TestModelVersionService_LinkArtifact_InvalidKind(t *testing.T) {
	svc, m := newVersionService()

	_, err := svc.LinkArtifact(context.Background(), uuid.New(), "weights", "weights", "1", uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidLinkKind)
	m.linkRepo.AssertNotCalled(t, "LinkArtifact", mock.Anything, mock.Anything)
}

func TestModelVersionService_LinkArtifact_MissingTarget(t *testing.T) {
	svc, m := newVersionService()

	artifactVersionID := uuid.New()
	m.artifactVers.On("GetByID", mock.Anything, artifactVersionID).Return(nil, domain.ErrArtifactVersionNotFound)

	_, err := svc.LinkArtifact(context.Background(), uuid.New(), "data", "dataset", "1", artifactVersionID)
	assert.ErrorIs(t, err, domain.ErrArtifactVersionNotFound)
}

func TestModelVersionService_LinkArtifact_Conflict(t *testing.T) {
	svc, m := newVersionService()

	artifactVersionID := uuid.New()
	av := &domain.ArtifactVersion{ID: artifactVersionID, Version: "1"}

	m.artifactVers.On("GetByID", mock.Anything, artifactVersionID).Return(av, nil)
	m.linkRepo.On("LinkArtifact", mock.Anything, mock.AnythingOfType("*domain.ArtifactLink")).Return(domain.ErrLinkConflict)

	_, err := svc.LinkArtifact(context.Background(), uuid.New(), "model", "weights", "1", artifactVersionID)
	assert.ErrorIs(t, err, domain.ErrLinkConflict)
}

func TestModelVersionService_LinkRun(t *testing.T) {
	svc, m := newVersionService()

	workspaceID := uuid.New()
	modelVersionID := uuid.New()
	runID := uuid.New()
	run := &domain.PipelineRun{ID: runID, WorkspaceID: workspaceID}

	m.runRepo.On("GetByID", mock.Anything, workspaceID, runID).Return(run, nil)
	m.linkRepo.On("LinkRun", mock.Anything, mock.AnythingOfType("*domain.RunLink")).Return(nil)

	link, err := svc.LinkRun(context.Background(), workspaceID, modelVersionID, "training", runID)
	assert.NoError(t, err)
	assert.Equal(t, "training", link.Name)
	assert.Equal(t, runID, link.PipelineRunID)
}

func TestModelVersionService_LinkRun_EmptyName(t *testing.T) {
	svc, m := newVersionService()

	_, err := svc.LinkRun(context.Background(), uuid.New(), uuid.New(), "", uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	m.linkRepo.AssertNotCalled(t, "LinkRun", mock.Anything, mock.Anything)
}

func TestModelVersionService_List_ClampsLimit(t *testing.T) {
	svc, m := newVersionService()

	m.versionRepo.On("List", mock.Anything, mock.MatchedBy(func(f ports.ModelVersionFilter) bool {
		return f.Limit == 20
	})).Return([]*domain.ModelVersion{}, 0, nil)

	_, _, err := svc.List(context.Background(), ports.ModelVersionFilter{Limit: 0})
	assert.NoError(t, err)
	m.versionRepo.AssertExpectations(t)
}

func TestModelVersionService_List_CapsLimit(t *testing.T) {
	svc, m := newVersionService()

	m.versionRepo.On("List", mock.Anything, mock.MatchedBy(func(f ports.ModelVersionFilter) bool {
		return f.Limit == 100
	})).Return([]*domain.ModelVersion{}, 0, nil)

	_, _, err := svc.List(context.Background(), ports.ModelVersionFilter{Limit: 500})
	assert.NoError(t, err)
	m.versionRepo.AssertExpectations(t)
}
