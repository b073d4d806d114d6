package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ml-metadata-service/internal/core/domain"
	"ml-metadata-service/internal/testutil"
)

func newTestResolver() (*Resolver, *testutil.MockWorkspaceRepo, *testutil.MockModelRepo, *testutil.MockModelVersionRepo) {
	workspaceRepo := new(testutil.MockWorkspaceRepo)
	modelRepo := new(testutil.MockModelRepo)
	versionRepo := new(testutil.MockModelVersionRepo)
	r := NewResolver(workspaceRepo, modelRepo, versionRepo, new(testutil.MockArtifactRepo), new(testutil.MockPipelineRunRepo))
	return r, workspaceRepo, modelRepo, versionRepo
}

func TestResolver_Workspace_ByID(t *testing.T) {
	r, workspaceRepo, _, _ := newTestResolver()

	id := uuid.New()
	expected := &domain.Workspace{ID: id, Name: "default"}
	workspaceRepo.On("GetByID", mock.Anything, id).Return(expected, nil)

	ws, err := r.Workspace(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, expected, ws)
	workspaceRepo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}

func TestResolver_Workspace_ByName(t *testing.T) {
	r, workspaceRepo, _, _ := newTestResolver()

	expected := &domain.Workspace{ID: uuid.New(), Name: "default"}
	workspaceRepo.On("GetByName", mock.Anything, "default").Return(expected, nil)

	ws, err := r.Workspace(context.Background(), "default")
	assert.NoError(t, err)
	assert.Equal(t, expected, ws)
}

func TestResolver_ModelVersion_ByID(t *testing.T) {
	r, _, _, versionRepo := newTestResolver()

	workspaceID := uuid.New()
	modelID := uuid.New()
	id := uuid.New()
	expected := &domain.ModelVersion{ID: id, ModelID: modelID}
	versionRepo.On("GetByID", mock.Anything, workspaceID, id).Return(expected, nil)

	mv, err := r.ModelVersion(context.Background(), workspaceID, modelID, id.String())
	assert.NoError(t, err)
	assert.Equal(t, expected, mv)
}

func TestResolver_ModelVersion_ByID_WrongModel(t *testing.T) {
	r, _, _, versionRepo := newTestResolver()

	workspaceID := uuid.New()
	id := uuid.New()
	other := &domain.ModelVersion{ID: id, ModelID: uuid.New()}
	versionRepo.On("GetByID", mock.Anything, workspaceID, id).Return(other, nil)

	_, err := r.ModelVersion(context.Background(), workspaceID, uuid.New(), id.String())
	assert.ErrorIs(t, err, domain.ErrModelVersionNotFound)
}

func TestResolver_ModelVersion_Latest(t *testing.T) {
	r, _, _, versionRepo := newTestResolver()

	modelID := uuid.New()
	expected := &domain.ModelVersion{ID: uuid.New(), ModelID: modelID, Number: 4}
	versionRepo.On("GetLatest", mock.Anything, modelID).Return(expected, nil)

	mv, err := r.ModelVersion(context.Background(), uuid.New(), modelID, "latest")
	assert.NoError(t, err)
	assert.Equal(t, 4, mv.Number)
	versionRepo.AssertNotCalled(t, "GetByStage", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_ModelVersion_ByStage(t *testing.T) {
	r, _, _, versionRepo := newTestResolver()

	modelID := uuid.New()
	expected := &domain.ModelVersion{ID: uuid.New(), ModelID: modelID, Stage: domain.StageProduction}
	versionRepo.On("GetByStage", mock.Anything, modelID, domain.StageProduction).Return(expected, nil)

	mv, err := r.ModelVersion(context.Background(), uuid.New(), modelID, "production")
	assert.NoError(t, err)
	assert.Equal(t, domain.StageProduction, mv.Stage)
}

func TestResolver_ModelVersion_ByNumber(t *testing.T) {
	r, _, _, versionRepo := newTestResolver()

	modelID := uuid.New()
	expected := &domain.ModelVersion{ID: uuid.New(), ModelID: modelID, Number: 7}
	versionRepo.On("GetByNumber", mock.Anything, modelID, 7).Return(expected, nil)

	mv, err := r.ModelVersion(context.Background(), uuid.New(), modelID, "7")
	assert.NoError(t, err)
	assert.Equal(t, 7, mv.Number)
	versionRepo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_ModelVersion_ByName(t *testing.T) {
	r, _, _, versionRepo := newTestResolver()

	modelID := uuid.New()
	expected := &domain.ModelVersion{ID: uuid.New(), ModelID: modelID, Name: "baseline"}
	versionRepo.On("GetByName", mock.Anything, modelID, "baseline").Return(expected, nil)

	mv, err := r.ModelVersion(context.Background(), uuid.New(), modelID, "baseline")
	assert.NoError(t, err)
	assert.Equal(t, "baseline", mv.Name)
}

func TestResolver_ModelVersion_AmbiguousStage(t *testing.T) {
	r, _, _, versionRepo := newTestResolver()

	modelID := uuid.New()
	versionRepo.On("GetByStage", mock.Anything, modelID, domain.StageStaging).Return(nil, domain.ErrAmbiguousReference)

	_, err := r.ModelVersion(context.Background(), uuid.New(), modelID, "staging")
	assert.ErrorIs(t, err, domain.ErrAmbiguousReference)
}
