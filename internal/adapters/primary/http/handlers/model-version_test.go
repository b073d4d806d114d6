package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ml-metadata-service/internal/core/domain"
	"ml-metadata-service/internal/core/services"
	"ml-metadata-service/internal/testutil"
)

type handlerMocks struct {
	workspaceRepo *testutil.MockWorkspaceRepo
	modelRepo     *testutil.MockModelRepo
	versionRepo   *testutil.MockModelVersionRepo
	artifactRepo  *testutil.MockArtifactRepo
	artifactVers  *testutil.MockArtifactVersionRepo
	linkRepo      *testutil.MockLinkRepo
	runRepo       *testutil.MockPipelineRunRepo
}

func newTestRouter() (*gin.Engine, handlerMocks) {
	gin.SetMode(gin.TestMode)

	m := handlerMocks{
		workspaceRepo: new(testutil.MockWorkspaceRepo),
		modelRepo:     new(testutil.MockModelRepo),
		versionRepo:   new(testutil.MockModelVersionRepo),
		artifactRepo:  new(testutil.MockArtifactRepo),
		artifactVers:  new(testutil.MockArtifactVersionRepo),
		linkRepo:      new(testutil.MockLinkRepo),
		runRepo:       new(testutil.MockPipelineRunRepo),
	}
	pipelineRepo := new(testutil.MockPipelineRepo)
	deploymentRepo := new(testutil.MockDeploymentRepo)
	stepRunRepo := new(testutil.MockStepRunRepo)

	workspaceSvc := services.NewWorkspaceService(m.workspaceRepo)
	modelSvc := services.NewModelService(m.modelRepo)
	versionSvc := services.NewModelVersionService(m.versionRepo, m.modelRepo, m.linkRepo, m.artifactVers, m.runRepo)
	artifactSvc := services.NewArtifactService(m.artifactRepo, m.artifactVers)
	lineageSvc := services.NewLineageService(m.versionRepo, m.modelRepo, m.workspaceRepo, m.linkRepo, m.artifactRepo, m.artifactVers, m.runRepo)
	pipelineSvc := services.NewPipelineService(pipelineRepo, m.runRepo, deploymentRepo, stepRunRepo)
	resolver := services.NewResolver(m.workspaceRepo, m.modelRepo, m.versionRepo, m.artifactRepo, m.runRepo)

	h := New(workspaceSvc, modelSvc, versionSvc, artifactSvc, lineageSvc, pipelineSvc, resolver, uuid.Nil)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1/metadata"))
	return r, m
}

// loadedVersion returns a version with empty, non-nil link collections so
// the read path skips link table fetches.
func loadedVersion(workspaceID, modelID uuid.UUID) *domain.ModelVersion {
	return &domain.ModelVersion{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ModelID:     modelID,
		Number:      1,
		Name:        "1",
		Stage:       domain.StageNone,
		Links:       domain.NewLinkCollections(),
		RunIDs:      map[string]uuid.UUID{},
	}
}

func TestGetModelVersion_MissingWorkspaceHeader(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metadata/models/churn/versions/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetModelVersion_ByStage(t *testing.T) {
	r, m := newTestRouter()

	workspaceID := uuid.New()
	model := &domain.Model{ID: uuid.New(), WorkspaceID: workspaceID, Name: "churn"}
	mv := loadedVersion(workspaceID, model.ID)
	mv.Stage = domain.StageProduction

	m.modelRepo.On("GetByName", mock.Anything, workspaceID, "churn").Return(model, nil)
	m.versionRepo.On("GetByStage", mock.Anything, model.ID, domain.StageProduction).Return(mv, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metadata/models/churn/versions/production", nil)
	req.Header.Set("Workspace-ID", workspaceID.String())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "production", resp["stage"])
	// Not hydrated: no metadata block in the response.
	_, hasMetadata := resp["metadata"]
	assert.False(t, hasMetadata)
}

func TestGetModelVersion_Hydrated(t *testing.T) {
	r, m := newTestRouter()

	workspaceID := uuid.New()
	model := &domain.Model{ID: uuid.New(), WorkspaceID: workspaceID, Name: "churn"}
	mv := loadedVersion(workspaceID, model.ID)

	m.modelRepo.On("GetByName", mock.Anything, workspaceID, "churn").Return(model, nil)
	m.versionRepo.On("GetLatest", mock.Anything, model.ID).Return(mv, nil)
	m.modelRepo.On("GetByID", mock.Anything, workspaceID, model.ID).Return(model, nil)
	m.workspaceRepo.On("GetByID", mock.Anything, workspaceID).Return(&domain.Workspace{ID: workspaceID, Name: "default"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metadata/models/churn/versions/latest?hydrate=true", nil)
	req.Header.Set("Workspace-ID", workspaceID.String())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	metadata, ok := resp["metadata"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "default", metadata["workspace_name"])
	assert.Equal(t, "churn", metadata["model_name"])
}

func TestUpdateModelVersion_StageConflict(t *testing.T) {
	r, m := newTestRouter()

	workspaceID := uuid.New()
	model := &domain.Model{ID: uuid.New(), WorkspaceID: workspaceID, Name: "churn"}
	mv := loadedVersion(workspaceID, model.ID)

	m.modelRepo.On("GetByName", mock.Anything, workspaceID, "churn").Return(model, nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mv.ID).Return(mv, nil)
	m.versionRepo.On("SetStage", mock.Anything, model.ID, mv.ID, domain.StageProduction, false).Return(domain.ErrStageOccupied)

	body, _ := json.Marshal(map[string]any{"stage": "production"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/metadata/models/churn/versions/"+mv.ID.String(), bytes.NewReader(body))
	req.Header.Set("Workspace-ID", workspaceID.String())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateModelVersion_ForcedStage(t *testing.T) {
	r, m := newTestRouter()

	workspaceID := uuid.New()
	model := &domain.Model{ID: uuid.New(), WorkspaceID: workspaceID, Name: "churn"}
	mv := loadedVersion(workspaceID, model.ID)
	promoted := loadedVersion(workspaceID, model.ID)
	promoted.ID = mv.ID
	promoted.Stage = domain.StageProduction

	m.modelRepo.On("GetByName", mock.Anything, workspaceID, "churn").Return(model, nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mv.ID).Return(mv, nil).Once()
	m.versionRepo.On("SetStage", mock.Anything, model.ID, mv.ID, domain.StageProduction, true).Return(nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mv.ID).Return(promoted, nil)

	body, _ := json.Marshal(map[string]any{"stage": "production", "force": true})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/metadata/models/churn/versions/"+mv.ID.String(), bytes.NewReader(body))
	req.Header.Set("Workspace-ID", workspaceID.String())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "production", resp["stage"])
}

func TestGetLinkedArtifact_NotFound(t *testing.T) {
	r, m := newTestRouter()

	workspaceID := uuid.New()
	model := &domain.Model{ID: uuid.New(), WorkspaceID: workspaceID, Name: "churn"}
	mv := loadedVersion(workspaceID, model.ID)

	m.modelRepo.On("GetByName", mock.Anything, workspaceID, "churn").Return(model, nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mv.ID).Return(mv, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metadata/models/churn/versions/"+mv.ID.String()+"/artifacts?name=missing", nil)
	req.Header.Set("Workspace-ID", workspaceID.String())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLinkArtifact(t *testing.T) {
	r, m := newTestRouter()

	workspaceID := uuid.New()
	model := &domain.Model{ID: uuid.New(), WorkspaceID: workspaceID, Name: "churn"}
	mv := loadedVersion(workspaceID, model.ID)
	artifactVersionID := uuid.New()

	m.modelRepo.On("GetByName", mock.Anything, workspaceID, "churn").Return(model, nil)
	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mv.ID).Return(mv, nil)
	m.artifactVers.On("GetByID", mock.Anything, artifactVersionID).Return(&domain.ArtifactVersion{ID: artifactVersionID, Version: "3"}, nil)
	m.linkRepo.On("LinkArtifact", mock.Anything, mock.AnythingOfType("*domain.ArtifactLink")).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"kind":                "model",
		"name":                "weights",
		"artifact_version_id": artifactVersionID,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/metadata/models/churn/versions/"+mv.ID.String()+"/artifacts", bytes.NewReader(body))
	req.Header.Set("Workspace-ID", workspaceID.String())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "weights", resp["name"])
	assert.Equal(t, "3", resp["version_label"])
}

func TestResolveExternalArtifact_CrossStore(t *testing.T) {
	r, m := newTestRouter()

	workspaceID := uuid.New()
	id := uuid.New()
	otherStore := uuid.New()

	m.artifactVers.On("GetByID", mock.Anything, id).Return(&domain.ArtifactVersion{ID: id, ArtifactStoreID: &otherStore}, nil)

	body, _ := json.Marshal(map[string]any{"id": id})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/metadata/external_artifacts/resolve", bytes.NewReader(body))
	req.Header.Set("Workspace-ID", workspaceID.String())
	req.Header.Set("X-Artifact-Store-ID", uuid.New().String())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestResolveExternalArtifact_EmptyReference(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/metadata/external_artifacts/resolve", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Workspace-ID", uuid.New().String())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
