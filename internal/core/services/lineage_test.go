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

type lineageServiceMocks struct {
	versionRepo   *testutil.MockModelVersionRepo
	modelRepo     *testutil.MockModelRepo
	workspaceRepo *testutil.MockWorkspaceRepo
	linkRepo      *testutil.MockLinkRepo
	artifactRepo  *testutil.MockArtifactRepo
	artifactVers  *testutil.MockArtifactVersionRepo
	runRepo       *testutil.MockPipelineRunRepo
}

func newLineageService() (*LineageService, lineageServiceMocks) {
	m := lineageServiceMocks{
		versionRepo:   new(testutil.MockModelVersionRepo),
		modelRepo:     new(testutil.MockModelRepo),
		workspaceRepo: new(testutil.MockWorkspaceRepo),
		linkRepo:      new(testutil.MockLinkRepo),
		artifactRepo:  new(testutil.MockArtifactRepo),
		artifactVers:  new(testutil.MockArtifactVersionRepo),
		runRepo:       new(testutil.MockPipelineRunRepo),
	}
	svc := NewLineageService(m.versionRepo, m.modelRepo, m.workspaceRepo, m.linkRepo, m.artifactRepo, m.artifactVers, m.runRepo)
	return svc, m
}

// loadedVersion returns a version whose link collections are already present,
// so the lineage read path performs no link table fetches.
func loadedVersion() *domain.ModelVersion {
	return &domain.ModelVersion{
		ID:          uuid.New(),
		ModelID:     uuid.New(),
		WorkspaceID: uuid.New(),
		Number:      1,
		Name:        "1",
		Stage:       domain.StageNone,
		Links:       domain.NewLinkCollections(),
		RunIDs:      map[string]uuid.UUID{},
	}
}

func TestLineageService_Details_NotHydrated(t *testing.T) {
	svc, m := newLineageService()
	mv := loadedVersion()

	details, err := svc.Details(context.Background(), mv, false)
	assert.NoError(t, err)
	assert.False(t, details.Hydrated())

	_, err = details.Metadata()
	assert.ErrorIs(t, err, domain.ErrNotHydrated)
	m.modelRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestLineageService_Details_Hydrated(t *testing.T) {
	svc, m := newLineageService()
	mv := loadedVersion()
	mv.Description = "first"

	m.modelRepo.On("GetByID", mock.Anything, mv.WorkspaceID, mv.ModelID).Return(&domain.Model{ID: mv.ModelID, Name: "churn"}, nil)
	m.workspaceRepo.On("GetByID", mock.Anything, mv.WorkspaceID).Return(&domain.Workspace{ID: mv.WorkspaceID, Name: "default"}, nil)

	details, err := svc.Details(context.Background(), mv, true)
	assert.NoError(t, err)
	assert.True(t, details.Hydrated())

	meta, err := details.Metadata()
	assert.NoError(t, err)
	assert.Equal(t, "churn", meta.ModelName)
	assert.Equal(t, "default", meta.WorkspaceName)
	assert.Equal(t, "first", meta.Description)
}

func TestLineageService_Details_LoadsCollections(t *testing.T) {
	svc, m := newLineageService()
	mv := &domain.ModelVersion{ID: uuid.New(), WorkspaceID: uuid.New(), ModelID: uuid.New()}

	links := domain.NewLinkCollections()
	assert.NoError(t, links.Insert(domain.LinkKindModel, "weights", "1", uuid.New()))

	m.linkRepo.On("LoadLinks", mock.Anything, mv.ID).Return(links, nil)
	m.linkRepo.On("LoadRuns", mock.Anything, mv.ID).Return(map[string]uuid.UUID{}, nil)

	details, err := svc.Details(context.Background(), mv, false)
	assert.NoError(t, err)
	assert.Equal(t, 1, details.Links.Model.Names())
	m.linkRepo.AssertExpectations(t)
}

func TestLineageService_GetArtifact_Precedence(t *testing.T) {
	svc, m := newLineageService()
	mv := loadedVersion()

	modelTarget := uuid.New()
	dataTarget := uuid.New()
	assert.NoError(t, mv.Links.Insert(domain.LinkKindData, "shared", "1", dataTarget))
	assert.NoError(t, mv.Links.Insert(domain.LinkKindModel, "shared", "1", modelTarget))

	expected := &domain.ArtifactVersion{ID: modelTarget, Version: "1"}
	m.artifactVers.On("GetByID", mock.Anything, modelTarget).Return(expected, nil)

	av, err := svc.GetArtifact(context.Background(), mv, "shared", "1")
	assert.NoError(t, err)
	assert.Equal(t, modelTarget, av.ID)
	m.artifactVers.AssertNotCalled(t, "GetByID", mock.Anything, dataTarget)
}

func TestLineageService_GetArtifact_AbsentIsEmpty(t *testing.T) {
	svc, _ := newLineageService()
	mv := loadedVersion()

	av, err := svc.GetArtifact(context.Background(), mv, "missing", "")
	assert.NoError(t, err)
	assert.Nil(t, av)
}

func TestLineageService_GetArtifactOfKind(t *testing.T) {
	svc, m := newLineageService()
	mv := loadedVersion()

	endpointTarget := uuid.New()
	assert.NoError(t, mv.Links.Insert(domain.LinkKindEndpoint, "svc", "1", endpointTarget))

	expected := &domain.ArtifactVersion{ID: endpointTarget, Version: "1"}
	m.artifactVers.On("GetByID", mock.Anything, endpointTarget).Return(expected, nil)

	av, err := svc.GetArtifactOfKind(context.Background(), mv, domain.LinkKindEndpoint, "svc", "")
	assert.NoError(t, err)
	assert.Equal(t, endpointTarget, av.ID)

	av, err = svc.GetArtifactOfKind(context.Background(), mv, domain.LinkKindModel, "svc", "")
	assert.NoError(t, err)
	assert.Nil(t, av)
}

func TestLineageService_Lineage(t *testing.T) {
	svc, m := newLineageService()
	mv := loadedVersion()

	weightsID := uuid.New()
	datasetID := uuid.New()
	runID := uuid.New()
	assert.NoError(t, mv.Links.Insert(domain.LinkKindModel, "weights", "1", weightsID))
	assert.NoError(t, mv.Links.Insert(domain.LinkKindData, "dataset", "3", datasetID))
	mv.RunIDs["training"] = runID

	m.artifactVers.On("ListByIDs", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == 1 && ids[0] == weightsID
	})).Return([]*domain.ArtifactVersion{{ID: weightsID, Version: "1"}}, nil)
	m.artifactVers.On("ListByIDs", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == 1 && ids[0] == datasetID
	})).Return([]*domain.ArtifactVersion{{ID: datasetID, Version: "3"}}, nil)
	m.artifactVers.On("ListByIDs", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == 0
	})).Return([]*domain.ArtifactVersion{}, nil)
	m.runRepo.On("ListByIDs", mock.Anything, []uuid.UUID{runID}).Return([]*domain.PipelineRun{{ID: runID, Name: "train-42"}}, nil)

	partitions, runs, err := svc.Lineage(context.Background(), mv)
	assert.NoError(t, err)
	assert.Equal(t, weightsID, partitions[domain.LinkKindModel]["weights"]["1"].ID)
	assert.Equal(t, datasetID, partitions[domain.LinkKindData]["dataset"]["3"].ID)
	assert.Empty(t, partitions[domain.LinkKindEndpoint])
	assert.Equal(t, "train-42", runs["training"].Name)
}

func TestLineageService_ResolveExternal_ByID(t *testing.T) {
	svc, m := newLineageService()

	id := uuid.New()
	expected := &domain.ArtifactVersion{ID: id, Version: "1"}
	m.artifactVers.On("GetByID", mock.Anything, id).Return(expected, nil)

	av, err := svc.ResolveExternal(context.Background(), uuid.New(), domain.ExternalArtifactRef{ID: &id}, uuid.Nil)
	assert.NoError(t, err)
	assert.Equal(t, id, av.ID)
}

func TestLineageService_ResolveExternal_EmptyRef(t *testing.T) {
	svc, _ := newLineageService()

	_, err := svc.ResolveExternal(context.Background(), uuid.New(), domain.ExternalArtifactRef{}, uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrEmptyReference)
}

func TestLineageService_ResolveExternal_ConflictingRef(t *testing.T) {
	svc, _ := newLineageService()

	id := uuid.New()
	ref := domain.ExternalArtifactRef{ID: &id, Name: "dataset"}
	_, err := svc.ResolveExternal(context.Background(), uuid.New(), ref, uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrConflictingReference)
}

func TestLineageService_ResolveExternal_NameAndVersion(t *testing.T) {
	svc, m := newLineageService()

	workspaceID := uuid.New()
	artifactID := uuid.New()
	versionID := uuid.New()

	m.artifactRepo.On("GetByName", mock.Anything, workspaceID, "dataset").Return(&domain.Artifact{ID: artifactID, Name: "dataset"}, nil)
	m.artifactVers.On("GetByVersion", mock.Anything, artifactID, "2").Return(&domain.ArtifactVersion{ID: versionID, Version: "2"}, nil)

	av, err := svc.ResolveExternal(context.Background(), workspaceID, domain.ExternalArtifactRef{Name: "dataset", Version: "2"}, uuid.Nil)
	assert.NoError(t, err)
	assert.Equal(t, versionID, av.ID)
}

func TestLineageService_ResolveExternal_LatestOfName(t *testing.T) {
	svc, m := newLineageService()

	workspaceID := uuid.New()
	artifactID := uuid.New()
	versionID := uuid.New()

	m.artifactRepo.On("GetByName", mock.Anything, workspaceID, "dataset").Return(&domain.Artifact{ID: artifactID, Name: "dataset"}, nil)
	m.artifactVers.On("ListLabels", mock.Anything, artifactID).Return([]string{"1", "2", "10"}, nil)
	m.artifactVers.On("GetByVersion", mock.Anything, artifactID, "10").Return(&domain.ArtifactVersion{ID: versionID, Version: "10"}, nil)

	av, err := svc.ResolveExternal(context.Background(), workspaceID, domain.ExternalArtifactRef{Name: "dataset"}, uuid.Nil)
	assert.NoError(t, err)
	assert.Equal(t, "10", av.Version)
}

func TestLineageService_ResolveExternal_ThroughModelVersion(t *testing.T) {
	svc, m := newLineageService()

	workspaceID := uuid.New()
	mv := loadedVersion()
	mv.WorkspaceID = workspaceID
	target := uuid.New()
	assert.NoError(t, mv.Links.Insert(domain.LinkKindModel, "weights", "1", target))

	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mv.ID).Return(mv, nil)
	m.artifactVers.On("GetByID", mock.Anything, target).Return(&domain.ArtifactVersion{ID: target, Version: "1"}, nil)

	ref := domain.ExternalArtifactRef{Name: "weights", ModelVersionID: &mv.ID}
	av, err := svc.ResolveExternal(context.Background(), workspaceID, ref, uuid.Nil)
	assert.NoError(t, err)
	assert.Equal(t, target, av.ID)
}

func TestLineageService_ResolveExternal_ThroughModelVersion_Absent(t *testing.T) {
	svc, m := newLineageService()

	workspaceID := uuid.New()
	mv := loadedVersion()
	mv.WorkspaceID = workspaceID

	m.versionRepo.On("GetByID", mock.Anything, workspaceID, mv.ID).Return(mv, nil)

	ref := domain.ExternalArtifactRef{Name: "weights", ModelVersionID: &mv.ID}
	_, err := svc.ResolveExternal(context.Background(), workspaceID, ref, uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestLineageService_ResolveExternal_CrossStore(t *testing.T) {
	svc, m := newLineageService()

	id := uuid.New()
	otherStore := uuid.New()
	m.artifactVers.On("GetByID", mock.Anything, id).Return(&domain.ArtifactVersion{ID: id, ArtifactStoreID: &otherStore}, nil)

	_, err := svc.ResolveExternal(context.Background(), uuid.New(), domain.ExternalArtifactRef{ID: &id}, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCrossStoreReference)
}

func TestLineageService_ResolveExternal_SameStore(t *testing.T) {
	svc, m := newLineageService()

	id := uuid.New()
	store := uuid.New()
	m.artifactVers.On("GetByID", mock.Anything, id).Return(&domain.ArtifactVersion{ID: id, ArtifactStoreID: &store}, nil)

	av, err := svc.ResolveExternal(context.Background(), uuid.New(), domain.ExternalArtifactRef{ID: &id}, store)
	assert.NoError(t, err)
	assert.Equal(t, id, av.ID)
}
