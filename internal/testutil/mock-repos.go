package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

// MockWorkspaceRepo is a mock of WorkspaceRepository.
type MockWorkspaceRepo struct {
	mock.Mock
}

func (m *MockWorkspaceRepo) Create(ctx context.Context, ws *domain.Workspace) error {
	args := m.Called(ctx, ws)
	return args.Error(0)
}

func (m *MockWorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepo) GetByName(ctx context.Context, name string) (*domain.Workspace, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepo) List(ctx context.Context, limit, offset int) ([]*domain.Workspace, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Workspace), args.Int(1), args.Error(2)
}

func (m *MockWorkspaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockModelRepo is a mock of ModelRepository.
type MockModelRepo struct {
	mock.Mock
}

func (m *MockModelRepo) Create(ctx context.Context, model *domain.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockModelRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Model, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}

func (m *MockModelRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Model, error) {
	args := m.Called(ctx, workspaceID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Model), args.Error(1)
}

func (m *MockModelRepo) Update(ctx context.Context, model *domain.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockModelRepo) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockModelRepo) List(ctx context.Context, filter ports.ModelFilter) ([]*domain.Model, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Model), args.Int(1), args.Error(2)
}

// MockModelVersionRepo is a mock of ModelVersionRepository.
type MockModelVersionRepo struct {
	mock.Mock
}

func (m *MockModelVersionRepo) Create(ctx context.Context, version *domain.ModelVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockModelVersionRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.ModelVersion, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetByName(ctx context.Context, modelID uuid.UUID, name string) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetByStage(ctx context.Context, modelID uuid.UUID, stage domain.Stage) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) GetLatest(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelVersion), args.Error(1)
}

func (m *MockModelVersionRepo) SetStage(ctx context.Context, modelID uuid.UUID, versionID uuid.UUID, stage domain.Stage, force bool) error {
	args := m.Called(ctx, modelID, versionID, stage, force)
	return args.Error(0)
}

func (m *MockModelVersionRepo) Update(ctx context.Context, version *domain.ModelVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockModelVersionRepo) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockModelVersionRepo) List(ctx context.Context, filter ports.ModelVersionFilter) ([]*domain.ModelVersion, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ModelVersion), args.Int(1), args.Error(2)
}

// MockArtifactRepo is a mock of ArtifactRepository.
type MockArtifactRepo struct {
	mock.Mock
}

func (m *MockArtifactRepo) Create(ctx context.Context, artifact *domain.Artifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}

func (m *MockArtifactRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Artifact, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *MockArtifactRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Artifact, error) {
	args := m.Called(ctx, workspaceID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *MockArtifactRepo) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, workspaceID, id)
	return args.Error(0)
}

func (m *MockArtifactRepo) List(ctx context.Context, filter ports.ArtifactFilter) ([]*domain.Artifact, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Artifact), args.Int(1), args.Error(2)
}

// MockArtifactVersionRepo is a mock of ArtifactVersionRepository.
type MockArtifactVersionRepo struct {
	mock.Mock
}

func (m *MockArtifactVersionRepo) Create(ctx context.Context, version *domain.ArtifactVersion) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

func (m *MockArtifactVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ArtifactVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactVersion), args.Error(1)
}

func (m *MockArtifactVersionRepo) GetByVersion(ctx context.Context, artifactID uuid.UUID, label string) (*domain.ArtifactVersion, error) {
	args := m.Called(ctx, artifactID, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactVersion), args.Error(1)
}

func (m *MockArtifactVersionRepo) ListLabels(ctx context.Context, artifactID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockArtifactVersionRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.ArtifactVersion, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArtifactVersion), args.Error(1)
}

func (m *MockArtifactVersionRepo) List(ctx context.Context, filter ports.ArtifactVersionFilter) ([]*domain.ArtifactVersion, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ArtifactVersion), args.Int(1), args.Error(2)
}

// MockLinkRepo is a mock of LinkRepository.
type MockLinkRepo struct {
	mock.Mock
}

func (m *MockLinkRepo) LinkArtifact(ctx context.Context, link *domain.ArtifactLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepo) LinkRun(ctx context.Context, link *domain.RunLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockLinkRepo) LoadLinks(ctx context.Context, modelVersionID uuid.UUID) (domain.LinkCollections, error) {
	args := m.Called(ctx, modelVersionID)
	if args.Get(0) == nil {
		return domain.LinkCollections{}, args.Error(1)
	}
	return args.Get(0).(domain.LinkCollections), args.Error(1)
}

func (m *MockLinkRepo) LoadRuns(ctx context.Context, modelVersionID uuid.UUID) (map[string]uuid.UUID, error) {
	args := m.Called(ctx, modelVersionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]uuid.UUID), args.Error(1)
}

// MockPipelineRepo is a mock of PipelineRepository.
type MockPipelineRepo struct {
	mock.Mock
}

func (m *MockPipelineRepo) Create(ctx context.Context, p *domain.Pipeline) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPipelineRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Pipeline, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pipeline), args.Error(1)
}

func (m *MockPipelineRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Pipeline, error) {
	args := m.Called(ctx, workspaceID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pipeline), args.Error(1)
}

func (m *MockPipelineRepo) List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.Pipeline, int, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Pipeline), args.Int(1), args.Error(2)
}

// MockPipelineRunRepo is a mock of PipelineRunRepository.
type MockPipelineRunRepo struct {
	mock.Mock
}

func (m *MockPipelineRunRepo) Create(ctx context.Context, run *domain.PipelineRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockPipelineRunRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.PipelineRun, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineRun), args.Error(1)
}

func (m *MockPipelineRunRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.PipelineRun, error) {
	args := m.Called(ctx, workspaceID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineRun), args.Error(1)
}

func (m *MockPipelineRunRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.PipelineRun, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PipelineRun), args.Error(1)
}

func (m *MockPipelineRunRepo) List(ctx context.Context, filter ports.RunFilter) ([]*domain.PipelineRun, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.PipelineRun), args.Int(1), args.Error(2)
}

// MockDeploymentRepo is a mock of DeploymentRepository.
type MockDeploymentRepo struct {
	mock.Mock
}

func (m *MockDeploymentRepo) Create(ctx context.Context, d *domain.PipelineDeployment) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeploymentRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.PipelineDeployment, error) {
	args := m.Called(ctx, workspaceID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineDeployment), args.Error(1)
}

func (m *MockDeploymentRepo) List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.PipelineDeployment, int, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.PipelineDeployment), args.Int(1), args.Error(2)
}

// MockStepRunRepo is a mock of StepRunRepository.
type MockStepRunRepo struct {
	mock.Mock
}

func (m *MockStepRunRepo) Create(ctx context.Context, s *domain.StepRun) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStepRunRepo) ListByRun(ctx context.Context, runID uuid.UUID) ([]*domain.StepRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StepRun), args.Error(1)
}
