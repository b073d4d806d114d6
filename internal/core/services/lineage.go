package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

// LineageService is the read path over model version lineage: it materializes
// persisted versions into response objects and resolves named artifact
// references through the link index. It performs zero writes.
type LineageService struct {
	versionRepo   ports.ModelVersionRepository
	modelRepo     ports.ModelRepository
	workspaceRepo ports.WorkspaceRepository
	linkRepo      ports.LinkRepository
	artifactRepo  ports.ArtifactRepository
	artifactVers  ports.ArtifactVersionRepository
	runRepo       ports.PipelineRunRepository
}

func NewLineageService(
	versionRepo ports.ModelVersionRepository,
	modelRepo ports.ModelRepository,
	workspaceRepo ports.WorkspaceRepository,
	linkRepo ports.LinkRepository,
	artifactRepo ports.ArtifactRepository,
	artifactVers ports.ArtifactVersionRepository,
	runRepo ports.PipelineRunRepository,
) *LineageService {
	return &LineageService{
		versionRepo:   versionRepo,
		modelRepo:     modelRepo,
		workspaceRepo: workspaceRepo,
		linkRepo:      linkRepo,
		artifactRepo:  artifactRepo,
		artifactVers:  artifactVers,
		runRepo:       runRepo,
	}
}

// Details materializes a model version into its response view. The metadata
// block (description, parent names) is attached only when hydrate is set.
func (s *LineageService) Details(ctx context.Context, mv *domain.ModelVersion, hydrate bool) (*domain.ModelVersionDetails, error) {
	if err := s.ensureCollections(ctx, mv); err != nil {
		return nil, err
	}

	details := domain.NewModelVersionDetails(*mv)
	if !hydrate {
		return details, nil
	}

	model, err := s.modelRepo.GetByID(ctx, mv.WorkspaceID, mv.ModelID)
	if err != nil {
		return nil, err
	}
	ws, err := s.workspaceRepo.GetByID(ctx, mv.WorkspaceID)
	if err != nil {
		return nil, err
	}
	details.Hydrate(domain.ModelVersionMetadata{
		Description:   mv.Description,
		WorkspaceName: ws.Name,
		ModelName:     model.Name,
	})
	return details, nil
}

// Artifacts resolves one link partition to full artifact version details.
// The referenced IDs are batch-fetched in a single repository call.
func (s *LineageService) Artifacts(ctx context.Context, mv *domain.ModelVersion, kind domain.LinkKind) (map[string]map[string]*domain.ArtifactVersion, error) {
	if err := s.ensureCollections(ctx, mv); err != nil {
		return nil, err
	}
	return s.hydrateSet(ctx, mv.Links.Set(kind))
}

// Lineage resolves all three partitions and the run links of a version. The
// partitions are fetched concurrently, one batched call each.
func (s *LineageService) Lineage(ctx context.Context, mv *domain.ModelVersion) (map[domain.LinkKind]map[string]map[string]*domain.ArtifactVersion, map[string]*domain.PipelineRun, error) {
	if err := s.ensureCollections(ctx, mv); err != nil {
		return nil, nil, err
	}

	partitions := make(map[domain.LinkKind]map[string]map[string]*domain.ArtifactVersion, 3)
	var runs map[string]*domain.PipelineRun

	g, gctx := errgroup.WithContext(ctx)
	var results [3]map[string]map[string]*domain.ArtifactVersion
	for i, kind := range []domain.LinkKind{domain.LinkKindModel, domain.LinkKindData, domain.LinkKindEndpoint} {
		i, kind := i, kind
		g.Go(func() error {
			hydrated, err := s.hydrateSet(gctx, mv.Links.Set(kind))
			if err != nil {
				return err
			}
			results[i] = hydrated
			return nil
		})
	}
	g.Go(func() error {
		hydrated, err := s.Runs(gctx, mv)
		if err != nil {
			return err
		}
		runs = hydrated
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	partitions[domain.LinkKindModel] = results[0]
	partitions[domain.LinkKindData] = results[1]
	partitions[domain.LinkKindEndpoint] = results[2]
	return partitions, runs, nil
}

// GetArtifact resolves a named artifact of a version, merging the partitions
// with precedence model > data > endpoint. An absent name is an optional
// empty result, not an error.
func (s *LineageService) GetArtifact(ctx context.Context, mv *domain.ModelVersion, name, versionLabel string) (*domain.ArtifactVersion, error) {
	if err := s.ensureCollections(ctx, mv); err != nil {
		return nil, err
	}
	id, ok := mv.Links.ResolveAny(name, versionLabel)
	if !ok {
		return nil, nil
	}
	return s.artifactVers.GetByID(ctx, id)
}

// GetArtifactOfKind is GetArtifact restricted to a single partition.
func (s *LineageService) GetArtifactOfKind(ctx context.Context, mv *domain.ModelVersion, kind domain.LinkKind, name, versionLabel string) (*domain.ArtifactVersion, error) {
	if err := s.ensureCollections(ctx, mv); err != nil {
		return nil, err
	}
	id, ok := mv.Links.Resolve(kind, name, versionLabel)
	if !ok {
		return nil, nil
	}
	return s.artifactVers.GetByID(ctx, id)
}

// Runs resolves the run links of a version to full pipeline runs with one
// batched call.
func (s *LineageService) Runs(ctx context.Context, mv *domain.ModelVersion) (map[string]*domain.PipelineRun, error) {
	if err := s.ensureCollections(ctx, mv); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(mv.RunIDs))
	for _, id := range mv.RunIDs {
		ids = append(ids, id)
	}
	runs, err := s.runRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.PipelineRun, len(runs))
	for _, run := range runs {
		byID[run.ID] = run
	}

	hydrated := make(map[string]*domain.PipelineRun, len(mv.RunIDs))
	for name, id := range mv.RunIDs {
		if run, ok := byID[id]; ok {
			hydrated[name] = run
		}
	}
	return hydrated, nil
}

// ResolveExternal resolves an external artifact reference. Exactly one
// resolution path applies: an explicit ID, a (name, version) pair, a name
// answered by an in-flight model version's link index, or the latest version
// of a named artifact. A resolved version stored outside the active artifact
// store is refused.
func (s *LineageService) ResolveExternal(ctx context.Context, workspaceID uuid.UUID, ref domain.ExternalArtifactRef, activeStoreID uuid.UUID) (*domain.ArtifactVersion, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	var (
		av  *domain.ArtifactVersion
		err error
	)
	switch {
	case ref.ID != nil:
		av, err = s.artifactVers.GetByID(ctx, *ref.ID)

	case ref.Version != "":
		var artifact *domain.Artifact
		if artifact, err = s.artifactRepo.GetByName(ctx, workspaceID, ref.Name); err == nil {
			av, err = s.artifactVers.GetByVersion(ctx, artifact.ID, ref.Version)
		}

	case ref.ModelVersionID != nil:
		var mv *domain.ModelVersion
		if mv, err = s.versionRepo.GetByID(ctx, workspaceID, *ref.ModelVersionID); err == nil {
			if av, err = s.GetArtifact(ctx, mv, ref.Name, ""); err == nil && av == nil {
				err = domain.ErrArtifactNotFound
			}
		}

	default:
		var artifact *domain.Artifact
		if artifact, err = s.artifactRepo.GetByName(ctx, workspaceID, ref.Name); err == nil {
			var labels []string
			if labels, err = s.artifactVers.ListLabels(ctx, artifact.ID); err == nil {
				latest, ok := domain.LatestVersionLabel(labels)
				if !ok {
					err = domain.ErrArtifactVersionNotFound
				} else {
					av, err = s.artifactVers.GetByVersion(ctx, artifact.ID, latest)
				}
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if av.ArtifactStoreID != nil && activeStoreID != uuid.Nil && *av.ArtifactStoreID != activeStoreID {
		return nil, domain.ErrCrossStoreReference
	}
	return av, nil
}

// ensureCollections loads the link index and run links of a version unless
// they were loaded already.
func (s *LineageService) ensureCollections(ctx context.Context, mv *domain.ModelVersion) error {
	if mv.Links.Model == nil {
		links, err := s.linkRepo.LoadLinks(ctx, mv.ID)
		if err != nil {
			return err
		}
		mv.Links = links
	}
	if mv.RunIDs == nil {
		runs, err := s.linkRepo.LoadRuns(ctx, mv.ID)
		if err != nil {
			return err
		}
		mv.RunIDs = runs
	}
	return nil
}

// hydrateSet resolves one link partition's IDs with a single batched fetch.
func (s *LineageService) hydrateSet(ctx context.Context, set domain.LinkSet) (map[string]map[string]*domain.ArtifactVersion, error) {
	ids := make([]uuid.UUID, 0, len(set))
	for _, labels := range set {
		for _, id := range labels {
			ids = append(ids, id)
		}
	}
	versions, err := s.artifactVers.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.ArtifactVersion, len(versions))
	for _, v := range versions {
		byID[v.ID] = v
	}

	hydrated := make(map[string]map[string]*domain.ArtifactVersion, len(set))
	for name, labels := range set {
		bucket := make(map[string]*domain.ArtifactVersion, len(labels))
		for label, id := range labels {
			if v, ok := byID[id]; ok {
				bucket[label] = v
			}
		}
		hydrated[name] = bucket
	}
	return hydrated, nil
}
