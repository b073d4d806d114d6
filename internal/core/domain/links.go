package domain

import (
	"strconv"

	"github.com/google/uuid"
)

// LinkKind partitions the artifact links of a model version. Identical
// artifact names may appear in several partitions at once.
type LinkKind string

const (
	LinkKindModel    LinkKind = "model"
	LinkKindData     LinkKind = "data"
	LinkKindEndpoint LinkKind = "endpoint"
)

// linkKindOrder is the lookup precedence used when a caller does not name a
// partition: model beats data beats endpoint.
var linkKindOrder = [3]LinkKind{LinkKindModel, LinkKindData, LinkKindEndpoint}

// ParseLinkKind validates a raw link kind value.
func ParseLinkKind(raw string) (LinkKind, error) {
	switch LinkKind(raw) {
	case LinkKindModel, LinkKindData, LinkKindEndpoint:
		return LinkKind(raw), nil
	}
	return "", ErrInvalidLinkKind
}

// LinkSet maps artifact name -> version label -> artifact version ID for one
// partition of a model version's lineage.
type LinkSet map[string]map[string]uuid.UUID

// Insert records a link. Inserting an existing (name, label) pair with the
// same ID is a no-op; with a different ID it fails, since a written mapping is
// never rebound.
func (s LinkSet) Insert(name, label string, id uuid.UUID) error {
	labels, ok := s[name]
	if !ok {
		s[name] = map[string]uuid.UUID{label: id}
		return nil
	}
	if existing, ok := labels[label]; ok {
		if existing == id {
			return nil
		}
		return ErrLinkConflict
	}
	labels[label] = id
	return nil
}

// Resolve returns the artifact version ID recorded for (name, label). An
// empty label selects the latest label under the collection ordering rule.
// An absent name or label yields (uuid.Nil, false), not an error.
func (s LinkSet) Resolve(name, label string) (uuid.UUID, bool) {
	labels, ok := s[name]
	if !ok || len(labels) == 0 {
		return uuid.Nil, false
	}
	if label == "" {
		label = latestLabel(labels)
	}
	id, ok := labels[label]
	return id, ok
}

// Names returns the number of distinct artifact names in the set.
func (s LinkSet) Names() int { return len(s) }

// latestLabel picks the maximum key of one name's bucket: numerically when
// every label parses as a base-10 integer, lexically otherwise.
func latestLabel(labels map[string]uuid.UUID) string {
	numeric := true
	var maxNum int
	var maxNumLabel string
	var maxLex string
	first := true
	for label := range labels {
		if numeric {
			n, err := strconv.Atoi(label)
			if err != nil {
				numeric = false
			} else if first || n > maxNum {
				maxNum = n
				maxNumLabel = label
			}
		}
		if first || label > maxLex {
			maxLex = label
		}
		first = false
	}
	if numeric {
		return maxNumLabel
	}
	return maxLex
}

// LatestVersionLabel applies the collection ordering rule to a plain label
// list. It backs "latest" resolution for artifact versions as well, so the
// link index and the artifact store agree on what latest means.
func LatestVersionLabel(labels []string) (string, bool) {
	if len(labels) == 0 {
		return "", false
	}
	bucket := make(map[string]uuid.UUID, len(labels))
	for _, l := range labels {
		bucket[l] = uuid.Nil
	}
	return latestLabel(bucket), true
}

// ArtifactLink is the persisted form of one link index entry.
type ArtifactLink struct {
	ID                uuid.UUID `json:"id"`
	ModelVersionID    uuid.UUID `json:"model_version_id"`
	ArtifactVersionID uuid.UUID `json:"artifact_version_id"`
	Kind              LinkKind  `json:"kind"`
	Name              string    `json:"name"`
	VersionLabel      string    `json:"version_label"`
}

// RunLink associates a model version with one pipeline run under a name
// unique per model version.
type RunLink struct {
	ID             uuid.UUID `json:"id"`
	ModelVersionID uuid.UUID `json:"model_version_id"`
	PipelineRunID  uuid.UUID `json:"pipeline_run_id"`
	Name           string    `json:"name"`
}

// LinkCollections holds the three link partitions of one model version.
type LinkCollections struct {
	Model    LinkSet
	Data     LinkSet
	Endpoint LinkSet
}

// NewLinkCollections returns empty, non-nil partitions.
func NewLinkCollections() LinkCollections {
	return LinkCollections{
		Model:    LinkSet{},
		Data:     LinkSet{},
		Endpoint: LinkSet{},
	}
}

// Set returns the partition for a kind.
func (c LinkCollections) Set(kind LinkKind) LinkSet {
	switch kind {
	case LinkKindModel:
		return c.Model
	case LinkKindData:
		return c.Data
	default:
		return c.Endpoint
	}
}

// Insert records a link in the named partition.
func (c LinkCollections) Insert(kind LinkKind, name, label string, id uuid.UUID) error {
	return c.Set(kind).Insert(name, label, id)
}

// Resolve looks up (name, label) in one partition.
func (c LinkCollections) Resolve(kind LinkKind, name, label string) (uuid.UUID, bool) {
	return c.Set(kind).Resolve(name, label)
}

// ResolveAny searches the partitions in precedence order (model, data,
// endpoint) and returns the first hit.
func (c LinkCollections) ResolveAny(name, label string) (uuid.UUID, bool) {
	for _, kind := range linkKindOrder {
		if id, ok := c.Set(kind).Resolve(name, label); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
