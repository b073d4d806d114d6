package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseSource_JSON(t *testing.T) {
	s := ParseSource(`{"module":"pkg.materializers","attribute":"CSVMaterializer","type":"user"}`)
	assert.Equal(t, "pkg.materializers", s.Module)
	assert.Equal(t, "CSVMaterializer", s.Attribute)
	assert.Equal(t, "user", s.Type)
}

func TestParseSource_LegacyDottedPath(t *testing.T) {
	s := ParseSource("pkg.materializers.CSVMaterializer")
	assert.Equal(t, "pkg.materializers", s.Module)
	assert.Equal(t, "CSVMaterializer", s.Attribute)
	assert.Equal(t, "unknown", s.Type)
	assert.Equal(t, "pkg.materializers.CSVMaterializer", s.Path())
}

func TestParseSource_Empty(t *testing.T) {
	assert.Equal(t, Source{}, ParseSource(""))
}

func TestSource_EncodeRoundTrip(t *testing.T) {
	s := Source{Module: "pkg", Attribute: "Attr", Type: "user"}
	assert.Equal(t, s, ParseSource(s.Encode()))

	assert.Equal(t, "", Source{}.Encode())
}

func TestArtifactVersion_SetVersion(t *testing.T) {
	var v ArtifactVersion

	v.SetVersion("7")
	assert.Equal(t, "7", v.Version)
	if assert.NotNil(t, v.VersionNumber) {
		assert.Equal(t, 7, *v.VersionNumber)
	}

	v.SetVersion("snapshot")
	assert.Equal(t, "snapshot", v.Version)
	assert.Nil(t, v.VersionNumber)
}

func TestParseArtifactType(t *testing.T) {
	typ, err := ParseArtifactType("model")
	assert.NoError(t, err)
	assert.Equal(t, ArtifactTypeModel, typ)

	_, err = ParseArtifactType("blob")
	assert.ErrorIs(t, err, ErrInvalidArtifactType)
}

func TestExternalArtifactRef_Validate(t *testing.T) {
	id := uuid.New()

	assert.NoError(t, ExternalArtifactRef{ID: &id}.Validate())
	assert.NoError(t, ExternalArtifactRef{Name: "dataset"}.Validate())

	err := ExternalArtifactRef{ID: &id, Name: "dataset"}.Validate()
	assert.ErrorIs(t, err, ErrConflictingReference)

	err = ExternalArtifactRef{}.Validate()
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestModelVersionDetails_Hydration(t *testing.T) {
	details := NewModelVersionDetails(ModelVersion{Name: "3"})
	assert.False(t, details.Hydrated())

	_, err := details.Metadata()
	assert.ErrorIs(t, err, ErrNotHydrated)

	details.Hydrate(ModelVersionMetadata{WorkspaceName: "ws", ModelName: "m"})
	assert.True(t, details.Hydrated())

	meta, err := details.Metadata()
	assert.NoError(t, err)
	assert.Equal(t, "ws", meta.WorkspaceName)
	assert.Equal(t, "m", meta.ModelName)
}
