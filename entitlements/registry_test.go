package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndNormalizePartitions(t *testing.T) {
	valid, invalid := ValidateAndNormalize([]string{"finances", "video_calls", "events", "livestream"})

	assert.Equal(t, []string{"events", "finances"}, valid, "válidos saem na ordem do catálogo")
	assert.Equal(t, []string{"video_calls", "livestream"}, invalid, "inválidos preservam a ordem de entrada")
}

func TestValidateAndNormalizeAllValid(t *testing.T) {
	valid, invalid := ValidateAndNormalize([]string{"reports", "members"})

	assert.Empty(t, invalid)
	assert.Equal(t, []string{"members", "reports"}, valid)
}

func TestValidateAndNormalizeCollapsesDuplicates(t *testing.T) {
	valid, invalid := ValidateAndNormalize([]string{"events", "events", "nope", "nope"})

	assert.Equal(t, []string{"events"}, valid)
	assert.Equal(t, []string{"nope"}, invalid)
}

func TestValidateAndNormalizeEmptyInput(t *testing.T) {
	valid, invalid := ValidateAndNormalize(nil)

	assert.NotNil(t, valid)
	assert.Empty(t, valid)
	assert.Empty(t, invalid)
}

func TestFeatureIDsMatchesCatalog(t *testing.T) {
	ids := FeatureIDs()
	require.NotEmpty(t, ids)
	for _, id := range ids {
		assert.True(t, HasFeatureID(id))
	}

	// Todo plano construído só com ids do catálogo valida limpo.
	valid, invalid := ValidateAndNormalize(ids)
	assert.Equal(t, ids, valid)
	assert.Empty(t, invalid)
}

func TestFeaturesReturnsCopy(t *testing.T) {
	a := Features()
	a[0].ID = "mutated"
	b := Features()
	assert.NotEqual(t, "mutated", b[0].ID)
}
