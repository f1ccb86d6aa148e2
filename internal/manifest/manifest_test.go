package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muliwe/package-sorter/internal/classifier"
	"github.com/muliwe/package-sorter/internal/sorting"
)

const sample = `
packages:
  - id: small
    width: 10
    height: 10
    length: 10
    mass: 5
  - id: fridge
    width: 100
    height: 100
    length: 100
    mass: 25.5
  - width: "150"
    height: 10
    length: 10
    mass: 19
  - id: broken
    width: abc
    height: 10
    length: 10
    mass: 5
  - id: negative
    width: 10
    height: 10
    length: 10
    mass: -5
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, m.Packages, 5)

	assert.Equal(t, "small", m.Packages[0].ID)
	assert.Equal(t, "#3", m.Packages[2].ID, "missing IDs are numbered")
	assert.Equal(t, 10, m.Packages[0].Width)
	assert.Equal(t, 25.5, m.Packages[1].Mass)
	assert.Equal(t, "abc", m.Packages[3].Width)
}

func TestParse_JSON(t *testing.T) {
	m, err := Parse(strings.NewReader(`{"packages":[{"id":"a","width":160,"height":10,"length":10,"mass":5}]}`))
	require.NoError(t, err)
	require.Len(t, m.Packages, 1)

	outcomes := m.Classify(classifier.New(classifier.DefaultConfig()))
	require.Len(t, outcomes, 1)
	assert.Equal(t, sorting.StackSpecial, outcomes[0].Result.Stack)
}

func TestParse_Empty(t *testing.T) {
	for _, doc := range []string{"", "packages: []\n"} {
		_, err := Parse(strings.NewReader(doc))
		assert.True(t, errors.Is(err, ErrEmpty), "doc %q: %v", doc, err)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("packages: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding manifest")
}

func TestClassify(t *testing.T) {
	m, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	outcomes := m.Classify(classifier.New(classifier.DefaultConfig()))
	require.Len(t, outcomes, 5)

	assert.Equal(t, sorting.StackStandard, outcomes[0].Result.Stack)
	assert.Equal(t, sorting.StackRejected, outcomes[1].Result.Stack)
	assert.Equal(t, sorting.StackSpecial, outcomes[2].Result.Stack)

	assert.True(t, sorting.IsInvalidType(outcomes[3].Err))
	assert.Empty(t, outcomes[3].Result.Stack)
	assert.True(t, sorting.IsInvalidValue(outcomes[4].Err))
	assert.NotEmpty(t, outcomes[4].Error)

	assert.Equal(t, 2, Failed(outcomes))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Packages, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening manifest")
}
