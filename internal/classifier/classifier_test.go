package classifier

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muliwe/package-sorter/internal/sorting"
)

type fakeRecorder struct {
	mu     sync.Mutex
	sorts  map[string]int
	errors map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{sorts: map[string]int{}, errors: map[string]int{}}
}

func (f *fakeRecorder) RecordSort(stack string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sorts[stack]++
}

func (f *fakeRecorder) RecordSortError(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[kind]++
}

func TestClassifierNew(t *testing.T) {
	c := New(DefaultConfig())
	require.NotNil(t, c)
}

func TestClassify_Standard(t *testing.T) {
	c := New(DefaultConfig())

	result, err := c.Classify(sorting.Package{Width: 10, Height: 10, Length: 10, Mass: 5})
	require.NoError(t, err)

	assert.Equal(t, sorting.StackStandard, result.Stack)
	assert.False(t, result.Bulky)
	assert.False(t, result.Heavy)
	assert.Equal(t, 1000.0, result.Volume)
	assert.Equal(t, "Within all thresholds", result.Reason)
}

func TestClassify_ReturnsValidResult(t *testing.T) {
	c := New(DefaultConfig())
	fixed := time.Date(2025, 10, 25, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	c.now = func() time.Time { return fixed }

	result, err := c.Classify(sorting.Package{Width: 100, Height: 100, Length: 100, Mass: 25})
	require.NoError(t, err)

	_, err = uuid.Parse(result.RequestID)
	assert.NoError(t, err, "RequestID should be a UUID")
	assert.Equal(t, fixed.UTC(), result.Timestamp)
	assert.Equal(t, time.UTC, result.Timestamp.Location())
	assert.Equal(t, sorting.StackRejected, result.Stack)
	assert.True(t, result.Bulky)
	assert.True(t, result.Heavy)
}

func TestClassify_UniqueRequestIDs(t *testing.T) {
	c := New(DefaultConfig())
	p := sorting.Package{Width: 10, Height: 10, Length: 10, Mass: 5}

	a, err := c.Classify(p)
	require.NoError(t, err)
	b, err := c.Classify(p)
	require.NoError(t, err)

	assert.NotEqual(t, a.RequestID, b.RequestID)
	assert.Equal(t, a.Stack, b.Stack)
}

func TestClassify_Reason(t *testing.T) {
	c := New(DefaultConfig())

	tests := []struct {
		name     string
		pkg      sorting.Package
		contains []string
		excludes []string
	}{
		{
			name:     "bulky by volume",
			pkg:      sorting.Package{Width: 100, Height: 100, Length: 100, Mass: 5},
			contains: []string{"bulky", "volume 1000000 cm3 >= 1000000"},
			excludes: []string{"heavy"},
		},
		{
			name:     "bulky by dimension",
			pkg:      sorting.Package{Width: 10, Height: 150, Length: 10, Mass: 5},
			contains: []string{"height 150 cm >= 150"},
			excludes: []string{"volume", "width", "heavy"},
		},
		{
			name:     "heavy",
			pkg:      sorting.Package{Width: 10, Height: 10, Length: 10, Mass: 20},
			contains: []string{"heavy (mass 20 kg >= 20)"},
			excludes: []string{"bulky"},
		},
		{
			name:     "both",
			pkg:      sorting.Package{Width: 160, Height: 10, Length: 10, Mass: 25},
			contains: []string{"bulky (width 160 cm >= 150)", "heavy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Classify(tt.pkg)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, result.Reason, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, result.Reason, s)
			}
		})
	}
}

func TestClassify_InvalidPackage(t *testing.T) {
	rec := newFakeRecorder()
	c := New(Config{Recorder: rec})

	result, err := c.Classify(sorting.Package{Width: -1, Height: 10, Length: 10, Mass: 5})
	require.Error(t, err)
	assert.True(t, sorting.IsInvalidValue(err))
	assert.Empty(t, result.Stack)
	assert.Empty(t, result.RequestID)

	assert.Equal(t, 1, rec.errors["invalid_value"])
	assert.Empty(t, rec.sorts)
}

func TestClassifyValues(t *testing.T) {
	rec := newFakeRecorder()
	c := New(Config{Recorder: rec})

	result, err := c.ClassifyValues("150", 10, 10.0, "19")
	require.NoError(t, err)
	assert.Equal(t, sorting.StackSpecial, result.Stack)
	assert.Equal(t, 150.0, result.Package.Width)

	_, err = c.ClassifyValues("abc", 10, 10, 5)
	require.Error(t, err)
	assert.True(t, sorting.IsInvalidType(err))

	assert.Equal(t, 1, rec.sorts["SPECIAL"])
	assert.Equal(t, 1, rec.errors["invalid_type"])
}

func TestClassify_ConcurrentUse(t *testing.T) {
	rec := newFakeRecorder()
	c := New(Config{Recorder: rec})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Classify(sorting.Package{Width: 10, Height: 10, Length: 10, Mass: 25})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, rec.sorts["SPECIAL"])
}
