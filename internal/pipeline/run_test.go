package pipeline

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyyou-coaching/catalog-sync/internal/config"
	"github.com/onlyyou-coaching/catalog-sync/internal/observability"
	"github.com/onlyyou-coaching/catalog-sync/internal/types"
)

type fakeCatalog struct {
	mu      sync.Mutex
	videos  map[string][]types.VideoRecord
	applied []types.MatchDecision
	failIDs map[string]bool
}

func (f *fakeCatalog) ListVideos(_ context.Context, region string) ([]types.VideoRecord, error) {
	return f.videos[region], nil
}

func (f *fakeCatalog) ApplyDecision(_ context.Context, d types.MatchDecision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[d.VideoID] {
		return errors.New("row locked")
	}
	f.applied = append(f.applied, d)
	return nil
}

const abdosDoc = `# 1. Crunch Classique

Région : abdominaux
Position départ : allongé
Mouvement : flexion du tronc
Intensité : débutant
Série : 3 x 15

# 2. Planche Latérale

Région : abdominaux
Position départ : allongé sur le côté
Mouvement : gainage
Intensité : avancé
`

func testOptions(store *fakeCatalog) RunOptions {
	return RunOptions{
		Regions: []config.RegionSource{
			{Region: "abdos", File: "abdos.md", DisplayName: "Abdominaux"},
		},
		MetadataDir: "metadata",
		Printer:     observability.NewPrinter(&bytes.Buffer{}),
		ReadDocument: func(path string) (string, error) {
			return abdosDoc, nil
		},
	}
}

func abdosVideos() []types.VideoRecord {
	return []types.VideoRecord{
		{ID: "v1", Title: "1. Crunch Classique", Region: "abdos"},
		{ID: "v2", Title: "2. Planche Latérale", Region: "abdos"},
		{ID: "v3", Title: "Exercice Mystère", Region: "abdos"},
	}
}

func TestRunDryRunAppliesNothing(t *testing.T) {
	store := &fakeCatalog{videos: map[string][]types.VideoRecord{"abdos": abdosVideos()}}
	opts := testOptions(store)

	summaries, err := Run(context.Background(), store, opts)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 2, s.Documents)
	assert.Equal(t, 3, s.Videos)
	assert.Equal(t, 2, s.ByNumber)
	assert.Equal(t, 1, s.Unmatched)
	assert.Equal(t, 0, s.Applied)
	assert.Empty(t, store.applied, "dry run must not write to the catalog")
}

func TestRunApplyWritesDiffs(t *testing.T) {
	store := &fakeCatalog{videos: map[string][]types.VideoRecord{"abdos": abdosVideos()}}
	opts := testOptions(store)
	opts.Apply = true

	summaries, err := Run(context.Background(), store, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, summaries[0].Applied)
	require.Len(t, store.applied, 2)
	for _, d := range store.applied {
		assert.True(t, d.HasDiffs())
	}
}

func TestRunApplyErrorSkipsRow(t *testing.T) {
	store := &fakeCatalog{
		videos:  map[string][]types.VideoRecord{"abdos": abdosVideos()},
		failIDs: map[string]bool{"v1": true},
	}
	opts := testOptions(store)
	opts.Apply = true

	summaries, err := Run(context.Background(), store, opts)
	require.NoError(t, err, "one failed row must not abort the run")

	assert.Equal(t, 1, summaries[0].Applied)
	require.Len(t, store.applied, 1)
	assert.Equal(t, "v2", store.applied[0].VideoID)
}

func TestRunMissingDocumentSkipsRegion(t *testing.T) {
	store := &fakeCatalog{videos: map[string][]types.VideoRecord{"abdos": abdosVideos()}}
	opts := testOptions(store)
	opts.ReadDocument = func(path string) (string, error) {
		return "", errors.New("no such file")
	}

	summaries, err := Run(context.Background(), store, opts)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].Documents)
	assert.Equal(t, 0, summaries[0].Videos)
}

func TestRunMultipleRegionsAggregates(t *testing.T) {
	store := &fakeCatalog{videos: map[string][]types.VideoRecord{
		"abdos": abdosVideos(),
		"dos":   {{ID: "d1", Title: "1. Crunch Classique", Region: "dos"}},
	}}
	opts := testOptions(store)
	opts.Regions = append(opts.Regions, config.RegionSource{
		Region: "dos", File: "dos.md", DisplayName: "Dos",
	})

	summaries, err := Run(context.Background(), store, opts)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "abdos", summaries[0].Region)
	assert.Equal(t, "dos", summaries[1].Region)
}
