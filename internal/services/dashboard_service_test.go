package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthgap/internal/config"
	"wealthgap/internal/dataprocessing"
	"wealthgap/internal/infrastructure"
	sharedtestutil "wealthgap/internal/shared/testutil"
	"wealthgap/pkg/contracts/domain"
)

const sampleCSV = `State,State Population,Number in Poverty,Number of Millionaires
Texas,100,15,2
Ohio,100,20,1
Atlantis,50,5,1
`

func newTestService(t *testing.T) (*DashboardService, *infrastructure.Metrics) {
	t.Helper()
	metrics := infrastructure.NewMetrics()
	cfg := config.UploadConfig{
		MaxSizeBytes:     1 << 20,
		PreviewRows:      2,
		MinCompareStates: 2,
	}
	return NewDashboardService(cfg, metrics, sharedtestutil.NewTestLogger(t)), metrics
}

func uploadSample(t *testing.T, svc *DashboardService) string {
	t.Helper()
	summary, err := svc.CreateDataset(context.Background(), strings.NewReader(sampleCSV), "states.csv")
	require.NoError(t, err)
	return summary.ID
}

func TestCreateDataset(t *testing.T) {
	svc, metrics := newTestService(t)

	summary, err := svc.CreateDataset(context.Background(), strings.NewReader(sampleCSV), "states.csv")
	require.NoError(t, err)

	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, "states.csv", summary.Filename)
	assert.Equal(t, []string{"State", "State Population", "Number in Poverty", "Number of Millionaires"}, summary.Columns)
	assert.Equal(t, 3, summary.RowCount)
	assert.Len(t, summary.Preview, 2, "preview is capped by config")
	assert.Equal(t, "State", summary.Mapping.State)
	assert.Equal(t, "State Population", summary.Mapping.Population)
	assert.Equal(t, []string{"Atlantis", "Ohio", "Texas"}, summary.States)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1, svc.SessionCount())
}

func TestCreateDatasetUnparseable(t *testing.T) {
	svc, metrics := newTestService(t)

	_, err := svc.CreateDataset(context.Background(), strings.NewReader("\x00\x01\"\x02"), "blob.bin")
	require.Error(t, err)

	var formatErr *dataprocessing.FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("rejected")))
	assert.Equal(t, 0, svc.SessionCount())
}

func TestDatasetNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Dataset(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSetMapping(t *testing.T) {
	svc, _ := newTestService(t)
	id := uploadSample(t, svc)

	t.Run("unknown column rejected", func(t *testing.T) {
		_, err := svc.SetMapping(context.Background(), id, domain.FieldMapping{
			State:        "State",
			Population:   "Missing Column",
			Poverty:      "Number in Poverty",
			Millionaires: "Number of Millionaires",
		})
		assert.ErrorIs(t, err, dataprocessing.ErrColumnNotFound)
	})

	t.Run("remap recomputes states", func(t *testing.T) {
		summary, err := svc.SetMapping(context.Background(), id, domain.FieldMapping{
			State:        "State",
			Population:   "State Population",
			Poverty:      "Number of Millionaires",
			Millionaires: "Number in Poverty",
		})
		require.NoError(t, err)
		assert.Equal(t, "Number of Millionaires", summary.Mapping.Poverty)
		assert.Equal(t, []string{"Atlantis", "Ohio", "Texas"}, summary.States)
	})
}

func TestComparisonView(t *testing.T) {
	svc, _ := newTestService(t)
	id := uploadSample(t, svc)

	t.Run("selected states aggregated", func(t *testing.T) {
		view, err := svc.ComparisonView(context.Background(), id, []string{"Texas", "Ohio"})
		require.NoError(t, err)

		require.Len(t, view.States, 2)
		assert.Equal(t, "Ohio", view.States[0].StateName)
		assert.Equal(t, "Texas", view.States[1].StateName)
		assert.Equal(t, float64(15), view.States[1].PovertyCount)
		assert.Empty(t, view.Warning)
		assert.NotEmpty(t, view.Narrative)
	})

	t.Run("empty selection warns", func(t *testing.T) {
		view, err := svc.ComparisonView(context.Background(), id, nil)
		require.NoError(t, err)
		assert.Empty(t, view.States)
		assert.Contains(t, view.Warning, "no states selected")
	})

	t.Run("unmatched selection warns", func(t *testing.T) {
		view, err := svc.ComparisonView(context.Background(), id, []string{"Narnia", "Gondor"})
		require.NoError(t, err)
		assert.Empty(t, view.States)
		assert.Contains(t, view.Warning, "none of the selected states")
	})

	t.Run("small selection carries advisory", func(t *testing.T) {
		view, err := svc.ComparisonView(context.Background(), id, []string{"Texas"})
		require.NoError(t, err)
		assert.Len(t, view.States, 1)
		assert.Contains(t, view.Warning, "at least 2 states")
		assert.NotEmpty(t, view.Narrative)
	})
}

func TestChoroplethView(t *testing.T) {
	svc, metrics := newTestService(t)
	id := uploadSample(t, svc)

	view, err := svc.ChoroplethView(context.Background(), id)
	require.NoError(t, err)

	// Atlantis has no postal code and is excluded from the join.
	require.Len(t, view.Entries, 2)
	codes := []string{view.Entries[0].StateCode, view.Entries[1].StateCode}
	assert.ElementsMatch(t, []string{"TX", "OH"}, codes)
	assert.NotEmpty(t, view.Narrative)
	assert.Empty(t, view.Warning)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ViewRequests.WithLabelValues(ViewChoropleth)))
}

func TestChoroplethNarrativeOnlyNamesMappedStates(t *testing.T) {
	svc, _ := newTestService(t)

	// Atlantis has by far the highest density but no postal code, so it
	// must appear neither on the map nor in its interpretation.
	csv := "State,State Population,Number in Poverty,Number of Millionaires\n" +
		"Texas,100,15,2\n" +
		"Ohio,100,20,1\n" +
		"Atlantis,50,5,45\n"
	summary, err := svc.CreateDataset(context.Background(), strings.NewReader(csv), "states.csv")
	require.NoError(t, err)

	view, err := svc.ChoroplethView(context.Background(), summary.ID)
	require.NoError(t, err)

	require.Len(t, view.Entries, 2)
	assert.NotContains(t, view.Narrative, "Atlantis")
	assert.Contains(t, view.Narrative, "Texas (0.020000)")
}

func TestConcurrentMappingAccess(t *testing.T) {
	svc, _ := newTestService(t)
	id := uploadSample(t, svc)

	remap := domain.FieldMapping{
		State:        "State",
		Population:   "State Population",
		Poverty:      "Number of Millionaires",
		Millionaires: "Number in Poverty",
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := svc.SetMapping(context.Background(), id, remap)
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := svc.Dataset(context.Background(), id)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestChoroplethViewNoResolvedStates(t *testing.T) {
	svc, _ := newTestService(t)
	csv := "State,State Population,Number in Poverty,Number of Millionaires\nNarnia,10,1,1\n"
	summary, err := svc.CreateDataset(context.Background(), strings.NewReader(csv), "fictional.csv")
	require.NoError(t, err)

	view, err := svc.ChoroplethView(context.Background(), summary.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.NotEmpty(t, view.Warning)
}

func TestPovertyRateView(t *testing.T) {
	svc, _ := newTestService(t)
	id := uploadSample(t, svc)

	view, err := svc.PovertyRateView(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, view.Entries, 3)
	assert.Equal(t, "Ohio", view.Entries[0].StateName)
	assert.InDelta(t, 0.20, view.Entries[0].Rate, 1e-9)
	assert.Equal(t, "Texas", view.Entries[1].StateName)
	assert.Equal(t, "Atlantis", view.Entries[2].StateName)
	assert.NotEmpty(t, view.Narrative)
}

func TestViewsRequireUsableRows(t *testing.T) {
	svc, _ := newTestService(t)
	csv := "State,State Population,Number in Poverty,Number of Millionaires\nTexas,abc,def,ghi\n"
	summary, err := svc.CreateDataset(context.Background(), strings.NewReader(csv), "junk.csv")
	require.NoError(t, err)

	_, err = svc.PovertyRateView(context.Background(), summary.ID)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExportView(t *testing.T) {
	svc, _ := newTestService(t)
	id := uploadSample(t, svc)

	t.Run("comparison", func(t *testing.T) {
		data, err := svc.ExportView(context.Background(), id, ViewComparison, []string{"Texas", "Ohio"})
		require.NoError(t, err)
		assert.Equal(t, "comparison.csv", data.Filename)
		assert.Equal(t, []string{"State", "Number in Poverty", "Number of Millionaires"}, data.Headers)
		require.Len(t, data.Records, 2)
		assert.Equal(t, []string{"Ohio", "20", "1"}, data.Records[0])
	})

	t.Run("poverty rate formats percent", func(t *testing.T) {
		data, err := svc.ExportView(context.Background(), id, ViewPovertyRate, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ohio", "20.0"}, data.Records[0])
	})

	t.Run("choropleth carries codes", func(t *testing.T) {
		data, err := svc.ExportView(context.Background(), id, ViewChoropleth, nil)
		require.NoError(t, err)
		require.Len(t, data.Records, 2)
		assert.Len(t, data.Records[0], 4)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := svc.ExportView(context.Background(), id, "sparkline", nil)
		assert.ErrorIs(t, err, ErrUnknownView)
	})
}
