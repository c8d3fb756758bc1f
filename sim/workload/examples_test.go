package workload

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExampleWorkloads_Generate(t *testing.T) {
	for _, file := range []string{"workload-bank.yaml", "workload-poisson.yaml"} {
		t.Run(file, func(t *testing.T) {
			// GIVEN a shipped example workload
			spec, err := LoadWorkloadSpec(filepath.Join("..", "..", "examples", file))
			require.NoError(t, err)

			// WHEN generated
			arrivals, err := GenerateArrivals(spec)

			// THEN it yields num_jobs valid arrivals
			require.NoError(t, err)
			assert.Len(t, arrivals, spec.NumJobs)
			for _, a := range arrivals {
				assert.Positive(t, a.ServiceDemand)
			}
		})
	}
}

func TestExampleArrivals_CSV(t *testing.T) {
	arrivals, err := LoadArrivalsCSV(filepath.Join("..", "..", "examples", "arrivals-srtf.csv"))
	require.NoError(t, err)
	assert.Len(t, arrivals, 3)
	assert.Equal(t, int64(5), arrivals[0].ServiceDemand)
}
