package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/tellersim/tellersim/sim"
)

func TestPrintComparison_OneRowPerDiscipline(t *testing.T) {
	// GIVEN the three disciplines run on the SRTF demonstration workload
	arrivals := []sim.Arrival{
		{JobID: 1, ArrivalTime: 0, ServiceDemand: 5},
		{JobID: 2, ArrivalTime: 1, ServiceDemand: 1},
		{JobID: 3, ArrivalTime: 2, ServiceDemand: 1},
	}
	results, err := sim.CompareDisciplines(context.Background(), sim.Config{NumServers: 1, Quantum: 2}, arrivals)
	require.NoError(t, err)

	// WHEN the comparison table is printed
	var buf bytes.Buffer
	printComparison(&buf, results)

	// THEN each discipline has a row with its averages
	out := buf.String()
	assert.Contains(t, out, "Discipline Comparison")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[4], "srtf"), "got %q", lines[4])
	assert.Contains(t, lines[4], "3.00")
}

func TestPrintComparison_NoCompletions(t *testing.T) {
	var buf bytes.Buffer
	printComparison(&buf, []*sim.RunResult{{Discipline: "fcfs", Rejected: 0}})
	assert.Contains(t, buf.String(), "fcfs")
	assert.Contains(t, buf.String(), "-")
}
