package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/tellersim/tellersim/sim"
)

// compareCmd runs every discipline over the same arrivals
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run FCFS, SRTF and Round-Robin over the same workload and compare them",
	Long:  "Replays one arrival list against every discipline concurrently. --discipline is ignored; all other settings are shared.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(opts.logLevel)

		cfg, err := buildConfig(opts, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		arrivals, err := loadArrivals(opts, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("Unable to load arrivals: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := sim.CompareDisciplines(ctx, cfg, arrivals)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		for _, res := range results {
			res.Print(os.Stdout)
			fmt.Println()
		}
		printComparison(os.Stdout, results)
	},
}

// printComparison writes one row of averages per discipline.
func printComparison(w io.Writer, results []*sim.RunResult) {
	fmt.Fprintln(w, "=== Discipline Comparison ===")
	fmt.Fprintf(w, "%-6s %10s %10s %10s %9s %9s\n", "", "turnaround", "waiting", "response", "completed", "rejected")
	for _, res := range results {
		avg, err := res.Averages()
		if errors.Is(err, sim.ErrNoData) {
			fmt.Fprintf(w, "%-6s %10s %10s %10s %9d %9d\n", res.Discipline, "-", "-", "-", res.Completed(), res.Rejected)
			continue
		}
		fmt.Fprintf(w, "%-6s %10.2f %10.2f %10.2f %9d %9d\n",
			res.Discipline, avg.Turnaround, avg.Waiting, avg.Response, res.Completed(), res.Rejected)
	}
}
