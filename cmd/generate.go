package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tellersim/tellersim/sim/workload"
)

// generateCmd writes a synthetic arrival list as CSV for later replay
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic arrivals as CSV",
	Long:  "Samples a workload (--workload or the built-in bank workload) and writes job_id,arrival_time,service_demand rows to stdout for piping into run --arrivals.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(opts.logLevel)

		spec, err := loadWorkloadSpec(opts, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("Unable to load workload: %v", err)
		}
		arrivals, err := workload.GenerateArrivals(spec)
		if err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
		if err := workload.WriteArrivalsCSV(os.Stdout, arrivals); err != nil {
			logrus.Fatalf("Writing arrivals failed: %v", err)
		}
	},
}
