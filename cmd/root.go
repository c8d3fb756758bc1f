package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/tellersim/tellersim/sim"
	"github.com/tellersim/tellersim/sim/trace"
)

// options holds every flag shared by the run and compare commands.
type options struct {
	logLevel string

	// Run configuration
	configPath    string // YAML run config; flags set explicitly override it
	discipline    string
	numServers    int
	quantum       int64
	queueCapacity int
	horizon       int64
	traceLevel    string

	// Arrival source: CSV replay, YAML workload spec, or the built-in bank workload
	arrivalsPath string
	workloadPath string
	seed         int64
	numJobs      int
}

var opts options

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tellersim",
	Short: "Discrete-event simulator for multi-teller queueing disciplines",
}

// runCmd simulates one discipline and prints its metrics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling discipline over a workload",
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
		logrus.Infof("Loaded %d arrivals", len(arrivals))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := sim.RunSimulation(ctx, cfg, sim.NewArrivalSlice(arrivals))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		res.Print(os.Stdout)
		if res.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(res.Trace))
		}
		if res.Interrupted {
			logrus.Warn("Simulation was interrupted; arrivals after the interrupt were not admitted.")
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// registerSimFlags adds the run-configuration and arrival flags to c.
func registerSimFlags(c *cobra.Command) {
	defaults := sim.DefaultConfig()

	c.Flags().StringVar(&opts.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&opts.configPath, "config", "", "YAML run configuration; explicit flags override its values")
	c.Flags().StringVar(&opts.discipline, "discipline", defaults.Discipline, "Scheduling discipline: fcfs, srtf (sjf), rr (round-robin)")
	c.Flags().IntVar(&opts.numServers, "servers", defaults.NumServers, "Number of tellers")
	c.Flags().Int64Var(&opts.quantum, "quantum", defaults.Quantum, "Round-Robin time slice in ticks")
	c.Flags().IntVar(&opts.queueCapacity, "queue-capacity", defaults.QueueCapacity, "Maximum waiting customers on arrival (0 = unbounded)")
	c.Flags().Int64Var(&opts.horizon, "horizon", 0, "Last tick at which arrivals are admitted (0 = no limit)")
	c.Flags().StringVar(&opts.traceLevel, "trace-level", defaults.TraceLevel, "Decision trace: none, decisions")

	registerWorkloadFlags(c)
	c.Flags().StringVar(&opts.arrivalsPath, "arrivals", "", "CSV file of job_id,arrival_time,service_demand to replay")
	c.MarkFlagsMutuallyExclusive("arrivals", "workload")
}

// registerWorkloadFlags adds the synthetic workload flags to c.
func registerWorkloadFlags(c *cobra.Command) {
	c.Flags().StringVar(&opts.workloadPath, "workload", "", "YAML workload specification for synthetic arrivals")
	c.Flags().Int64Var(&opts.seed, "seed", 42, "Seed for synthetic arrivals (overrides the workload file when set)")
	c.Flags().IntVar(&opts.numJobs, "num-jobs", 50, "Number of synthetic customers (overrides the workload file when set)")
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Decisions            : %d\n", s.TotalDecisions)
	fmt.Fprintf(w, "Admitted / Rejected  : %d / %d\n", s.AdmittedCount, s.RejectedCount)
	fmt.Fprintf(w, "Assignments          : %d\n", s.Assignments)
	fmt.Fprintf(w, "Preemptions          : %d\n", s.Preemptions)
	fmt.Fprintf(w, "Quantum Expiries     : %d\n", s.QuantumExpiries)
	fmt.Fprintf(w, "Completions          : %d\n", s.Completions)
}

func init() {
	registerSimFlags(runCmd)
	registerSimFlags(compareCmd)
	registerWorkloadFlags(generateCmd)
	generateCmd.Flags().StringVar(&opts.logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(generateCmd)
}
