package main

import (
	"github.com/spf13/cobra"

	"github.com/chemosim/turnover/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a receptor turnover scenario.",
	Long: "`run --config scenario.yaml` runs the scenario and prints the " +
		"final expression of every cell. Flags override the scenario file.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadRunConfig(cmd)
		if err != nil {
			return err
		}

		if dump, _ := cmd.Flags().GetBool("dump-config"); dump {
			return cfg.Encode(cmd.OutOrStdout())
		}

		s, err := newScenario(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		if logEvents, _ := cmd.Flags().GetBool("log-events"); logEvents {
			s.attachEventLogger()
		}

		if cfg.Record.Enabled {
			if err := s.attachRecorder(); err != nil {
				return err
			}
		}

		if cfg.Monitor.Enabled {
			s.attachMonitor()
		}

		defer s.close()

		if every, _ := cmd.Flags().GetDuration("report-every"); every > 0 {
			reporter, err := newProgressReporter(s, every)
			if err != nil {
				return err
			}

			reporter.start()
			defer reporter.stop()
		}

		if err := s.populate(); err != nil {
			return err
		}

		if err := s.run(); err != nil {
			return err
		}

		return s.printSummary(cmd.OutOrStdout())
	},
}

func init() {
	defineRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func defineRunFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringP("config", "c", "", "scenario file")
	f.Int("steps", 0, "number of steps to run")
	f.Float64("dt", 0, "simulated time per step")
	f.Int("cells", 0, "number of cells")
	f.Int("workers", 0, "number of goroutines that update cells")
	f.String("policy", "", "policy for unregistered cells, strict or auto-register")
	f.String("record", "", "record trajectories into this SQLite file")
	f.Bool("monitor", false, "serve the live monitor")
	f.Int("monitor-port", 0, "port of the monitor, random if unset")
	f.Bool("open", false, "open the monitor in a browser")
	f.Bool("log-ticks", false, "log every expression update")
	f.Bool("log-events", false, "log every engine event")
	f.Duration("report-every", 0, "log progress at this interval, off if 0")
	f.Bool("dump-config", false, "print the effective scenario and exit")
}

// loadRunConfig reads the scenario and applies the flags that were set.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()

	path, _ := f.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f.Changed("steps") {
		cfg.Run.Steps, _ = f.GetInt("steps")
	}

	if f.Changed("dt") {
		cfg.Run.Dt, _ = f.GetFloat64("dt")
	}

	if f.Changed("cells") {
		cfg.Cells.Count, _ = f.GetInt("cells")
	}

	if f.Changed("workers") {
		cfg.Run.Workers, _ = f.GetInt("workers")
	}

	if f.Changed("policy") {
		cfg.Turnover.Policy, _ = f.GetString("policy")
	}

	if f.Changed("record") {
		cfg.Record.Enabled = true
		cfg.Record.Backend = ""
		cfg.Record.Path, _ = f.GetString("record")
	}

	if f.Changed("monitor") {
		cfg.Monitor.Enabled, _ = f.GetBool("monitor")
	}

	if f.Changed("monitor-port") {
		cfg.Monitor.Port, _ = f.GetInt("monitor-port")
	}

	if f.Changed("open") {
		cfg.Monitor.Open, _ = f.GetBool("open")
		cfg.Monitor.Enabled = cfg.Monitor.Enabled || cfg.Monitor.Open
	}

	if f.Changed("log-ticks") {
		cfg.Run.LogTicks, _ = f.GetBool("log-ticks")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
