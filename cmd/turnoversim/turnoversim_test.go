package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/chemosim/turnover/config"
	"github.com/chemosim/turnover/datarecording"
	"github.com/chemosim/turnover/tracing"
	"github.com/chemosim/turnover/turnover"
)

func smallScenario() *config.Config {
	cfg := config.Default()
	cfg.Ligand.Background = 1
	cfg.Ligand.Gradient = 0
	cfg.Cells.Count = 2
	cfg.Run.Steps = 1
	cfg.Run.Dt = 0.1

	return cfg
}

var _ = Describe("Run flags", func() {
	var cmd *cobra.Command

	BeforeEach(func() {
		cmd = &cobra.Command{Use: "run"}
		defineRunFlags(cmd)
	})

	It("should override the scenario file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "scenario.yaml")
		Expect(os.WriteFile(path, []byte("run:\n  steps: 40\n  dt: 0.2\n"),
			0o600)).To(Succeed())

		Expect(cmd.Flags().Parse([]string{
			"--config", path,
			"--steps", "3",
			"--cells", "7",
			"--policy", "auto-register",
			"--record", "trace",
		})).To(Succeed())

		cfg, err := loadRunConfig(cmd)
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Run.Steps).To(Equal(3))
		Expect(cfg.Run.Dt).To(Equal(0.2))
		Expect(cfg.Cells.Count).To(Equal(7))
		Expect(cfg.Turnover.Policy).To(Equal("auto-register"))
		Expect(cfg.Record.Enabled).To(BeTrue())
		Expect(cfg.Record.Path).To(Equal("trace"))
		Expect(cfg.Monitor.Enabled).To(BeFalse())
	})

	It("should enable the monitor when asked to open it", func() {
		Expect(cmd.Flags().Parse([]string{"--open"})).To(Succeed())

		cfg, err := loadRunConfig(cmd)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Monitor.Enabled).To(BeTrue())
		Expect(cfg.Monitor.Open).To(BeTrue())
	})

	It("should reject an invalid scenario", func() {
		Expect(cmd.Flags().Parse([]string{"--dt", "-1"})).To(Succeed())

		_, err := loadRunConfig(cmd)
		Expect(err).To(MatchError(ContainSubstring("run.dt")))
	})
})

var _ = Describe("Scenario", func() {
	It("should run and print a summary", func() {
		s, err := newScenario(smallScenario(), GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		defer s.close()

		Expect(s.populate()).To(Succeed())
		Expect(s.run()).To(Succeed())

		e, ok := s.model.ExpressionOf(1)
		Expect(ok).To(BeTrue())
		Expect(e).To(BeNumerically("~", 0.975, 1e-12))

		var out bytes.Buffer
		Expect(s.printSummary(&out)).To(Succeed())
		Expect(out.String()).To(ContainSubstring("0.9750"))
		Expect(out.String()).To(ContainSubstring("0.2857"))
		Expect(out.String()).To(ContainSubstring("1 steps, 2 ticks, 2 cells"))
	})

	It("should reject an unknown policy", func() {
		cfg := smallScenario()
		cfg.Turnover.Policy = "lenient"

		_, err := newScenario(cfg, GinkgoWriter)
		Expect(err).To(HaveOccurred())
	})

	It("should record a run that report can read", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")

		cfg := smallScenario()
		cfg.Run.Steps = 3
		cfg.Record.Enabled = true
		cfg.Record.Path = path

		s, err := newScenario(cfg, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.attachRecorder()).To(Succeed())
		Expect(s.populate()).To(Succeed())
		Expect(s.run()).To(Succeed())
		s.close()

		reader, err := datarecording.NewReader(path)
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		reader.MapTable(datarecording.RunInfoTable,
			datarecording.RunInfoEntry{})
		tracing.MapTables(reader)

		var out bytes.Buffer
		Expect(printRunInfo(context.Background(), &out, reader)).To(Succeed())
		Expect(out.String()).To(ContainSubstring(s.runID))
		Expect(out.String()).To(ContainSubstring("Steps Done"))

		out.Reset()
		Expect(printTrajectory(context.Background(), &out, reader, 2, 2)).
			To(Succeed())
		Expect(out.String()).To(ContainSubstring("cell 2: 2 of 3 updates"))
		Expect(out.String()).To(ContainSubstring("0.9750"))
	})
})

var _ = Describe("Params command", func() {
	It("should print the schema as JSON", func() {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"params", "--json"})
		defer rootCmd.SetArgs(nil)

		Expect(rootCmd.Execute()).To(Succeed())

		var schema []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		}
		Expect(json.Unmarshal(out.Bytes(), &schema)).To(Succeed())
		Expect(schema).To(HaveLen(len(turnover.ParamSchema())))
		Expect(schema[0].Name).To(Equal(turnover.ParamReceptor))
		Expect(schema[0].Kind).To(Equal("instance"))
	})
})

var _ = Describe("Progress reporter", func() {
	It("should log the step count", func() {
		var logs bytes.Buffer

		s, err := newScenario(smallScenario(), &logs)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.populate()).To(Succeed())
		Expect(s.run()).To(Succeed())

		r, err := newProgressReporter(s, time.Second)
		Expect(err).NotTo(HaveOccurred())
		r.start()
		r.report()
		r.stop()

		Expect(logs.String()).To(ContainSubstring("Host: step 1 of 1, 2 ticks"))
	})
})
