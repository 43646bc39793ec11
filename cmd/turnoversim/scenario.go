package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"text/tabwriter"

	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/config"
	"github.com/chemosim/turnover/datarecording"
	"github.com/chemosim/turnover/host"
	"github.com/chemosim/turnover/ligand"
	"github.com/chemosim/turnover/monitoring"
	"github.com/chemosim/turnover/sim"
	"github.com/chemosim/turnover/tracing"
	"github.com/chemosim/turnover/turnover"
)

// scenario is a host, a turnover model and everything that observes them,
// wired from a config.
type scenario struct {
	cfg    *config.Config
	runID  string
	logger *log.Logger

	engine   *sim.SerialEngine
	host     *host.Simulation
	receptor *ligand.Receptor
	model    *turnover.Model
	stats    *tracing.StatsTracer

	recorder datarecording.DataRecorder
	runInfo  *datarecording.RunInfoRecorder
	tracer   *tracing.DBTracer

	monitor  *monitoring.Monitor
	progress *monitoring.ProgressBar
}

func newScenario(cfg *config.Config, logOut io.Writer) (*scenario, error) {
	s := &scenario{
		cfg:    cfg,
		runID:  sim.NewRunID(),
		logger: log.New(logOut, "", 0),
		engine: sim.NewSerialEngine(),
		stats:  tracing.NewStatsTracer(),
	}

	receptor, err := ligand.NewReceptor(cfg.Receptor.Name, cfg.Receptor.Kd)
	if err != nil {
		return nil, err
	}

	s.receptor = receptor

	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	tc := cfg.TurnoverConfig()
	if err := tc.Validate(); err != nil {
		return nil, err
	}

	resolved, err := ligand.NewRegistry(receptor).Resolve(tc.Receptor)
	if err != nil {
		return nil, err
	}

	s.model, err = turnover.MakeBuilder().
		WithReceptor(resolved).
		WithParams(tc.Params()).
		WithShards(cfg.Turnover.Shards).
		WithUnregisteredPolicy(policy).
		WithLogger(s.logger).
		Build("Turnover")
	if err != nil {
		return nil, err
	}

	s.host = host.MakeBuilder().
		WithEngine(s.engine).
		WithStepSize(cfg.Run.Dt).
		WithWorkers(cfg.Run.Workers).
		WithEnvironment(ligand.Field{
			Background: cfg.Ligand.Background,
			Gradient:   cfg.Ligand.Gradient,
		}).
		WithFlow(ligand.UniformFlow(cfg.Ligand.Shear)).
		Build("Host")

	lifecycleLogger := turnover.NewLifecycleLogger(s.logger)
	lifecycleLogger.LogTicks = cfg.Run.LogTicks
	s.model.AcceptHook(lifecycleLogger)
	tracing.CollectTrace(s.model, s.stats)

	return s, nil
}

// attachEventLogger prints every engine event.
func (s *scenario) attachEventLogger() {
	s.engine.AcceptHook(sim.NewEventLogger(s.logger))
}

// attachRecorder stores trajectories, cell events and run information.
func (s *scenario) attachRecorder() error {
	recorder, err := datarecording.NewWithConfig(s.cfg.Record.RecorderConfig)
	if err != nil {
		return err
	}

	s.recorder = recorder

	s.runInfo = datarecording.NewRunInfoRecorder(recorder)
	s.runInfo.Start(s.runID)
	s.runInfo.Set("Receptor", s.cfg.Receptor.Name)
	s.runInfo.Set("Cells", strconv.Itoa(s.cfg.Cells.Count))
	s.runInfo.Set("Steps", strconv.Itoa(s.cfg.Run.Steps))
	s.runInfo.Set("Step Size", strconv.FormatFloat(s.cfg.Run.Dt, 'g', -1, 64))
	s.runInfo.Set("Workers", strconv.Itoa(s.cfg.Run.Workers))

	s.tracer = tracing.NewDBTracer(s.runID, s.engine, recorder)
	tracing.CollectTrace(s.model, s.tracer)

	return nil
}

// attachMonitor serves the monitor and tracks the run with a progress bar.
func (s *scenario) attachMonitor() {
	s.monitor = monitoring.NewMonitor().WithPortNumber(s.cfg.Monitor.Port)
	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterComponent(s.host)
	s.monitor.RegisterModel(s.model)
	s.monitor.RegisterStats(s.stats)

	s.progress = s.monitor.CreateProgressBar(
		s.host.Name(), uint64(s.cfg.Run.Steps))
	s.host.AcceptHook(&monitoring.StepProgressHook{
		Bar: s.progress,
		Pos: host.HookPosStepDone,
	})

	s.monitor.StartServer()

	if s.cfg.Monitor.Open {
		if err := s.monitor.OpenBrowser(); err != nil {
			s.logger.Printf("open monitor: %v", err)
		}
	}
}

// populate registers the model and lines the cells up along the gradient.
func (s *scenario) populate() error {
	if err := s.host.RegisterComponent(s.model); err != nil {
		return err
	}

	for i := 0; i < s.cfg.Cells.Count; i++ {
		s.host.AddCell(cell.Position{X: float64(i) * s.cfg.Cells.Spacing})
	}

	return nil
}

func (s *scenario) run() error {
	return s.host.RunSteps(s.cfg.Run.Steps)
}

// close flushes the recorder and retires the progress bar.
func (s *scenario) close() {
	if s.progress != nil {
		s.monitor.CompleteProgressBar(s.progress)
	}

	if s.recorder == nil {
		return
	}

	s.tracer.Terminate()
	s.runInfo.Set("Steps Done", strconv.FormatUint(s.host.StepsDone(), 10))
	s.runInfo.End()

	if err := s.recorder.Close(); err != nil {
		s.logger.Printf("close recorder: %v", err)
	}
}

// printSummary writes the final state of every cell and the run statistics.
func (s *scenario) printSummary(w io.Writer) error {
	params := s.model.Params()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CELL\tX\tBOUND\tEXPRESSION\tSTEADY\t")

	for _, c := range s.host.Cells() {
		bound := s.receptor.BoundFraction(
			c, s.host.Environment(), s.host.Flow())
		expression, _ := s.model.ExpressionOf(c.ID())

		steady := "-"
		if e, ok := params.SteadyState(bound); ok {
			steady = strconv.FormatFloat(e, 'f', 4, 64)
		}

		fmt.Fprintf(tw, "%s\t%.2f\t%.4f\t%.4f\t%s\t\n",
			c.ID(), c.Position().X, bound, expression, steady)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	st := s.stats.Stats()
	fmt.Fprintf(w, "\nrun %s: %d steps, %d ticks, %d cells\n",
		s.runID, s.host.StepsDone(), st.Ticks, s.model.NumCells())

	if st.Cells > 0 {
		fmt.Fprintf(w, "expression mean %.4f, min %.4f, max %.4f\n",
			st.MeanExpression, st.MinExpression, st.MaxExpression)
	}

	return nil
}
