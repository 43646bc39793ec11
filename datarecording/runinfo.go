package datarecording

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunInfoTable is the table that stores run properties.
const RunInfoTable = "run_info"

// RunInfoEntry is a row of the run info table.
type RunInfoEntry struct {
	Property string
	Value    string
}

// RunInfoRecorder records how a simulation run was started and when it
// ended.
type RunInfoRecorder struct {
	recorder DataRecorder
	entries  []RunInfoEntry
}

// NewRunInfoRecorder creates the run info table in the recorder.
func NewRunInfoRecorder(recorder DataRecorder) *RunInfoRecorder {
	recorder.CreateTable(RunInfoTable, RunInfoEntry{})

	return &RunInfoRecorder{recorder: recorder}
}

// Start notes the run ID, the start time, the command line and the working
// directory.
func (e *RunInfoRecorder) Start(runID string) {
	e.entries = append(e.entries,
		RunInfoEntry{"Run ID", runID},
		RunInfoEntry{"Start Time", timestamp(time.Now())},
		RunInfoEntry{"Command", strings.Join(os.Args, " ")},
	)

	if ex, err := os.Executable(); err == nil {
		e.entries = append(e.entries,
			RunInfoEntry{"Working Directory", filepath.Dir(ex)})
	}
}

// Set notes an extra property of the run.
func (e *RunInfoRecorder) Set(property, value string) {
	e.entries = append(e.entries, RunInfoEntry{property, value})
}

// End writes all the properties and the end time, then flushes.
func (e *RunInfoRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(RunInfoTable, entry)
	}

	e.recorder.InsertData(RunInfoTable,
		RunInfoEntry{"End Time", timestamp(time.Now())})

	e.entries = nil

	e.recorder.Flush()
}

func timestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000000000")
}
