package monitoring

import (
	"bytes"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/google/pprof/profile"
	"github.com/shirou/gopsutil/process"
)

// profileDuration is how long /api/profile samples the CPU.
const profileDuration = time.Second

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(*http.Request) (any, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	cpu, err := proc.CPUPercent()
	if err != nil {
		return nil, err
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return nil, err
	}

	return resourceRsp{CPUPercent: cpu, MemorySize: mem.RSS}, nil
}

func (m *Monitor) collectProfile(*http.Request) (any, error) {
	var buf bytes.Buffer

	if err := pprof.StartCPUProfile(&buf); err != nil {
		return nil, &apiError{code: http.StatusConflict, msg: err.Error()}
	}

	time.Sleep(profileDuration)
	pprof.StopCPUProfile()

	return profile.ParseData(buf.Bytes())
}
