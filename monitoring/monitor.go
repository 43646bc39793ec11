// Package monitoring turns a running simulation into a web server that can
// pause it, continue it and report receptor expression while it runs.
package monitoring

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"

	"github.com/chemosim/turnover/sim"
	"github.com/chemosim/turnover/tracing"
	"github.com/chemosim/turnover/turnover"
)

// Monitor serves the state of a simulation over HTTP and lets a user pause
// and continue it.
type Monitor struct {
	engine         sim.Engine
	components     []sim.Named
	models         []*turnover.Model
	stats          *tracing.StatsTracer
	portNumber     int
	streamInterval time.Duration

	barsLock sync.Mutex
	bars     []*ProgressBar

	listener net.Listener
}

// NewMonitor creates a Monitor that listens on a random port.
func NewMonitor() *Monitor {
	return &Monitor{
		streamInterval: time.Second,
	}
}

// WithPortNumber sets the port to listen on. Ports below 1000 are refused
// and replaced by a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		log.Printf("monitor: port %d is reserved, using a random port",
			portNumber)

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithStreamInterval sets how often /api/stream pushes an update.
func (m *Monitor) WithStreamInterval(d time.Duration) *Monitor {
	if d > 0 {
		m.streamInterval = d
	}

	return m
}

// RegisterEngine sets the engine to pause, continue and read the time from.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterComponent registers an object whose fields can be inspected.
func (m *Monitor) RegisterComponent(c sim.Named) {
	m.components = append(m.components, c)
}

// RegisterModel registers a turnover model. The model can also be inspected
// as a component.
func (m *Monitor) RegisterModel(model *turnover.Model) {
	m.models = append(m.models, model)
	m.RegisterComponent(model)
}

// RegisterStats sets the tracer that provides running statistics.
func (m *Monitor) RegisterStats(t *tracing.StatsTracer) {
	m.stats = t
}

// CreateProgressBar shows a bar of total steps until it is completed.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		id:    sim.NewRunID(),
		name:  name,
		start: time.Now(),
		total: total,
	}

	m.barsLock.Lock()
	m.bars = append(m.bars, bar)
	m.barsLock.Unlock()

	return bar
}

// CompleteProgressBar stops showing the bar.
func (m *Monitor) CompleteProgressBar(bar *ProgressBar) {
	m.barsLock.Lock()
	defer m.barsLock.Unlock()

	for i, b := range m.bars {
		if b == bar {
			m.bars = append(m.bars[:i], m.bars[i+1:]...)
			return
		}
	}
}

func (m *Monitor) progressSnapshot() []progressBarRsp {
	m.barsLock.Lock()
	defer m.barsLock.Unlock()

	now := time.Now()

	bars := make([]progressBarRsp, 0, len(m.bars))
	for _, b := range m.bars {
		bars = append(bars, b.snapshot(now))
	}

	return bars
}

// Router returns the handler that serves the monitoring API.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/pause", m.pauseEngine)
	api.HandleFunc("/continue", m.continueEngine)
	api.Handle("/now", apiFunc(m.now))

	api.Handle("/list_components", apiFunc(m.listComponents))
	api.HandleFunc("/component/{name}", m.componentDetails)
	api.HandleFunc("/field/{json}", m.fieldValue)

	api.Handle("/params", apiFunc(m.listParams))
	api.Handle("/cells/{model}", apiFunc(m.listCells))
	api.Handle("/cell/{model}/{id:[0-9]+}", apiFunc(m.cellDetails))
	api.Handle("/stats", apiFunc(m.listStats))
	api.Handle("/progress", apiFunc(m.listProgressBars))
	api.HandleFunc("/stream", m.stream)

	api.Handle("/resource", apiFunc(m.listResources))
	api.Handle("/profile", apiFunc(m.collectProfile))

	return r
}

// StartServer listens on the configured port and serves the API in the
// background.
func (m *Monitor) StartServer() {
	addr := ":0"
	if m.portNumber > 1000 {
		addr = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Panic(err)
	}

	m.listener = listener

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.URL())

	router := m.Router()
	go func() {
		if err := http.Serve(listener, router); err != nil {
			log.Panic(err)
		}
	}()
}

// URL returns the address of the running server.
func (m *Monitor) URL() string {
	if m.listener == nil {
		return ""
	}

	return fmt.Sprintf("http://localhost:%d",
		m.listener.Addr().(*net.TCPAddr).Port)
}

// OpenBrowser opens the parameter page of the running server in the default
// browser.
func (m *Monitor) OpenBrowser() error {
	if m.listener == nil {
		return fmt.Errorf("monitoring server is not running")
	}

	return browser.OpenURL(m.URL() + "/api/params")
}
