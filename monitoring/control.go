package monitoring

import (
	"net/http"
)

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	w.WriteHeader(http.StatusOK)
}

type nowRsp struct {
	Now float64 `json:"now"`
}

func (m *Monitor) now(*http.Request) (any, error) {
	return nowRsp{Now: float64(m.engine.CurrentTime())}, nil
}
