package monitoring

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type streamMsg struct {
	Now      float64          `json:"now"`
	Stats    *statsRsp        `json:"stats,omitempty"`
	Progress []progressBarRsp `json:"progress"`
}

func (m *Monitor) streamSnapshot() streamMsg {
	msg := streamMsg{
		Progress: m.progressSnapshot(),
	}

	if m.engine != nil {
		msg.Now = float64(m.engine.CurrentTime())
	}

	if m.stats != nil {
		stats := m.statsSnapshot()
		msg.Stats = &stats
	}

	return msg
}

// stream pushes the simulation time, the statistics and the progress bars
// over a websocket until the client goes away.
func (m *Monitor) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(m.streamInterval)
	defer ticker.Stop()

	for {
		if err := conn.WriteJSON(m.streamSnapshot()); err != nil {
			return
		}

		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
