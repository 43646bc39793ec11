package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/chemosim/turnover/ligand"
	"github.com/chemosim/turnover/sim"
	"github.com/chemosim/turnover/tracing"
	"github.com/chemosim/turnover/turnover"
)

type sampleComponent struct {
	name  string
	Count int
	Label string
}

func (c *sampleComponent) Name() string {
	return c.name
}

var _ = Describe("Monitor", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		model    *turnover.Model
		stats    *tracing.StatsTracer
		m        *Monitor
	)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		m.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		return w
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)

		receptor, err := ligand.NewReceptor("CXCR4", 1)
		Expect(err).NotTo(HaveOccurred())

		model, err = turnover.MakeBuilder().
			WithReceptor(receptor).
			WithBasalRate(0.1).
			WithInternalisationRate(0.5).
			Build("Turnover")
		Expect(err).NotTo(HaveOccurred())

		stats = tracing.NewStatsTracer()
		tracing.CollectTrace(model, stats)

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterModel(model)
		m.RegisterStats(stats)
		m.RegisterComponent(&sampleComponent{name: "Sample", Count: 3})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should pause and continue the engine", func() {
		engine.EXPECT().Pause()
		Expect(get("/api/pause").Code).To(Equal(http.StatusOK))

		engine.EXPECT().Continue()
		Expect(get("/api/continue").Code).To(Equal(http.StatusOK))
	})

	It("should report the time", func() {
		engine.EXPECT().CurrentTime().Return(sim.VTimeInSec(1.5))

		w := get("/api/now")

		Expect(w.Body.String()).To(MatchJSON(`{"now": 1.5}`))
	})

	It("should list components", func() {
		w := get("/api/list_components")

		Expect(w.Body.String()).To(MatchJSON(`["Turnover", "Sample"]`))
	})

	It("should serialize a component", func() {
		w := get("/api/component/Sample")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Count"))
	})

	It("should return 404 for unknown components", func() {
		Expect(get("/api/component/Nothing").Code).
			To(Equal(http.StatusNotFound))

		req := url.PathEscape(`{"comp_name":"Nothing","field_name":"Count"}`)
		Expect(get("/api/field/" + req).Code).To(Equal(http.StatusNotFound))
	})

	It("should reject malformed field requests", func() {
		Expect(get("/api/field/" + url.PathEscape("{")).Code).
			To(Equal(http.StatusBadRequest))
	})

	It("should list model parameters", func() {
		w := get("/api/params")

		rsp := []paramsRsp{}
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Model).To(Equal("Turnover"))
		Expect(rsp[0].Receptor).To(Equal("CXCR4"))
		Expect(rsp[0].Policy).To(Equal("strict"))
		Expect(rsp[0].Params.InternalisationRate).To(Equal(0.5))
		Expect(rsp[0].Schema).To(HaveLen(4))
		Expect(w.Body.String()).To(ContainSubstring(`"kind":"rate"`))
	})

	Context("with cells", func() {
		BeforeEach(func() {
			for id := 1; id <= 4; id++ {
				model.OnCellCreated(cellID(id))
			}
			_, _ = model.Tick(2, 1, 1)
			_, _ = model.Tick(3, 0.2, 1)
		})

		It("should list cells", func() {
			w := get("/api/cells/Turnover")

			Expect(w.Body.String()).To(MatchJSON(`{
				"total": 4,
				"cells": [
					{"id": 1, "expression": 1},
					{"id": 2, "expression": 0.5},
					{"id": 3, "expression": 0.9},
					{"id": 4, "expression": 1}
				]
			}`))
		})

		It("should sort and page cells", func() {
			w := get("/api/cells/Turnover?sort=expression&limit=2&offset=0")

			Expect(w.Body.String()).To(MatchJSON(`{
				"total": 4,
				"cells": [
					{"id": 2, "expression": 0.5},
					{"id": 3, "expression": 0.9}
				]
			}`))

			w = get("/api/cells/Turnover?offset=10")
			Expect(w.Body.String()).To(MatchJSON(`{"total": 4, "cells": []}`))
		})

		It("should not overflow on a huge limit", func() {
			w := get("/api/cells/Turnover?offset=1&limit=9223372036854775807")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{
				"total": 4,
				"cells": [
					{"id": 2, "expression": 0.5},
					{"id": 3, "expression": 0.9},
					{"id": 4, "expression": 1}
				]
			}`))
		})

		It("should reject bad paging", func() {
			Expect(get("/api/cells/Turnover?sort=size").Code).
				To(Equal(http.StatusBadRequest))
			Expect(get("/api/cells/Turnover?limit=-1").Code).
				To(Equal(http.StatusBadRequest))
			Expect(get("/api/cells/Other").Code).
				To(Equal(http.StatusNotFound))
		})

		It("should show one cell", func() {
			Expect(get("/api/cell/Turnover/2").Body.String()).
				To(MatchJSON(`{"id": 2, "expression": 0.5}`))
			Expect(get("/api/cell/Turnover/9").Code).
				To(Equal(http.StatusNotFound))
		})

		It("should report statistics", func() {
			rsp := statsRsp{}
			Expect(json.Unmarshal(get("/api/stats").Body.Bytes(), &rsp)).
				To(Succeed())

			Expect(rsp.Ticks).To(Equal(uint64(2)))
			Expect(rsp.Registered).To(Equal(uint64(4)))
			Expect(rsp.MeanBound).To(BeNumerically("~", 0.6, 1e-12))
			Expect(rsp.Cells).To(Equal(4))
			Expect(rsp.MeanExpression).To(BeNumerically("~", 0.85, 1e-12))
			Expect(*rsp.MinExpression).To(BeNumerically("~", 0.5, 1e-12))
			Expect(*rsp.MaxExpression).To(BeNumerically("~", 1, 1e-12))
		})

		It("should stream statistics over a websocket", func() {
			engine.EXPECT().CurrentTime().Return(sim.VTimeInSec(2)).AnyTimes()
			m.WithStreamInterval(10 * time.Millisecond)
			bar := m.CreateProgressBar("Host", 10)
			bar.Advance(3)

			srv := httptest.NewServer(m.Router())
			defer srv.Close()

			wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream"
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			Expect(err).NotTo(HaveOccurred())
			defer conn.Close()

			msg := streamMsg{}
			Expect(conn.ReadJSON(&msg)).To(Succeed())
			Expect(msg.Now).To(Equal(2.0))
			Expect(msg.Stats).NotTo(BeNil())
			Expect(msg.Stats.Ticks).To(Equal(uint64(2)))
			Expect(msg.Progress).To(HaveLen(1))
			Expect(msg.Progress[0].Done).To(Equal(uint64(3)))

			bar.Advance(1)
			Eventually(func() uint64 {
				next := streamMsg{}
				Expect(conn.ReadJSON(&next)).To(Succeed())
				return next.Progress[0].Done
			}).Should(Equal(uint64(4)))
		})
	})

	It("should return 404 without statistics", func() {
		m.RegisterStats(nil)

		Expect(get("/api/stats").Code).To(Equal(http.StatusNotFound))
	})

	It("should report resource usage", func() {
		w := get("/api/resource")

		rsp := resourceRsp{}
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("Steps", 10)
		hook := &StepProgressHook{Bar: bar, Pos: &sim.HookPos{Name: "Step"}}
		hook.Func(sim.HookCtx{Pos: hook.Pos, Item: uint64(4)})
		hook.Func(sim.HookCtx{Pos: hook.Pos})
		hook.Func(sim.HookCtx{Pos: &sim.HookPos{Name: "Other"}})

		rsp := []progressBarRsp{}
		Expect(json.Unmarshal(get("/api/progress").Body.Bytes(), &rsp)).
			To(Succeed())
		Expect(rsp).To(HaveLen(1))
		Expect(rsp[0].Name).To(Equal("Steps"))
		Expect(rsp[0].Done).To(Equal(uint64(5)))
		Expect(rsp[0].ETASec).To(BeNumerically(">=", 0))

		m.CompleteProgressBar(bar)
		Expect(get("/api/progress").Body.String()).To(MatchJSON(`[]`))
	})

	It("should serve over HTTP", func() {
		Expect(m.URL()).To(BeEmpty())
		Expect(m.OpenBrowser()).NotTo(Succeed())

		m.StartServer()
		engine.EXPECT().CurrentTime().Return(sim.VTimeInSec(2))

		rsp, err := http.Get(m.URL() + "/api/now")
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(MatchJSON(`{"now": 2}`))
	})
})

var _ = Describe("Monitor port", func() {
	It("should refuse privileged ports", func() {
		Expect(NewMonitor().WithPortNumber(80).portNumber).To(Equal(0))
		Expect(NewMonitor().WithPortNumber(8080).portNumber).To(Equal(8080))
	})
})
