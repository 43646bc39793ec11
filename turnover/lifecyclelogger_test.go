package turnover

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("LifecycleLogger", func() {
	var (
		mockCtrl *gomock.Controller
		buf      *bytes.Buffer
		logger   *LifecycleLogger
		model    *Model
	)

	BeforeEach(func() {
		var err error

		mockCtrl = gomock.NewController(GinkgoT())
		receptor := NewMockReceptor(mockCtrl)

		buf = new(bytes.Buffer)
		logger = NewLifecycleLogger(log.New(buf, "", 0))

		model, err = MakeBuilder().
			WithReceptor(receptor).
			WithBasalRate(0.1).
			WithInternalisationRate(0.5).
			Build("Turnover")
		Expect(err).NotTo(HaveOccurred())
		model.AcceptHook(logger)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should log registrations and removals", func() {
		model.OnCellCreated(4)
		model.OnCellRemoved(4)

		Expect(buf.String()).To(Equal(
			"Turnover: cell 4 registered at 1.0000\n" +
				"Turnover: cell 4 removed\n"))
	})

	It("should skip ticks unless asked", func() {
		model.OnCellCreated(4)
		buf.Reset()

		_, _ = model.Tick(4, 0.2, 1)
		Expect(buf.String()).To(BeEmpty())

		logger.LogTicks = true
		_, _ = model.Tick(4, 0.2, 1)
		Expect(buf.String()).To(ContainSubstring(
			"Turnover: cell 4 bound 0.2000, expression 0.9000 -> "))
	})
})
