package turnover

import (
	"encoding/json"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Params", func() {
	It("should describe every parameter in the schema", func() {
		names := []string{}
		for _, p := range ParamSchema() {
			names = append(names, p.Name)
		}

		Expect(names).To(Equal([]string{
			ParamReceptor,
			ParamBasalRate,
			ParamInternalisationRate,
			ParamInitialExpression,
		}))

		spec, found := LookupParam(ParamBasalRate)
		Expect(found).To(BeTrue())
		Expect(spec.Kind).To(Equal(KindRate))
		Expect(spec.Min).To(Equal(0.0))
		Expect(spec.Max).To(Equal(1.0))

		receptor, _ := LookupParam(ParamReceptor)
		Expect(receptor.Kind.String()).To(Equal("instance"))
	})

	It("should not let callers modify the schema", func() {
		schema := ParamSchema()
		schema[1].Max = 100

		spec, _ := LookupParam(ParamBasalRate)
		Expect(spec.Max).To(Equal(1.0))
	})

	DescribeTable("bounds checking",
		func(v float64, valid bool) {
			spec, _ := LookupParam(ParamInternalisationRate)
			err := spec.Check(v)
			if valid {
				Expect(err).NotTo(HaveOccurred())
				return
			}

			Expect(errors.Is(err, ErrOutOfRange)).To(BeTrue())

			var cerr *ConfigError
			Expect(errors.As(err, &cerr)).To(BeTrue())
			Expect(cerr.Param).To(Equal(ParamInternalisationRate))
		},
		Entry("lower bound", 0.0, true),
		Entry("upper bound", 1.0, true),
		Entry("inside", 0.42, true),
		Entry("negative", -0.01, false),
		Entry("above one", 1.01, false),
		Entry("NaN", math.NaN(), false),
	)

	It("should report all invalid parameters at once", func() {
		p := Params{BasalRate: -1, InternalisationRate: 2, InitialExpression: 1}

		err := p.Validate()

		var verr *ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Issues).To(HaveLen(2))
		Expect(errors.Is(err, ErrOutOfRange)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(ParamBasalRate))
		Expect(err.Error()).To(ContainSubstring(ParamInternalisationRate))
	})

	It("should compute the steady state", func() {
		p := Params{BasalRate: 0.1, InternalisationRate: 0.5}

		e, ok := p.SteadyState(0.2)
		Expect(ok).To(BeTrue())
		Expect(e).To(BeNumerically("~", 0.5, 1e-12))

		_, ok = Params{}.SteadyState(0.5)
		Expect(ok).To(BeFalse())
	})

	It("should clamp a step that overshoots", func() {
		p := Params{BasalRate: 1, InternalisationRate: 1}

		Expect(p.Step(1, 1, 10)).To(Equal(0.0))
		Expect(p.Step(0, 0, 10)).To(Equal(1.0))
	})
})

var _ = Describe("Param schema JSON", func() {
	It("should name the kinds", func() {
		spec, _ := LookupParam(ParamReceptor)

		data, err := json.Marshal(spec)

		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(MatchJSON(`{
			"name": "receptor",
			"kind": "instance",
			"min": 0,
			"max": 0,
			"default": 0,
			"desc": "receptor species whose surface expression is modulated"
		}`))
	})
})
