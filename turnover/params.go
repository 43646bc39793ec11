package turnover

import (
	"math"
)

// ParamKind tells a host editor how to present a parameter.
type ParamKind int

// Parameter kinds.
const (
	KindRate ParamKind = iota
	KindInstance
)

func (k ParamKind) String() string {
	switch k {
	case KindRate:
		return "rate"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// MarshalText writes the kind by name.
func (k ParamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParamSpec describes one editable parameter of the model. Hosts build their
// editors and serializers from the schema instead of inspecting Params.
type ParamSpec struct {
	Name    string    `json:"name"`
	Kind    ParamKind `json:"kind"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Default float64   `json:"default"`
	Desc    string    `json:"desc"`
}

// Parameter names as they appear in scenario files.
const (
	ParamReceptor            = "receptor"
	ParamBasalRate           = "basalRate"
	ParamInternalisationRate = "internalisationRate"
	ParamInitialExpression   = "initialExpression"
)

var paramSchema = []ParamSpec{
	{
		Name: ParamReceptor,
		Kind: KindInstance,
		Desc: "receptor species whose surface expression is modulated",
	},
	{
		Name:    ParamBasalRate,
		Kind:    KindRate,
		Min:     0,
		Max:     1,
		Default: 0,
		Desc:    "rate at which expression recovers towards 1 without signal",
	},
	{
		Name:    ParamInternalisationRate,
		Kind:    KindRate,
		Min:     0,
		Max:     1,
		Default: 0,
		Desc:    "rate at which bound receptor is removed from the surface",
	},
	{
		Name:    ParamInitialExpression,
		Kind:    KindRate,
		Min:     0,
		Max:     1,
		Default: DefaultInitialExpression,
		Desc:    "expression multiplier given to a newly registered cell",
	},
}

// DefaultInitialExpression is full basal expression.
const DefaultInitialExpression = 1.0

// ParamSchema returns the declarative schema of the model parameters.
func ParamSchema() []ParamSpec {
	schema := make([]ParamSpec, len(paramSchema))
	copy(schema, paramSchema)

	return schema
}

// LookupParam returns the ParamSpec of the named parameter.
func LookupParam(name string) (ParamSpec, bool) {
	for _, p := range paramSchema {
		if p.Name == name {
			return p, true
		}
	}

	return ParamSpec{}, false
}

// Check returns a *ConfigError if v falls outside [Min, Max]. Instance
// parameters carry no numeric bounds and always pass.
func (s ParamSpec) Check(v float64) error {
	if s.Kind == KindInstance {
		return nil
	}

	if math.IsNaN(v) || v < s.Min || v > s.Max {
		return &ConfigError{Param: s.Name, Value: v, Min: s.Min, Max: s.Max}
	}

	return nil
}

// Params are the kinetic constants of the model. They are fixed once the
// model starts ticking.
type Params struct {
	BasalRate           float64 `json:"basalRate"`
	InternalisationRate float64 `json:"internalisationRate"`
	InitialExpression   float64 `json:"initialExpression"`
}

// DefaultParams returns parameters with no turnover and full initial
// expression.
func DefaultParams() Params {
	return Params{InitialExpression: DefaultInitialExpression}
}

// Validate checks every parameter against the schema and reports all
// violations together.
func (p Params) Validate() error {
	verr := &ValidationError{}

	checks := []struct {
		name  string
		value float64
	}{
		{ParamBasalRate, p.BasalRate},
		{ParamInternalisationRate, p.InternalisationRate},
		{ParamInitialExpression, p.InitialExpression},
	}

	for _, c := range checks {
		spec, _ := LookupParam(c.name)
		if err := spec.Check(c.value); err != nil {
			verr.Add(err)
		}
	}

	if verr.HasIssues() {
		return verr
	}

	return nil
}

// SteadyState returns the expression that the model settles at when the
// bound fraction is held constant:
//
//	e* = basal / (basal + internalisation*bound)
//
// ok is false when both terms vanish, in which case every expression is
// stationary.
func (p Params) SteadyState(boundFraction float64) (e float64, ok bool) {
	denominator := p.BasalRate + p.InternalisationRate*boundFraction
	if denominator == 0 {
		return 0, false
	}

	return p.BasalRate / denominator, true
}

// Step advances one expression value by dt under a constant bound fraction
// and clamps the result to [0, 1].
//
//	e' = e + dt*(basal*(1-e) - internalisation*bound*e)
func (p Params) Step(expression, boundFraction, dt float64) float64 {
	production := p.BasalRate * (1 - expression)
	removal := p.InternalisationRate * boundFraction * expression

	return clamp01(expression + dt*(production-removal))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
