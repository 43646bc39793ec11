package turnover

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chemosim/turnover/cell"
)

// Config is the part of a scenario file that belongs to the model: the
// receptor reference and the rates.
type Config struct {
	Receptor            string   `json:"receptor" yaml:"receptor"`
	BasalRate           float64  `json:"basalRate" yaml:"basalRate"`
	InternalisationRate float64  `json:"internalisationRate" yaml:"internalisationRate"`
	InitialExpression   *float64 `json:"initialExpression,omitempty" yaml:"initialExpression,omitempty"`
}

// ReceptorResolver finds a receptor by its name.
type ReceptorResolver func(name string) (cell.Receptor, error)

// Params converts the rates of the config into model parameters.
func (c Config) Params() Params {
	p := DefaultParams()
	p.BasalRate = c.BasalRate
	p.InternalisationRate = c.InternalisationRate

	if c.InitialExpression != nil {
		p.InitialExpression = *c.InitialExpression
	}

	return p
}

// Validate checks the config against the parameter schema.
func (c Config) Validate() error {
	verr := &ValidationError{}

	if c.Receptor == "" {
		verr.Add(fmt.Errorf("%s: %w", ParamReceptor, ErrNilReceptor))
	}

	if err := c.Params().Validate(); err != nil {
		if perr, ok := err.(*ValidationError); ok {
			verr.Issues = append(verr.Issues, perr.Issues...)
		} else {
			verr.Add(err)
		}
	}

	if verr.HasIssues() {
		return verr
	}

	return nil
}

// Config returns the scenario section that describes the model.
func (m *Model) Config() Config {
	p := m.Params()
	c := Config{
		BasalRate:           p.BasalRate,
		InternalisationRate: p.InternalisationRate,
	}

	if p.InitialExpression != DefaultInitialExpression {
		initial := p.InitialExpression
		c.InitialExpression = &initial
	}

	if r := m.Receptor(); r != nil {
		c.Receptor = r.Name()
	}

	return c
}

// ApplyConfig validates the config, resolves its receptor and configures the
// model. Nothing changes on failure.
func (m *Model) ApplyConfig(c Config, resolve ReceptorResolver) error {
	if err := c.Validate(); err != nil {
		return err
	}

	receptor, err := resolve(c.Receptor)
	if err != nil {
		return fmt.Errorf("resolve receptor %q: %w", c.Receptor, err)
	}

	return m.configure(receptor, c.Params())
}

// EncodeConfig writes the config as JSON.
func EncodeConfig(w io.Writer, c Config) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	return encoder.Encode(c)
}

// DecodeConfig reads a JSON config and validates it.
func DecodeConfig(r io.Reader) (Config, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	c := Config{}
	if err := decoder.Decode(&c); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}
