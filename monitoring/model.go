package monitoring

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/chemosim/turnover/cell"
	"github.com/chemosim/turnover/turnover"
)

type paramsRsp struct {
	Model    string               `json:"model"`
	Receptor string               `json:"receptor"`
	Policy   string               `json:"policy"`
	Running  bool                 `json:"running"`
	NumCells int                  `json:"num_cells"`
	Params   turnover.Params      `json:"params"`
	Schema   []turnover.ParamSpec `json:"schema"`
	Scenario turnover.Config      `json:"scenario"`
}

func (m *Monitor) listParams(*http.Request) (any, error) {
	rsp := make([]paramsRsp, 0, len(m.models))

	for _, model := range m.models {
		p := paramsRsp{
			Model:    model.Name(),
			Policy:   model.Policy().String(),
			Running:  model.Running(),
			NumCells: model.NumCells(),
			Params:   model.Params(),
			Schema:   turnover.ParamSchema(),
			Scenario: model.Config(),
		}

		if r := model.Receptor(); r != nil {
			p.Receptor = r.Name()
		}

		rsp = append(rsp, p)
	}

	return rsp, nil
}

func (m *Monitor) findModel(name string) (*turnover.Model, error) {
	for _, model := range m.models {
		if model.Name() == name {
			return model, nil
		}
	}

	return nil, notFound("model " + name)
}

type cellRsp struct {
	ID         cell.CellID `json:"id"`
	Expression float64     `json:"expression"`
}

type cellsRsp struct {
	Total int       `json:"total"`
	Cells []cellRsp `json:"cells"`
}

// cellPage selects a window of the cells of a model. Cells are listed by ID
// unless sort=expression.
type cellPage struct {
	byExpression bool
	limit        int
	offset       int
}

func parseCellPage(r *http.Request) (cellPage, error) {
	page := cellPage{}

	switch s := r.URL.Query().Get("sort"); s {
	case "", "id":
	case "expression":
		page.byExpression = true
	default:
		return page, badRequest(
			"invalid sort method %q, use `id` or `expression`", s)
	}

	var err error

	if page.limit, err = queryInt(r, "limit"); err != nil {
		return page, err
	}

	if page.offset, err = queryInt(r, "offset"); err != nil {
		return page, err
	}

	return page, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, badRequest("invalid %s %q", key, s)
	}

	return n, nil
}

func (p cellPage) apply(cells []cellRsp) []cellRsp {
	if p.byExpression {
		sort.SliceStable(cells, func(i, j int) bool {
			return cells[i].Expression < cells[j].Expression
		})
	}

	lo := min(p.offset, len(cells))
	hi := len(cells)

	if p.limit > 0 && p.limit < hi-lo {
		hi = lo + p.limit
	}

	return cells[lo:hi]
}

func (m *Monitor) listCells(r *http.Request) (any, error) {
	model, err := m.findModel(mux.Vars(r)["model"])
	if err != nil {
		return nil, err
	}

	page, err := parseCellPage(r)
	if err != nil {
		return nil, err
	}

	cells := make([]cellRsp, 0, model.NumCells())
	for _, id := range model.Cells() {
		if e, ok := model.ExpressionOf(id); ok {
			cells = append(cells, cellRsp{ID: id, Expression: e})
		}
	}

	return cellsRsp{Total: len(cells), Cells: page.apply(cells)}, nil
}

func (m *Monitor) cellDetails(r *http.Request) (any, error) {
	vars := mux.Vars(r)

	model, err := m.findModel(vars["model"])
	if err != nil {
		return nil, err
	}

	n, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return nil, badRequest("invalid cell id %q", vars["id"])
	}

	id := cell.CellID(n)

	e, ok := model.ExpressionOf(id)
	if !ok {
		return nil, notFound("cell " + id.String())
	}

	return cellRsp{ID: id, Expression: e}, nil
}

type statsRsp struct {
	Ticks          uint64   `json:"ticks"`
	AutoRegistered uint64   `json:"auto_registered"`
	Registered     uint64   `json:"registered"`
	Removed        uint64   `json:"removed"`
	Cells          int      `json:"cells"`
	MeanBound      float64  `json:"mean_bound"`
	MeanExpression float64  `json:"mean_expression"`
	MinExpression  *float64 `json:"min_expression,omitempty"`
	MaxExpression  *float64 `json:"max_expression,omitempty"`
}

func (m *Monitor) listStats(*http.Request) (any, error) {
	if m.stats == nil {
		return nil, notFound("statistics")
	}

	return m.statsSnapshot(), nil
}

func (m *Monitor) statsSnapshot() statsRsp {
	s := m.stats.Stats()
	rsp := statsRsp{
		Ticks:          s.Ticks,
		AutoRegistered: s.AutoRegistered,
		Registered:     s.Registered,
		Removed:        s.Removed,
		Cells:          s.Cells,
		MeanBound:      s.MeanBound,
		MeanExpression: s.MeanExpression,
	}

	if s.Cells > 0 {
		rsp.MinExpression = &s.MinExpression
		rsp.MaxExpression = &s.MaxExpression
	}

	return rsp
}

func (m *Monitor) listProgressBars(*http.Request) (any, error) {
	return m.progressSnapshot(), nil
}
