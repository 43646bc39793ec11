package monitoring

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/syifan/goseth"

	"github.com/chemosim/turnover/sim"
)

func (m *Monitor) listComponents(*http.Request) (any, error) {
	names := make([]string, len(m.components))
	for i, c := range m.components {
		names[i] = c.Name()
	}

	return names, nil
}

func (m *Monitor) findComponent(name string) (sim.Named, error) {
	for _, c := range m.components {
		if c.Name() == name {
			return c, nil
		}
	}

	return nil, notFound("component " + name)
}

// componentDetails dumps the first level of fields of a component.
func (m *Monitor) componentDetails(w http.ResponseWriter, r *http.Request) {
	c, err := m.findComponent(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	m.serialize(w, c, nil)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

// fieldValue dumps one field of a component, addressed by a dotted path.
func (m *Monitor) fieldValue(w http.ResponseWriter, r *http.Request) {
	req := fieldReq{}

	err := json.Unmarshal([]byte(mux.Vars(r)["json"]), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := m.findComponent(req.CompName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	m.serialize(w, c, strings.Split(req.FieldName, "."))
}

func (m *Monitor) serialize(w http.ResponseWriter, root any, path []string) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(root)
	serializer.SetMaxDepth(1)

	if path != nil {
		if err := serializer.SetEntryPoint(path); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := serializer.Serialize(w); err != nil {
		log.Printf("monitor: serialize %v: %v", path, err)
	}
}
