package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"grafanagraphs/internal/store"
)

// Section keys used for graph values.
const (
	KeyName      = "name"
	KeyDashboard = "dashboard"
	KeyPanelID   = "panelId"
)

// Graph is one configured dashboard panel for a service.
type Graph struct {
	Name      string `json:"name" yaml:"name"`
	Dashboard string `json:"dashboard" yaml:"dashboard"`
	PanelID   string `json:"panelId" yaml:"panelId"`
}

// Section returns the stored values of the graph. The name is the section
// key and is not repeated in the values.
func (g Graph) Section() store.Section {
	return store.Section{
		KeyDashboard: g.Dashboard,
		KeyPanelID:   g.PanelID,
	}
}

// PanelIDString normalizes a panel ID given as a string or an integer, as
// decoded from JSON by either encoding/json or a tool-call argument map. A nil
// value yields "".
func PanelIDString(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return "", nil
	case string:
		return id, nil
	case json.Number:
		if _, err := strconv.ParseInt(id.String(), 10, 64); err != nil {
			return "", fmt.Errorf("panelId must be a string or an integer, got %s", id)
		}
		return id.String(), nil
	case float64:
		if math.IsInf(id, 0) || math.IsNaN(id) || id != math.Trunc(id) {
			return "", fmt.Errorf("panelId must be a string or an integer, got %v", id)
		}
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	default:
		return "", fmt.Errorf("panelId must be a string or an integer, got %T", v)
	}
}

// FromSection builds a Graph from a section name and its values.
func FromSection(name string, values store.Section) Graph {
	return Graph{
		Name:      name,
		Dashboard: values[KeyDashboard],
		PanelID:   values[KeyPanelID],
	}
}

// Binding is the working copy produced by Registry.Bind.
type Binding struct {
	// BoundName is the name the section had when it was loaded.
	BoundName string
	// Values holds the loaded section plus a "name" entry equal to BoundName.
	Values store.Section
}

// Graph returns the bound values as a Graph.
func (b Binding) Graph() Graph {
	return FromSection(b.Values[KeyName], b.Values)
}

// Validate checks that every required field is present.
func Validate(name string, values store.Section) error {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, KeyName)
	}
	if strings.TrimSpace(values[KeyDashboard]) == "" {
		missing = append(missing, KeyDashboard)
	}
	if strings.TrimSpace(values[KeyPanelID]) == "" {
		missing = append(missing, KeyPanelID)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
