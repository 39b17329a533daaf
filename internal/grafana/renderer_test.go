package grafana

import (
	"testing"

	"grafanagraphs/internal/config"
	"grafanagraphs/internal/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultGrafana(baseURL string) config.GrafanaConfig {
	cfg := config.GetDefaultConfig().Grafana
	cfg.BaseURL = baseURL
	return cfg
}

func TestRenderer_URL(t *testing.T) {
	g := graph.Graph{Name: "svc1", Dashboard: "Hosts", PanelID: "1"}

	tests := []struct {
		name    string
		baseURL string
		ctx     Context
		want    string
	}{
		{
			name:    "defaults",
			baseURL: "https://grafana.example.com",
			ctx:     Context{Host: "web01"},
			want:    "https://grafana.example.com/d-solo/Hosts?panelId=1&var-hostname=web01&var-service=svc1&from=now-6h&to=now",
		},
		{
			name:    "trailing slash and explicit range",
			baseURL: "https://grafana.example.com/",
			ctx:     Context{Host: "web01", Service: "nginx", From: "now-1d", To: "now-1h"},
			want:    "https://grafana.example.com/d-solo/Hosts?panelId=1&var-hostname=web01&var-service=nginx&from=now-1d&to=now-1h",
		},
		{
			name:    "escaped values",
			baseURL: "http://g",
			ctx:     Context{Host: "a b"},
			want:    "http://g/d-solo/Hosts?panelId=1&var-hostname=a+b&var-service=svc1&from=now-6h&to=now",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(defaultGrafana(tt.baseURL))
			require.NoError(t, err)

			got, err := r.URL(g, tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_MissingBaseURL(t *testing.T) {
	r, err := NewRenderer(defaultGrafana(""))
	require.NoError(t, err)

	_, err = r.URL(graph.Graph{Name: "svc1", Dashboard: "Hosts", PanelID: "1"}, Context{})
	assert.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestRenderer_CustomTemplate(t *testing.T) {
	cfg := defaultGrafana("http://g")
	cfg.URLTemplate = `{{ .BaseURL }}/d/{{ .Dashboard | lower }}/{{ .PanelID }}`

	r, err := NewRenderer(cfg)
	require.NoError(t, err)

	got, err := r.URL(graph.Graph{Name: "svc1", Dashboard: "Hosts", PanelID: "7"}, Context{})
	require.NoError(t, err)
	assert.Equal(t, "http://g/d/hosts/7", got)
}

func TestNewRenderer_InvalidTemplate(t *testing.T) {
	cfg := defaultGrafana("http://g")
	cfg.URLTemplate = "{{ .BaseURL "

	_, err := NewRenderer(cfg)
	assert.Error(t, err)
}
