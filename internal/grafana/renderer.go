package grafana

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"grafanagraphs/internal/config"
	"grafanagraphs/internal/graph"

	"github.com/Masterminds/sprig/v3"
)

// ErrMissingBaseURL is returned when no Grafana base URL is configured.
var ErrMissingBaseURL = errors.New("grafana base URL is not configured")

// URLParams is the data passed to the URL template.
type URLParams struct {
	BaseURL   string
	Dashboard string
	PanelID   string
	Host      string
	Service   string
	From      string
	To        string
}

// Context is the host/service a panel is rendered for. Empty fields fall back
// to the graph name (service) or the configured time range.
type Context struct {
	Host    string
	Service string
	From    string
	To      string
}

// Renderer builds panel URLs.
type Renderer struct {
	cfg  config.GrafanaConfig
	tmpl *template.Template
}

// NewRenderer parses the configured URL template.
func NewRenderer(cfg config.GrafanaConfig) (*Renderer, error) {
	text := cfg.URLTemplate
	if text == "" {
		text = config.DefaultURLTemplate
	}

	tmpl, err := template.New("url").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid grafana URL template: %w", err)
	}

	return &Renderer{cfg: cfg, tmpl: tmpl}, nil
}

// Params combines a graph with ctx and the configured defaults.
func (r *Renderer) Params(g graph.Graph, ctx Context) URLParams {
	p := URLParams{
		BaseURL:   r.cfg.BaseURL,
		Dashboard: g.Dashboard,
		PanelID:   g.PanelID,
		Host:      ctx.Host,
		Service:   ctx.Service,
		From:      ctx.From,
		To:        ctx.To,
	}
	if p.Service == "" {
		p.Service = g.Name
	}
	if p.From == "" {
		p.From = r.cfg.DefaultFrom
	}
	if p.To == "" {
		p.To = r.cfg.DefaultTo
	}
	return p
}

// URL renders the panel URL of g.
func (r *Renderer) URL(g graph.Graph, ctx Context) (string, error) {
	if strings.TrimSpace(r.cfg.BaseURL) == "" {
		return "", ErrMissingBaseURL
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, r.Params(g, ctx)); err != nil {
		return "", fmt.Errorf("failed to render URL for graph %s: %w", g.Name, err)
	}
	return sb.String(), nil
}
