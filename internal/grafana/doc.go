// Package grafana renders Grafana panel URLs for configured graphs.
//
// URLs come from a text/template with the sprig function map. The default
// template links the d-solo view of a single panel and passes the host and
// service as dashboard variables:
//
//	https://grafana.example.com/d-solo/Hosts?panelId=1&var-hostname=web01&var-service=svc1&from=now-6h&to=now
package grafana
