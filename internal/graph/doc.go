// Package graph manages graph definitions stored as named configuration
// sections.
//
// A graph associates a service name (the section name) with a Grafana
// dashboard and a panel id. Registry performs the existence and uniqueness
// checks before delegating to a ConfigStore; Form wraps a Registry with the
// submit workflow used by every caller: validate, dispatch to Add or Update,
// then Save, discarding staged changes if anything fails.
//
// Registry keeps no locks. Callers must not run two registry operations on
// the same store concurrently.
//
// Example:
//
//	reg := graph.NewRegistry(cfg)
//	if _, err := reg.Add("svc1", graph.Graph{Dashboard: "Hosts", PanelID: "1"}.Section()); err != nil {
//	    return err
//	}
//	if _, err := reg.Update("svc2", values, "svc1"); graph.IsNotFound(err) {
//	    ...
//	}
package graph
