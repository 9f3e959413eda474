// Package testbed holds the example states run by the vignette binary.
package testbed

import (
	"path"
	"strings"

	"github.com/spaghettifunk/vignette/engine"
	"github.com/spaghettifunk/vignette/engine/assets"
)

const StatsKey = "stats"

var fallbackStates = []string{"default"}

// StateNames lists the colour states found under states/ in the asset root,
// in lexical order.
func StateNames(am *assets.Manager) []string {
	if am == nil {
		return fallbackStates
	}
	var names []string
	for _, name := range am.Names() {
		if path.Dir(name) == "states" && path.Ext(name) == ".toml" {
			names = append(names, strings.TrimSuffix(path.Base(name), ".toml"))
		}
	}
	if len(names) == 0 {
		return fallbackStates
	}
	return names
}

// Register adds a ColorState per name, then the stats state. The first
// name becomes the initial state.
func Register(app *engine.App, names []string) error {
	for _, name := range names {
		if err := app.Register(name, NewColorState(name)); err != nil {
			return err
		}
	}
	return engine.AddState[StatsState](app, StatsKey)
}
