package config

// SimDefaults holds the simulation parameters applied when a scenario
// does not override them.
type SimDefaults struct {
	Workers  int `json:"workers"`   // simulated worker count
	BaseCost int `json:"base_cost"` // added to every task's cost
}

// ScenarioConfig describes one named simulation scenario: an input file
// of edge instruction lines plus optional parameter overrides. Nil
// overrides fall back to the defaults; base cost zero is a meaningful
// override, hence pointers rather than zero-value sentinels.
type ScenarioConfig struct {
	Input    string `json:"input"`
	Workers  *int   `json:"workers,omitempty"`
	BaseCost *int   `json:"base_cost,omitempty"`
}

// SchedsimConfig is the top-level configuration.
type SchedsimConfig struct {
	Defaults     SimDefaults               `json:"defaults"`
	DatabasePath string                    `json:"database_path,omitempty"` // run-history SQLite file; empty disables persistence
	Concurrency  int                       `json:"concurrency,omitempty"`   // max scenarios simulated at once
	Scenarios    map[string]ScenarioConfig `json:"scenarios"`
}
