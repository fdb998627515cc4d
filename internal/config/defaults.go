package config

// DefaultConfig returns the built-in configuration: five workers with a
// base cost of sixty ticks, run history in the project-local database,
// and no scenarios (scenarios always come from config files or flags).
func DefaultConfig() *SchedsimConfig {
	return &SchedsimConfig{
		Defaults: SimDefaults{
			Workers:  5,
			BaseCost: 60,
		},
		DatabasePath: ".schedsim/runs.db",
		Concurrency:  4,
		Scenarios:    map[string]ScenarioConfig{},
	}
}
