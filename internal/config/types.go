package config

// Config is the top-level polgraph configuration, corresponding to .polgraph.yml.
type Config struct {
	Port            int      `yaml:"port" koanf:"port"`
	Theme           string   `yaml:"theme" koanf:"theme"`
	Dataset         string   `yaml:"dataset" koanf:"dataset"`
	Database        string   `yaml:"database" koanf:"database"`
	DatasetName     string   `yaml:"dataset_name" koanf:"dataset_name"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        string   `yaml:"log_level" koanf:"log_level"`
	InitialFilter   string   `yaml:"initial_filter" koanf:"initial_filter"`
	Include         []string `yaml:"include" koanf:"include"`
	Exclude         []string `yaml:"exclude" koanf:"exclude"`
}

// DefaultPath is where the CLI looks for configuration.
const DefaultPath = ".polgraph.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:          8080,
		Theme:         "dark",
		Database:      "polgraph.db",
		LogLevel:      "info",
		InitialFilter: "all",
		Include:       []string{"**/*.yml", "**/*.yaml"},
	}
}
