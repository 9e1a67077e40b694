package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the engine-level configuration. Rule tables (service
// mapping, regions, industry lists, ICP weights) live in separate JSON
// documents under <data>/config so an operator can edit each on its own;
// see rules.go.
type Settings struct {
	Input struct {
		File string `yaml:"file"`
	} `yaml:"input"`

	Output struct {
		File     string `yaml:"file"`
		Database string `yaml:"database"`
	} `yaml:"output"`

	Batch struct {
		SaveEveryN  int `yaml:"save_every_n"`
		JitterMinMS int `yaml:"jitter_min_ms"`
		JitterMaxMS int `yaml:"jitter_max_ms"`
	} `yaml:"batch"`

	Oracle struct {
		Model             string  `yaml:"model"`
		BaseURL           string  `yaml:"base_url"`
		RequestsPerWindow int     `yaml:"requests_per_window"`
		WindowSeconds     int     `yaml:"window_seconds"`
		MaxRetries        int     `yaml:"max_retries"`
		BackoffSeconds    float64 `yaml:"backoff_seconds"`
		CeilingRPS        float64 `yaml:"ceiling_rps"`
	} `yaml:"oracle"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

func Default() Settings {
	var s Settings
	s.Input.File = "leads.csv"
	s.Output.File = "qualified_leads_final.csv"
	s.Output.Database = "results.db"
	s.Batch.SaveEveryN = 50
	s.Batch.JitterMinMS = 50
	s.Batch.JitterMaxMS = 150
	s.Oracle.Model = "llama-3.1-8b-instant"
	s.Oracle.BaseURL = "https://api.groq.com/openai/v1"
	s.Oracle.RequestsPerWindow = 28
	s.Oracle.WindowSeconds = 60
	s.Oracle.MaxRetries = 4
	s.Oracle.BackoffSeconds = 1.5
	s.Oracle.CeilingRPS = 1.0
	s.Logging.Level = "info"
	s.Logging.Format = "console"
	return s
}

func Load(path string) (Settings, error) {
	var s Settings
	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	err = yaml.Unmarshal(b, &s)
	return s, err
}
