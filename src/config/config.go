package config

import "time"

// Config is the root configuration structure
type Config struct {
	Agent     AgentConfig     `yaml:"agent"`
	GenAI     GenAIConfig     `yaml:"genai"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer"`
	Detectors DetectorsConfig `yaml:"detectors"`
	Session   SessionConfig   `yaml:"session"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AgentConfig contains agent metadata
type AgentConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// GenAIConfig contains generative-model service connection settings.
// The API key is read from the environment variable named by APIKeyEnv;
// an empty key disables the model-assisted passes without failing.
type GenAIConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
	Retry     RetryConfig   `yaml:"retry"`
}

// RetryConfig contains retry settings for model calls
type RetryConfig struct {
	MaxAttempts   int           `yaml:"max_attempts"`
	BackoffFactor float64       `yaml:"backoff_factor"`
	InitialDelay  time.Duration `yaml:"initial_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	RetryOnStatus []int         `yaml:"retry_on_status"`
}

// AnalyzerConfig contains pipeline settings
type AnalyzerConfig struct {
	MaxWorkers       int      `yaml:"max_workers"`        // detector/scanner fan-out cap
	BatchSize        int      `yaml:"batch_size"`         // files per model batch
	BatchWorkers     int      `yaml:"batch_workers"`      // concurrent model batches
	ContentBudget    int      `yaml:"content_budget"`     // chars of file content per prompt
	MaxFileSizeBytes int      `yaml:"max_file_size_bytes"`
	Include          []string `yaml:"include"`
	Exclude          []string `yaml:"exclude"`
}

// DetectorsConfig toggles individual pattern detectors
type DetectorsConfig struct {
	Security    bool `yaml:"security"`
	Performance bool `yaml:"performance"`
	Complexity  bool `yaml:"complexity"`
}

// SessionConfig contains Q&A session store settings
type SessionConfig struct {
	MaxSessions int `yaml:"max_sessions"` // sweep eviction trigger
	EvictCount  int `yaml:"evict_count"`  // oldest sessions removed per sweep
}

// OutputConfig contains report output settings
type OutputConfig struct {
	Formats   []string `yaml:"formats"`
	OutputDir string   `yaml:"output_dir"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level"`
	File             string `yaml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
}
