package config

import "time"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "codeinsight",
			Version:     "1.0.0",
			Description: "Code quality analysis agent with AI-assisted review",
		},
		GenAI: GenAIConfig{
			Endpoint:  "https://api.example-genai.com/v1/generate",
			Model:     "default",
			APIKeyEnv: "GENAI_API_KEY",
			Timeout:   60 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:   3,
				BackoffFactor: 1.5,
				InitialDelay:  200 * time.Millisecond,
				MaxDelay:      5 * time.Second,
				RetryOnStatus: []int{429, 502, 503, 504},
			},
		},
		Analyzer: AnalyzerConfig{
			MaxWorkers:       8,
			BatchSize:        3,
			BatchWorkers:     2,
			ContentBudget:    2000,
			MaxFileSizeBytes: 1 << 20,
			Include:          nil, // all supported files
			Exclude: []string{
				"**/node_modules/**", "**/vendor/**", "**/dist/**",
				"**/build/**", "**/.git/**",
			},
		},
		Detectors: DetectorsConfig{
			Security:    true,
			Performance: true,
			Complexity:  true,
		},
		Session: SessionConfig{
			MaxSessions: 50,
			EvictCount:  10,
		},
		Output: OutputConfig{
			Formats:   []string{"json"},
			OutputDir: ".",
		},
		Logging: LoggingConfig{
			Level:            "info",
			IncludeTimestamp: true,
		},
	}
}
