package model

// Config holds all tunables the caller can set.
// Loaded by the CLI from file/env; library users construct it directly.
type Config struct {
	Router RouterConfig `yaml:"router" mapstructure:"router"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// BatchConfig controls concurrent multi-document processing
type BatchConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the extraction result cache
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir       string `yaml:"dir" mapstructure:"dir"`
	MemoryTTL int    `yaml:"memory_ttl" mapstructure:"memory_ttl"` // minutes
	DiskTTL   int    `yaml:"disk_ttl" mapstructure:"disk_ttl"`     // minutes
}

// InputConfig bounds accepted documents
type InputConfig struct {
	MaxBytes       int64   `yaml:"max_bytes" mapstructure:"max_bytes"`
	MinLength      int     `yaml:"min_length" mapstructure:"min_length"`
	MinHebrewRatio float64 `yaml:"min_hebrew_ratio" mapstructure:"min_hebrew_ratio"`
}

// OutputConfig controls result rendering
type OutputConfig struct {
	Format         string `yaml:"format" mapstructure:"format"` // json or markdown
	IncludeRawText bool   `yaml:"include_raw_text" mapstructure:"include_raw_text"`
}

// RouterConfig configures the extraction provider chain
type RouterConfig struct {
	// Confidence thresholds for fallback escalation
	PatternThreshold float64 `yaml:"pattern_threshold" mapstructure:"pattern_threshold"`
	LocalThreshold   float64 `yaml:"local_threshold" mapstructure:"local_threshold"`
	MinConfidence    float64 `yaml:"min_confidence" mapstructure:"min_confidence"`

	// Provider enable flags
	EnableLocal bool `yaml:"enable_local" mapstructure:"enable_local"`
	EnableCloud bool `yaml:"enable_cloud" mapstructure:"enable_cloud"`

	// Local model endpoint (Ollama)
	LocalHost    string `yaml:"local_host" mapstructure:"local_host"`
	LocalModel   string `yaml:"local_model" mapstructure:"local_model"`
	LocalTimeout int    `yaml:"local_timeout" mapstructure:"local_timeout"` // seconds

	// Cloud model
	CloudAPIKey  string `yaml:"cloud_api_key" mapstructure:"cloud_api_key"`
	CloudModel   string `yaml:"cloud_model" mapstructure:"cloud_model"`
	CloudBaseURL string `yaml:"cloud_base_url" mapstructure:"cloud_base_url"`
	CloudTimeout int    `yaml:"cloud_timeout" mapstructure:"cloud_timeout"` // seconds

	// Cloud request budget. Requests beyond the per-minute budget are
	// rejected locally without a network call. The daily token budget is
	// recorded for operators but not enforced at runtime.
	CloudRequestsPerMinute int `yaml:"cloud_requests_per_minute" mapstructure:"cloud_requests_per_minute"`
	CloudDailyTokenBudget  int `yaml:"cloud_daily_token_budget" mapstructure:"cloud_daily_token_budget"`
}

// DefaultConfig returns the defaults used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Router: RouterConfig{
			PatternThreshold:       0.7,
			LocalThreshold:         0.6,
			MinConfidence:          0.6,
			EnableLocal:            true,
			EnableCloud:            false,
			LocalHost:              "http://localhost:11434",
			LocalModel:             "gemma3:1b",
			LocalTimeout:           60,
			CloudModel:             "gpt-4o-mini",
			CloudTimeout:           30,
			CloudRequestsPerMinute: 15,
			CloudDailyTokenBudget:  1_000_000,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       ".protokol-cache",
			MemoryTTL: 60,
			DiskTTL:   60 * 24,
		},
		Input: InputConfig{
			MaxBytes:       10 << 20,
			MinLength:      100,
			MinHebrewRatio: 0.3,
		},
		Output: OutputConfig{
			Format:         "json",
			IncludeRawText: false,
		},
	}
}
