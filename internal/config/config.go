package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Log         LogConfig         `yaml:"log"`
	GitHub      GitHubConfig      `yaml:"github"`
	Newest      NewestConfig      `yaml:"newest"`
	LLM         LLMConfig         `yaml:"llm"`
	Translation TranslationConfig `yaml:"translation"`
	Enrichment  EnrichmentConfig  `yaml:"enrichment"`
	SyncAPI     SyncAPIConfig     `yaml:"sync_api"`
}

// ServerConfig holds HTTP server settings for the trigger API.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig holds the lock store connection.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// GitHubConfig holds search API settings shared by every strategy.
// PerPage, MaxPages and MaxResults are the caps of the popular strategy.
type GitHubConfig struct {
	APIURL          string        `yaml:"api_url"           env:"GITHUB_API_URL"           env-default:"https://api.github.com"`
	Token           string        `yaml:"token"             env:"GITHUB_TOKEN"`
	SearchQuery     string        `yaml:"search_query"      env:"GITHUB_SEARCH_QUERY"      env-default:"\"claude skill\" OR \"agent skill\" OR openclaw in:name,description,topics"`
	PerPage         int           `yaml:"per_page"          env:"GITHUB_PER_PAGE"          env-default:"30"`
	MaxPages        int           `yaml:"max_pages"         env:"GITHUB_MAX_PAGES"         env-default:"5"`
	MaxResults      int           `yaml:"max_results"       env:"GITHUB_MAX_RESULTS"       env-default:"300"`
	RateLimitBuffer int           `yaml:"rate_limit_buffer" env:"GITHUB_RATE_LIMIT_BUFFER" env-default:"2"`
	RequestTimeout  time.Duration `yaml:"request_timeout"   env:"GITHUB_REQUEST_TIMEOUT"   env-default:"30s"`
}

// NewestConfig holds the caps of the recently-created strategy.
type NewestConfig struct {
	WindowDays int `yaml:"window_days" env:"NEWEST_WINDOW_DAYS" env-default:"7"`
	MaxPages   int `yaml:"max_pages"   env:"NEWEST_MAX_PAGES"   env-default:"2"`
	MaxResults int `yaml:"max_results" env:"NEWEST_MAX_RESULTS" env-default:"100"`
}

// LLMConfig holds the OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	APIKey           string        `yaml:"api_key"           env:"LLM_API_KEY"`
	BaseURL          string        `yaml:"base_url"          env:"LLM_BASE_URL"          env-default:"https://api.deepseek.com"`
	Model            string        `yaml:"model"             env:"LLM_MODEL"             env-default:"deepseek-chat"`
	Temperature      float32       `yaml:"temperature"       env:"LLM_TEMPERATURE"       env-default:"0.2"`
	TranslateTimeout time.Duration `yaml:"translate_timeout" env:"LLM_TRANSLATE_TIMEOUT" env-default:"30s"`
	GenerateTimeout  time.Duration `yaml:"generate_timeout"  env:"LLM_GENERATE_TIMEOUT"  env-default:"60s"`
}

// HasKey reports whether an API key is configured.
func (c LLMConfig) HasKey() bool { return c.APIKey != "" }

// TranslationConfig toggles description translation during sync.
type TranslationConfig struct {
	Enabled bool `yaml:"enabled" env:"TRANSLATION_ENABLED" env-default:"false"`
}

// EnrichmentConfig holds content generation batch settings.
type EnrichmentConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"ENRICHMENT_ENABLED"    env-default:"false"`
	BatchSize int           `yaml:"batch_size" env:"ENRICHMENT_BATCH_SIZE" env-default:"5"`
	LockTTL   time.Duration `yaml:"lock_ttl"   env:"ENRICHMENT_LOCK_TTL"   env-default:"30m"`
}

// SyncAPIConfig holds the manual trigger endpoint settings.
type SyncAPIConfig struct {
	Enabled           bool   `yaml:"enabled"              env:"SYNC_API_ENABLED"              env-default:"false"`
	Token             string `yaml:"token"                env:"SYNC_API_TOKEN"`
	RequestsPerMinute int    `yaml:"requests_per_minute"  env:"SYNC_API_REQUESTS_PER_MINUTE"  env-default:"10"`
}
