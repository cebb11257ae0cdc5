package config

import (
	"encoding/json"
	"os"
	"time"
)

type Config struct {
	Bot        BotConfig        `json:"bot"`
	Database   DatabaseConfig   `json:"database"`
	Redis      RedisConfig      `json:"redis"`
	Metrics    MetricsConfig    `json:"metrics"`
	Enforce    EnforceConfig    `json:"enforce"`
	Escalation EscalationPolicy `json:"escalation"`
	Forensics  ForensicsConfig  `json:"forensics"`
	Logging    LoggingConfig    `json:"logging"`
}

type BotConfig struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

// RedisConfig selects the backing store for escalation windows. When Addr is
// empty the tracker runs on the in-memory store and counters reset on restart.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type MetricsConfig struct {
	ListenAddr string `json:"listen_addr"`
}

type EnforceConfig struct {
	WorkerCount  int    `json:"worker_count"`
	HTTPPoolSize int    `json:"http_pool_size"`
	QueueSize    int    `json:"queue_size"`
	HistorySize  int    `json:"history_size"`
	APIBaseURL   string `json:"api_base_url"`
}

type ForensicsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

// EscalationPolicy carries the strike/timeout thresholds. These are policy
// numbers, not tuning knobs: changing them changes moderation behavior.
type EscalationPolicy struct {
	WarningWindow    Duration `json:"warning_window"`
	WarningThreshold int      `json:"warning_threshold"`
	TimeoutDuration  Duration `json:"timeout_duration"`
	TimeoutWindow    Duration `json:"timeout_window"`
	TimeoutThreshold int      `json:"timeout_threshold"`
	SuspendDuration  Duration `json:"suspend_duration"`

	// ResetOnTimeoutFailure keeps the historical behavior of clearing the
	// warning window even when the timeout call is rejected (for example a
	// member the bot cannot act on). Set false to retry on the next strike.
	ResetOnTimeoutFailure bool `json:"reset_on_timeout_failure"`
}

// Duration wraps time.Duration so policy windows can be written as "6h" in
// config.json.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	GlobalConfig = cfg
	return cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnvOverrides(cfg)
		GlobalConfig = cfg
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if clientID := os.Getenv("CLIENT_ID"); clientID != "" {
		cfg.Bot.ClientID = clientID
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		cfg.Metrics.ListenAddr = addr
	}
}

func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{},
		Database: DatabaseConfig{
			Path: "karma.db",
		},
		Metrics: MetricsConfig{
			ListenAddr: "",
		},
		Enforce: EnforceConfig{
			WorkerCount:  4,
			HTTPPoolSize: 4,
			QueueSize:    4096,
			HistorySize:  64,
			APIBaseURL:   "https://discord.com/api/v10",
		},
		Escalation: DefaultEscalationPolicy(),
		Forensics: ForensicsConfig{
			Enabled: true,
			Path:    "logs/decisions.log",
		},
		Logging: LoggingConfig{
			Level: "info",
			Path:  "karma.log",
		},
	}
}

func DefaultEscalationPolicy() EscalationPolicy {
	return EscalationPolicy{
		WarningWindow:         Duration(time.Hour),
		WarningThreshold:      3,
		TimeoutDuration:       Duration(6 * time.Hour),
		TimeoutWindow:         Duration(30 * 24 * time.Hour),
		TimeoutThreshold:      5,
		SuspendDuration:       Duration(7 * 24 * time.Hour),
		ResetOnTimeoutFailure: true,
	}
}

func Get() *Config {
	if GlobalConfig == nil {
		GlobalConfig = DefaultConfig()
	}
	return GlobalConfig
}
