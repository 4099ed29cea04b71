package config

// Config is the full daemon configuration. JSON tags double as the YAML
// schema: YAML files are coerced to JSON before strict decoding.
type Config struct {
	Logging   LoggingConfig   `json:"logging"`
	Telegram  TelegramConfig  `json:"telegram,omitempty"`
	Store     StoreConfig     `json:"store,omitempty"`
	Scheduler SchedulerConfig `json:"scheduler"`

	Maintenance MaintenanceConfig `json:"maintenance,omitempty"`

	// Platforms adds custom default slot tables on top of the compiled-in
	// ones, and is the way to onboard platforms the scheduler does not ship
	// defaults for.
	Platforms map[string][]SlotKeyConfig `json:"platforms,omitempty"`
}

// SlotKeyConfig is one configured default slot: an hour of day and a
// Monday-first day of week.
type SlotKeyConfig struct {
	Hour    int `json:"hour"`        // 0..23
	Weekday int `json:"day_of_week"` // 0=Monday .. 6=Sunday
}

type LoggingConfig struct {
	Level   string        `json:"level,omitempty"` // TRACE..ERROR, default INFO
	Console bool          `json:"console"`
	File    LogFileConfig `json:"file,omitempty"`
	Ops     LogOpsConfig  `json:"ops,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// LogOpsConfig mirrors warnings and errors into the Telegram ops chat.
type LogOpsConfig struct {
	Enabled    bool   `json:"enabled"`
	MinLevel   string `json:"min_level,omitempty"`    // default WARN
	RatePerSec int    `json:"rate_per_sec,omitempty"` // default 1
}

// TelegramConfig points at the ops chat used for log mirroring and the
// daily digest. Leave Token empty to disable both.
type TelegramConfig struct {
	Token  string `json:"token,omitempty"`
	ChatID int64  `json:"chat_id,omitempty"`
}

// StoreConfig selects the slot persistence driver.
//
// Examples:
//
//	"store": { "driver": "file", "path": "./data/slots.json" }
//	"store": { "driver": "sqlite", "path": "./data/slots.db" }
//	"store": { "driver": "postgres", "dsn": "postgres://..." }
//	"store": { "driver": "redis", "addr": "127.0.0.1:6379" }
type StoreConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
	DSN         string `json:"dsn,omitempty"`
	Addr        string `json:"addr,omitempty"`
	Password    string `json:"password,omitempty"`
	DB          int    `json:"db,omitempty"`
	KeyPrefix   string `json:"key_prefix,omitempty"`
}

type SchedulerConfig struct {
	HorizonDays int    `json:"horizon_days,omitempty"` // default 7
	MinGapHours int    `json:"min_gap_hours,omitempty"`
	SaveTimeout string `json:"save_timeout,omitempty"` // Go duration string, default "5s"

	// Timezone is the default IANA zone for local-time labels, e.g.
	// "Asia/Baku". PlatformZones overrides per platform.
	Timezone      string            `json:"timezone,omitempty"`
	PlatformZones map[string]string `json:"platform_zones,omitempty"`
}

// MaintenanceConfig schedules background jobs (cron specs, robfig/cron
// 5-field syntax or descriptors like "@hourly").
type MaintenanceConfig struct {
	// SnapshotSpec saves the grid periodically. Default "@hourly".
	SnapshotSpec string `json:"snapshot_spec,omitempty"`
	// DigestSpec posts the analytics digest to the ops chat. Empty disables.
	DigestSpec string `json:"digest_spec,omitempty"`
	// DigestPlatforms limits the digest; empty means all known platforms.
	DigestPlatforms []string `json:"digest_platforms,omitempty"`
}
