package config

import "time"

// Timer defaults.
const (
	AlarmInterval       = 4 * time.Hour
	FilterResumeGrace   = 30 * time.Second
	FilterAlertAfter    = 2
	TickInterval        = time.Second
	BellInterval        = time.Second
	PersistFlushTimeout = 2 * time.Second
)

// Tanks.
const (
	CounterCount = 5
	FirstCounter = 1
)

// Storage types.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageBolt   = "bolt"
	StorageRedis  = "redis"
)

// Application settings.
const (
	AppName      = "kamreen"
	DBFileName   = "kamreen.db"
	JSONFileName = "state.json"
	BoltFileName = "kamreen.bolt"
	LogFileName  = "kamreen.log"
	StateKey     = "kamreen.state"
	EnvPrefix    = "KAMREEN"
)

// Haptic pulse patterns, alternating wait and vibrate.
var (
	AlarmVibration  = []time.Duration{0, 500 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond, 200 * time.Millisecond, 500 * time.Millisecond}
	FilterVibration = []time.Duration{0, 250 * time.Millisecond, 100 * time.Millisecond, 250 * time.Millisecond}
)
