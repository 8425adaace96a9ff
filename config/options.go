package config // import "github.com/bookdenapp/bookden/config"

const (
	defaultVersion            = "0.2.1"
	defaultLogFile            = "bookden.log"
	defaultLogLevel           = "info"
	defaultLogFileMaxSize     = 20
	defaultLogFileMaxBackups  = 3
	defaultLogFileMaxAge      = 28
	defaultLogCompress        = false
	defaultPort               = 8080
	defaultHost               = "0.0.0.0"
	defaultData               = "/var/opt/bookden"
	defaultWorkerPoolSize     = 4
	defaultPageLimit          = 12
	defaultMaxPageLimit       = 100
	defaultRateLimitPerMinute = 120
	defaultRateLimitBurst     = 30
)

// Why use mapstructure instead of json: viper unmarshals with
// mapstructure, json field tags are not recognized.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// Version is the running release, stamped into migration history
	Version string `mapstructure:"version"`
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// WorkerPoolSize is the number of background workers applying
	// reading-progress events
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// PageLimit is the default catalog page size
	PageLimit int `mapstructure:"page_limit"`
	// MaxPageLimit caps the client-supplied catalog page size
	MaxPageLimit int `mapstructure:"max_page_limit"`
	// RateLimitPerMinute is the per-client request budget
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	// RateLimitBurst is the per-client burst size
	RateLimitBurst int `mapstructure:"rate_limit_burst"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		Version:            defaultVersion,
		LogFile:            defaultLogFile,
		LogLevel:           defaultLogLevel,
		LogFileMaxSize:     defaultLogFileMaxSize,
		LogFileMaxBackups:  defaultLogFileMaxBackups,
		LogFileMaxAge:      defaultLogFileMaxAge,
		LogCompress:        defaultLogCompress,
		DSN:                defaultData + "/bookden.db",
		Port:               defaultPort,
		Host:               defaultHost,
		Data:               defaultData,
		WorkerPoolSize:     defaultWorkerPoolSize,
		PageLimit:          defaultPageLimit,
		MaxPageLimit:       defaultMaxPageLimit,
		RateLimitPerMinute: defaultRateLimitPerMinute,
		RateLimitBurst:     defaultRateLimitBurst,
	}
	return Opts
}
