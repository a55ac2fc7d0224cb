package models

// Config holds the full application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Logger   LoggerConfig
	Analysis AnalysisConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Debug       bool   `json:"debug"`
}

// ServerConfig holds the HTTP serve-mode configuration
type ServerConfig struct {
	Port            int `json:"port"`
	ReadTimeout     int `json:"read_timeout"`
	WriteTimeout    int `json:"write_timeout"`
	ShutdownTimeout int `json:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	SSLMode   string `json:"ssl_mode"`
	MaxConns  int    `json:"max_conns"`
	IdleConns int    `json:"idle_conns"`
}

// RedisConfig holds Redis configuration for the heatmap export sink
type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"pool_size"`
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string `json:"url"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level    string `json:"level"`
	FilePath string `json:"file_path"`
}

// AnalysisConfig holds every tunable of the earnings pipeline.
// Thresholds and levels are parameters, not contracts.
type AnalysisConfig struct {
	// WindowDays bounds the job load query: jobs picked up within the
	// last WindowDays are analyzed.
	WindowDays int `json:"window_days"`

	// Mode selects the averager: "direct" or "modeled".
	Mode string `json:"mode"`

	// OutlierMethod selects the authoritative detector: "zscore" or "iqr".
	// The other detector is still computed for comparison.
	OutlierMethod string  `json:"outlier_method"`
	ZScoreLimit   float64 `json:"zscore_limit"`
	IQRMultiplier float64 `json:"iqr_multiplier"`

	// AmbiguousPolicy decides what happens when a coordinate falls inside
	// more than one area boundary: "drop" or "first".
	AmbiguousPolicy string `json:"ambiguous_policy"`

	// Duration ceilings per service type, in hours.
	RideshareMaxHours float64 `json:"rideshare_max_hours"`
	DeliveryMaxHours  float64 `json:"delivery_max_hours"`

	// MaxAreasPerJob is the highest distinct area count a job may touch;
	// jobs above it are treated as erroneous.
	MaxAreasPerJob int `json:"max_areas_per_job"`

	// ConfidenceLevel and SuppressAboveDollars drive estimate suppression:
	// a bucket whose CI half-width at ConfidenceLevel exceeds the dollar
	// threshold is marked unavailable.
	ConfidenceLevel      float64 `json:"confidence_level"`
	SuppressAboveDollars float64 `json:"suppress_above_dollars"`

	// Huber tuning for the modeled averager.
	HuberC          float64 `json:"huber_c"`
	HuberIterations int     `json:"huber_iterations"`

	// GeohashPrecision sizes the coarse cells of the area lookup index.
	GeohashPrecision uint `json:"geohash_precision"`

	// ExportTTLHours bounds how long exported heatmap keys live in Redis.
	ExportTTLHours int `json:"export_ttl_hours"`
}
