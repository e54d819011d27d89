package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server Server
	Stock  Stock
	Source Source
	Auth   Auth
	Cache  Cache
}

type Server struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// Stock holds the pipeline and view tunables.
type Stock struct {
	// BandScheme selects the freshness banding for this deployment:
	// "coarse" (20% steps) or "fine" (90/80/70 thresholds).
	BandScheme string
	// MinQuantity is the group-level threshold: aggregated rows whose
	// total quantity is at or below it are dropped.
	MinQuantity float64
	PageSize    int
}

type Source struct {
	// Kind selects the snapshot source: "local", "drive" or "s3".
	Kind     string
	DataDir  string
	RefFile  string
	AuthFile string

	DriveCredentialsJSON string
	DriveFolderID        string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Prefix    string
	S3UseSSL    bool
}

type Auth struct {
	APIToken string
}

type Cache struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTLSeconds    int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})

		viper.SetDefault("STOCK_BAND_SCHEME", "coarse")
		viper.SetDefault("STOCK_MIN_QUANTITY", 1.0)
		viper.SetDefault("STOCK_PAGE_SIZE", 100)

		viper.SetDefault("SOURCE_KIND", "local")
		viper.SetDefault("SOURCE_DATA_DIR", "./data/stockdb")
		viper.SetDefault("SOURCE_REF_FILE", "./data/product_ref.csv")
		viper.SetDefault("SOURCE_AUTH_FILE", "./data/admin.csv")
		viper.SetDefault("DRIVE_CREDENTIALS_JSON", "")
		viper.SetDefault("DRIVE_FOLDER_ID", "")
		viper.SetDefault("S3_ENDPOINT", "")
		viper.SetDefault("S3_ACCESS_KEY", "")
		viper.SetDefault("S3_SECRET_KEY", "")
		viper.SetDefault("S3_BUCKET", "")
		viper.SetDefault("S3_PREFIX", "stockdb/")
		viper.SetDefault("S3_USE_SSL", true)

		viper.SetDefault("AUTH_API_TOKEN", "lotte-stock-2024")

		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_TTL_SECONDS", 60)

		viper.AutomaticEnv()

		instance = &Config{
			Server: Server{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Stock: Stock{
				BandScheme:  viper.GetString("STOCK_BAND_SCHEME"),
				MinQuantity: viper.GetFloat64("STOCK_MIN_QUANTITY"),
				PageSize:    viper.GetInt("STOCK_PAGE_SIZE"),
			},
			Source: Source{
				Kind:                 viper.GetString("SOURCE_KIND"),
				DataDir:              viper.GetString("SOURCE_DATA_DIR"),
				RefFile:              viper.GetString("SOURCE_REF_FILE"),
				AuthFile:             viper.GetString("SOURCE_AUTH_FILE"),
				DriveCredentialsJSON: viper.GetString("DRIVE_CREDENTIALS_JSON"),
				DriveFolderID:        viper.GetString("DRIVE_FOLDER_ID"),
				S3Endpoint:           viper.GetString("S3_ENDPOINT"),
				S3AccessKey:          viper.GetString("S3_ACCESS_KEY"),
				S3SecretKey:          viper.GetString("S3_SECRET_KEY"),
				S3Bucket:             viper.GetString("S3_BUCKET"),
				S3Prefix:             viper.GetString("S3_PREFIX"),
				S3UseSSL:             viper.GetBool("S3_USE_SSL"),
			},
			Auth: Auth{
				APIToken: viper.GetString("AUTH_API_TOKEN"),
			},
			Cache: Cache{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
				TTLSeconds:    viper.GetInt("CACHE_TTL_SECONDS"),
			},
		}
	})

	return instance
}
