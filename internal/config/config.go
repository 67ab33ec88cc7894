package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Redis      RedisConfig
	JWT        JWTConfig
	JobService JobServiceConfig
	Poller     PollerConfig
	Percent    PercentConfig
	Cache      CacheConfig
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggerConfig selects the zap encoder and level.
type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// JWTConfig holds the shared secret used to verify launch tokens.
type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
	Issuer    string `yaml:"issuer"`
}

// JobServiceConfig points at the external job service. Path templates take the
// course id as their only %s verb.
type JobServiceConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	Timeout        time.Duration `yaml:"timeout"`
	FilterPath     string        `yaml:"filter_path"`
	RefreshPath    string        `yaml:"refresh_path"`
	UpdatePath     string        `yaml:"update_path"`
	AdvisoryPath   string        `yaml:"advisory_path"`
	DefaultPerPage int           `yaml:"default_per_page"`
}

// PollerConfig tunes the Refresh and Update job pollers.
type PollerConfig struct {
	Interval             time.Duration `yaml:"interval"`
	MaxDuration          time.Duration `yaml:"max_duration"`
	RefreshTolerateEmpty bool          `yaml:"refresh_tolerate_empty"`
}

type PercentConfig struct {
	Presets       []string `yaml:"presets"`
	DefaultPreset string   `yaml:"default_preset"`
}

type CacheConfig struct {
	StudentPageTTL time.Duration `yaml:"student_page_ttl"`
	AdvisoryTTL    time.Duration `yaml:"advisory_ttl"`
	ReportTTL      time.Duration `yaml:"report_ttl"`
}

const (
	defaultPollInterval = 1000 * time.Millisecond
	defaultFilterPath   = "/filter/%s/"
	defaultRefreshPath  = "/refresh/%s/"
	defaultUpdatePath   = "/update/%s/"
	defaultAdvisoryPath = "/missing_quizzes/%s/"
)

func setDefaults() {
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("job_service.timeout", "20s")
	viper.SetDefault("job_service.filter_path", defaultFilterPath)
	viper.SetDefault("job_service.refresh_path", defaultRefreshPath)
	viper.SetDefault("job_service.update_path", defaultUpdatePath)
	viper.SetDefault("job_service.advisory_path", defaultAdvisoryPath)
	viper.SetDefault("job_service.default_per_page", 10)
	viper.SetDefault("poller.interval", defaultPollInterval.String())
	viper.SetDefault("poller.max_duration", "0s")
	viper.SetDefault("poller.refresh_tolerate_empty", false)
	viper.SetDefault("percent.presets", []string{"150", "200", "300"})
	viper.SetDefault("percent.default_preset", "150")
	viper.SetDefault("cache.student_page_ttl", "30s")
	viper.SetDefault("cache.advisory_ttl", "15s")
	viper.SetDefault("cache.report_ttl", "2h")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Println("No config file found, using defaults and environment")
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey: viper.GetString("jwt.secret_key"),
			Issuer:    viper.GetString("jwt.issuer"),
		},
		JobService: JobServiceConfig{
			BaseURL:        viper.GetString("job_service.base_url"),
			APIKey:         viper.GetString("job_service.api_key"),
			Timeout:        viper.GetDuration("job_service.timeout"),
			FilterPath:     viper.GetString("job_service.filter_path"),
			RefreshPath:    viper.GetString("job_service.refresh_path"),
			UpdatePath:     viper.GetString("job_service.update_path"),
			AdvisoryPath:   viper.GetString("job_service.advisory_path"),
			DefaultPerPage: viper.GetInt("job_service.default_per_page"),
		},
		Poller: PollerConfig{
			Interval:             viper.GetDuration("poller.interval"),
			MaxDuration:          viper.GetDuration("poller.max_duration"),
			RefreshTolerateEmpty: viper.GetBool("poller.refresh_tolerate_empty"),
		},
		Percent: PercentConfig{
			Presets:       viper.GetStringSlice("percent.presets"),
			DefaultPreset: viper.GetString("percent.default_preset"),
		},
		Cache: CacheConfig{
			StudentPageTTL: viper.GetDuration("cache.student_page_ttl"),
			AdvisoryTTL:    viper.GetDuration("cache.advisory_ttl"),
			ReportTTL:      viper.GetDuration("cache.report_ttl"),
		},
	}

	// Override with environment variables if set
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if apiURL := os.Getenv("API_URL"); apiURL != "" {
		config.JobService.BaseURL = apiURL
	}
	if apiKey := os.Getenv("API_KEY"); apiKey != "" {
		config.JobService.APIKey = apiKey
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects configurations the controller cannot run with.
func (c *Config) Validate() error {
	if c.Poller.Interval <= 0 {
		return fmt.Errorf("poller.interval must be positive, got %s", c.Poller.Interval)
	}
	if c.Poller.MaxDuration < 0 {
		return fmt.Errorf("poller.max_duration must not be negative, got %s", c.Poller.MaxDuration)
	}
	if len(c.Percent.Presets) == 0 {
		return fmt.Errorf("percent.presets must list at least one preset")
	}
	found := false
	for _, p := range c.Percent.Presets {
		if p == c.Percent.DefaultPreset {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("percent.default_preset %q is not one of percent.presets", c.Percent.DefaultPreset)
	}
	return nil
}
