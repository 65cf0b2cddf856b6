package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	LocalCache LocalCacheConfig
	Sync       SyncConfig
	Auth       AuthConfig
	LLM        LLMConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LocalCacheConfig struct {
	Path string
}

type SyncConfig struct {
	RemoteTimeout time.Duration
	MaxRetries    int
	EventWindow   int
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

type LLMConfig struct {
	Provider         string // "openai" or "ollama"
	FallbackProvider string
	OpenAIAPIKey     string
	OpenAIModel      string
	OllamaServerURL  string
	OllamaModel      string
	Timeout          time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("local_cache.path", "quizlearn_cache.db")
	viper.SetDefault("sync.remote_timeout", 10)
	viper.SetDefault("sync.max_retries", 3)
	viper.SetDefault("sync.event_window", 100)
	viper.SetDefault("auth.token_expiry", 24)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.fallback_provider", "ollama")
	viper.SetDefault("llm.openai_model", "gpt-4o-mini")
	viper.SetDefault("llm.ollama_model", "qwen3:0.6b")
	viper.SetDefault("llm.timeout", 30)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LocalCache: LocalCacheConfig{
			Path: viper.GetString("local_cache.path"),
		},
		Sync: SyncConfig{
			RemoteTimeout: viper.GetDuration("sync.remote_timeout") * time.Second,
			MaxRetries:    viper.GetInt("sync.max_retries"),
			EventWindow:   viper.GetInt("sync.event_window"),
		},
		Auth: AuthConfig{
			JWTSecret:   viper.GetString("auth.jwt_secret"),
			TokenExpiry: viper.GetDuration("auth.token_expiry") * time.Hour,
		},
		LLM: LLMConfig{
			Provider:         viper.GetString("llm.provider"),
			FallbackProvider: viper.GetString("llm.fallback_provider"),
			OpenAIAPIKey:     viper.GetString("llm.openai_api_key"),
			OpenAIModel:      viper.GetString("llm.openai_model"),
			OllamaServerURL:  viper.GetString("llm.ollama_server_url"),
			OllamaModel:      viper.GetString("llm.ollama_model"),
			Timeout:          viper.GetDuration("llm.timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.LLM.OpenAIAPIKey = openAIKey
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.Auth.JWTSecret = jwtSecret
	}

	return config, nil
}

// GetDSN returns the Postgres DSN for the remote store of record.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
