package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type Config struct {
	Env         string
	Logger      LoggerConfig
	DB          DBConfig
	Server      ServerConfig
	Redis       RedisConfig
	JWT         JWTConfig
	GoogleOAuth GoogleOAuthConfig
	Session     SessionConfig
	Leaderboard LeaderboardConfig
}

type LoggerConfig struct {
	Level string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// SessionConfig holds the per-question-kind countdown budgets in seconds.
// Keys are question kind names (multiple_choice, true_false, fill_blank,
// identification, essay); missing kinds fall back to domain defaults.
type SessionConfig struct {
	Countdowns map[string]int
}

type LeaderboardConfig struct {
	CacheTTL time.Duration
	Limit    int
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

	viper.SetDefault("env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("jwt.access_token_ttl", 15)
	viper.SetDefault("jwt.refresh_token_ttl", 10080)
	viper.SetDefault("leaderboard.cache_ttl", 60)
	viper.SetDefault("leaderboard.limit", 20)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	countdowns := make(map[string]int)
	for kind, seconds := range viper.GetStringMap("session.countdowns") {
		countdowns[kind] = cast.ToInt(seconds)
	}

	config := &Config{
		Env: viper.GetString("env"),
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.sslmode"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl") * time.Minute,
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl") * time.Minute,
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     viper.GetString("google_oauth.client_id"),
			ClientSecret: viper.GetString("google_oauth.client_secret"),
			RedirectURL:  viper.GetString("google_oauth.redirect_url"),
		},
		Session: SessionConfig{
			Countdowns: countdowns,
		},
		Leaderboard: LeaderboardConfig{
			CacheTTL: viper.GetDuration("leaderboard.cache_ttl") * time.Second,
			Limit:    viper.GetInt("leaderboard.limit"),
		},
	}

	// Environment variables win over the file for deploy-sensitive values.
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
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}

	return config, nil
}

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
