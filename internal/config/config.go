package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone - локация, в которой живут все "локальные" даты клиники.
// Устанавливается один раз при загрузке конфигурации.
var TimeZone = time.UTC

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Argentina/Buenos_Aires"`
	}

	HTTP struct {
		Port         string `env:"HTTP_SERVER_PORT" envDefault:"3000"`
		Host         string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
		CorsOrigins  string `env:"HTTP_CORS_ORIGINS" envDefault:"http://localhost:3000"`
		AllowOrigins []string
	}

	Backend struct {
		URL            string `env:"BACKEND_URL" envDefault:"http://localhost:8080"`
		TimeoutSeconds int    `env:"BACKEND_TIMEOUT_SECONDS" envDefault:"30"`
	}

	Session struct {
		CookieName   string `env:"SESSION_COOKIE_NAME" envDefault:"clinic_session"`
		TTLHours     int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
		CookieSecure bool   `env:"SESSION_COOKIE_SECURE"`
	}

	Booking struct {
		// Задержка перед редиректом на список приемов, чтобы пользователь успел прочитать сообщение
		RedirectDelaySeconds int    `env:"BOOKING_REDIRECT_DELAY_SECONDS" envDefault:"2"`
		WorkdayStart         string `env:"BOOKING_WORKDAY_START" envDefault:"08:00"`
		WorkdayEnd           string `env:"BOOKING_WORKDAY_END" envDefault:"18:00"`
		DescriptionLimit     int    `env:"BOOKING_DESCRIPTION_LIMIT" envDefault:"500"`
	}

	RabbitMQ struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		URL     string `env:"RABBITMQ_URL"`
		Queue   string `env:"RABBITMQ_QUEUE" envDefault:"clinic.directory.events"`
	}

	Cache struct {
		Enabled          bool `env:"CACHE_ENABLED"`
		AppointmentsSize int  `env:"CACHE_APPOINTMENTS_SIZE" envDefault:"1000"`
		DirectoryTTLMin  int  `env:"CACHE_DIRECTORY_TTL_MINUTES" envDefault:"10"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разделение разрешенных CORS-источников
	cfg.HTTP.AllowOrigins = []string{}
	for _, origin := range strings.Split(cfg.HTTP.CorsOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.HTTP.AllowOrigins = append(cfg.HTTP.AllowOrigins, origin)
		}
	}

	// Загружаем таймзону клиники, при ошибке остаемся в UTC
	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		TimeZone = loc
	}

	return cfg, nil
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

func (c *Config) RedirectDelay() time.Duration {
	return time.Duration(c.Booking.RedirectDelaySeconds) * time.Second
}

func (c *Config) DirectoryTTL() time.Duration {
	return time.Duration(c.Cache.DirectoryTTLMin) * time.Minute
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
