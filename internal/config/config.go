package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "data/config.yaml"
	configFileEnvKey  = "CONFIG_FILE"
	tokenEnvKey       = "TELEGRAM_TOKEN"
	pgPasswordEnvKey  = "POSTGRES_PASSWORD"
)

type config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	App       AppConfig       `yaml:"app"`
	Storage   StorageConfig   `yaml:"storage"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Memcached MemcachedConfig `yaml:"memcached"`
	Server    ServerConfig    `yaml:"server"`
}

type Service struct {
	config config
}

// New reads the YAML config file and applies secrets from the environment (.env is honoured).
func New() (*Service, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "loading .env")
	}

	path := os.Getenv(configFileEnvKey)
	if path == "" {
		path = defaultConfigFile
	}

	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	s, err := Parse(rawYAML)
	if err != nil {
		return nil, err
	}

	if token := os.Getenv(tokenEnvKey); token != "" {
		s.config.Telegram.ApiToken = token
	}
	if pswd := os.Getenv(pgPasswordEnvKey); pswd != "" {
		s.config.Postgres.Pswd = pswd
	}
	return s, nil
}

func Parse(rawYAML []byte) (*Service, error) {
	s := &Service{}
	s.config.setDefaults()

	err := yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	if err = s.config.validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return s, nil
}

func (c *config) setDefaults() {
	c.App.setDefaults()
	c.Storage.Driver = DriverPostgres
	c.Server.HTTPAddr = defaultHTTPAddr
	c.Server.AcceptorAddr = defaultAcceptorAddr
}

func (c *config) validate() error {
	if err := c.App.validate(); err != nil {
		return err
	}
	return c.Storage.validate()
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Storage() *StorageConfig {
	return &s.config.Storage
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.config.Postgres
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) Server() *ServerConfig {
	return &s.config.Server
}
