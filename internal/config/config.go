package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const configFile = "data/config.yaml"

type config struct {
	App    AppConfig    `yaml:"app"`
	Sheets SheetsConfig `yaml:"sheets"`
}

type Service struct {
	config   config
	line     LineConfig
	postgres PostgresConfig
}

// New reads app settings from the yaml file and secrets from the
// environment. The environment is read once here, not per request.
func New() (*Service, error) {
	s := &Service{}

	rawYAML, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	s.config.App.loadEnv()
	s.config.Sheets.loadEnv()
	s.line.loadEnv()
	s.postgres.loadEnv()

	if err = s.line.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Sheets() *SheetsConfig {
	return &s.config.Sheets
}

func (s *Service) Line() *LineConfig {
	return &s.line
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.postgres
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
