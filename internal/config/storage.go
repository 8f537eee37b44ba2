package config

import "fmt"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type StorageConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite-path"`
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case DriverPostgres, DriverMemory:
		return nil
	case DriverSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite-path is required for sqlite driver")
		}
		return nil
	}
	return fmt.Errorf("unknown storage driver %q", s.Driver)
}

func (s *StorageConfig) DriverName() string {
	return s.Driver
}

func (s *StorageConfig) Path() string {
	return s.SQLitePath
}
