package config

import "fmt"

const dsnTemplate = "user=%s password=%s host=%s port=%d dbname=%s sslmode=%s"

type PostgresConfig struct {
	Hostname string `yaml:"host"`
	PortNum  int    `yaml:"port"`
	Db       string `yaml:"db"`
	User     string `yaml:"username"`
	Pswd     string `yaml:"password"`
	SSL      string `yaml:"sslmode"`
}

// DSN builds a lib/pq connection string, defaulting the port to 5432 and sslmode to disable.
func (s *PostgresConfig) DSN() string {
	port := s.PortNum
	if port == 0 {
		port = 5432
	}
	ssl := s.SSL
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf(dsnTemplate, s.User, s.Pswd, s.Hostname, port, s.Db, ssl)
}
