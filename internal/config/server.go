package config

const (
	defaultHTTPAddr     = ":8080"
	defaultAcceptorAddr = "127.0.0.1:9090"
)

type ServerConfig struct {
	HTTPAddr     string `yaml:"http-addr"`
	AcceptorAddr string `yaml:"acceptor-addr"`
}

func (s *ServerConfig) HTTP() string {
	return s.HTTPAddr
}

// Acceptor is the gRPC address the bot listens on and the reporter delivers reports to.
func (s *ServerConfig) Acceptor() string {
	return s.AcceptorAddr
}
