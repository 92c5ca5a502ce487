package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ServerCfg holds the settings of the HTTP server.
type ServerCfg struct {
	Port int `env:"PORT" envDefault:"8080"`
}

// DatabaseCfg holds the connection parameters of the MySQL database.
type DatabaseCfg struct {
	Host     string `env:"DBHOST" envDefault:"localhost"`
	User     string `env:"DBUSER"`
	Password string `env:"DBPWD"`
	Name     string `env:"DBNAME" envDefault:"test"`
}

// SMTPCfg holds the connection parameters of the outgoing mail account.
// Secure selects an implicit TLS connection (typically port 465); without
// it the client connects in plain text and upgrades via STARTTLS if the
// server offers it.
type SMTPCfg struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Secure   bool   `env:"SMTP_SECURE" envDefault:"false"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"EMAIL_FROM"`
}

// RoutingCfg holds the destination mailbox for each disposition that routes
// to one. "General Enquiry" has no destination on purpose and therefore no
// entry here.
type RoutingCfg struct {
	CustomerSupport   string `env:"ROUTE_CUSTOMER_SUPPORT" envDefault:"ayan@multycomm.com"`
	ConsultantSupport string `env:"ROUTE_CONSULTANT_SUPPORT" envDefault:"akash@multycomm.com"`
	B2BLead           string `env:"ROUTE_B2B_LEAD" envDefault:"deepak@multycomm.com"`
	NewLead           string `env:"ROUTE_NEW_LEAD" envDefault:"aveek@multycomm.com"`
}

// Config is the complete process configuration. It is read once at startup
// and treated as immutable afterwards.
type Config struct {
	Server   ServerCfg
	Database DatabaseCfg
	SMTP     SMTPCfg
	Routing  RoutingCfg
}

// Build reads the configuration from the environment. A .env file in the
// working directory is loaded first if present, so local development does
// not need exported variables.
func Build() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	return cfg, nil
}
