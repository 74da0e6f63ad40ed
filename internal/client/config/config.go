// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/bankd/internal/flagx"
)

// Config holds runtime settings for the bankd CLI client.
type Config struct {
	ServerAddr string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8080"
}

// LoadConfig builds a Config from defaults, the BANKD_SERVER environment
// variable, and the -a flag, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	if v, ok := os.LookupEnv("BANKD_SERVER"); ok {
		cfg.ServerAddr = v
	}

	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "server base URL")
	_ = fs.Parse(args)

	return cfg
}
