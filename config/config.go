package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "DASHBOARD_CONFIG_FILE"

type catalogAPI struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type dashboard struct {
	PageSize int `mapstructure:"page_size"`
}

type brokerTLS struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	ActivityTopic      string    `mapstructure:"activity_topic"`
	TLS                brokerTLS `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	CatalogAPI     catalogAPI `mapstructure:"catalog_api"`
	Dashboard      dashboard  `mapstructure:"dashboard"`
	Broker         broker     `mapstructure:"broker"`
}

// BrokerTLSEnabled reports whether mutual TLS towards the broker is
// configured.
func (c Config) BrokerTLSEnabled() bool {
	tls := c.Broker.TLS
	return tls.CAFile != "" && tls.CertFile != "" && tls.KeyFile != ""
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q

	CatalogAPI:
	BaseURL=%q
	Timeout=%q

	Dashboard:
	PageSize=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ActivityTopic=%q
	TLSEnabled=%v

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CatalogAPI.BaseURL,
		c.CatalogAPI.Timeout,
		c.Dashboard.PageSize,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ActivityTopic,
		c.BrokerTLSEnabled(),
	)
}
