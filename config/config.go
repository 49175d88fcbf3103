package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type shop struct {
	OriginCEP           string   `mapstructure:"origin_cep"`
	LocalCEPPrefixes    []string `mapstructure:"local_cep_prefixes"`
	LocalDeliveryPrice  string   `mapstructure:"local_delivery_price"`
	FreeShippingMinimum string   `mapstructure:"free_shipping_minimum"`
	StatementDescriptor string   `mapstructure:"statement_descriptor"`
}

type carriers struct {
	MelhorEnvioURL   string `mapstructure:"melhor_envio_url"`
	MelhorEnvioToken string `mapstructure:"melhor_envio_token"`
}

type payments struct {
	MercadoPagoURL   string `mapstructure:"mercado_pago_url"`
	MercadoPagoToken string `mapstructure:"mercado_pago_token"`
	WebhookSecret    string `mapstructure:"webhook_secret"`
	BackURLBase      string `mapstructure:"back_url_base"`
}

type topics struct {
	OrderEvents      string `mapstructure:"order_events"`
	OrderStatusTable string `mapstructure:"order_status_table"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	ViaCEPURL      string     `mapstructure:"viacep_url"`
	Shop           shop       `mapstructure:"shop"`
	Carriers       carriers   `mapstructure:"carriers"`
	Payments       payments   `mapstructure:"payments"`
	Broker         broker     `mapstructure:"broker"`
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
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q
	ViaCEPURL=%q

	Shop:
	OriginCEP=%q
	LocalCEPPrefixes=%q
	LocalDeliveryPrice=%q
	FreeShippingMinimum=%q
	StatementDescriptor=%q

	Carriers:
	MelhorEnvioURL=%q

	Payments:
	MercadoPagoURL=%q
	BackURLBase=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		OrderEvents=%q
		OrderStatusTable=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.ViaCEPURL,
		c.Shop.OriginCEP,
		c.Shop.LocalCEPPrefixes,
		c.Shop.LocalDeliveryPrice,
		c.Shop.FreeShippingMinimum,
		c.Shop.StatementDescriptor,
		c.Carriers.MelhorEnvioURL,
		c.Payments.MercadoPagoURL,
		c.Payments.BackURLBase,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.OrderEvents,
		c.Broker.Topics.OrderStatusTable,
	)
}
