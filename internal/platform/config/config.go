package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration, populated from config files and
// BACKOFFICE_-prefixed environment variables.
type Config struct {
	DataDir string `mapstructure:"DATA_DIR"`

	PayablesFile    string `mapstructure:"PAYABLES_FILE"`
	ReceivablesFile string `mapstructure:"RECEIVABLES_FILE"`
	CategoriesFile  string `mapstructure:"CATEGORIES_FILE"`
	UsersFile       string `mapstructure:"USERS_FILE"`
	ProductsFile    string `mapstructure:"PRODUCTS_FILE"`
	MovementsFile   string `mapstructure:"MOVEMENTS_FILE"`
	CustomersFile   string `mapstructure:"CUSTOMERS_FILE"`
	OrdersFile      string `mapstructure:"ORDERS_FILE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

// LoadConfig reads configuration from an optional app.env in the given path
// and from the environment. Environment variables win over file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("PAYABLES_FILE", "contas_pagar.json")
	v.SetDefault("RECEIVABLES_FILE", "contas_receber.json")
	v.SetDefault("CATEGORIES_FILE", "categorias.json")
	v.SetDefault("USERS_FILE", "usuarios.json")
	v.SetDefault("PRODUCTS_FILE", "produtos.json")
	v.SetDefault("MOVEMENTS_FILE", "movimentacoes.json")
	v.SetDefault("CUSTOMERS_FILE", "clientes.json")
	v.SetDefault("ORDERS_FILE", "pedidos.json")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// PayablesPath and friends resolve collection file names against the data dir.
func (c *Config) PayablesPath() string    { return filepath.Join(c.DataDir, c.PayablesFile) }
func (c *Config) ReceivablesPath() string { return filepath.Join(c.DataDir, c.ReceivablesFile) }
func (c *Config) CategoriesPath() string  { return filepath.Join(c.DataDir, c.CategoriesFile) }
func (c *Config) UsersPath() string       { return filepath.Join(c.DataDir, c.UsersFile) }
func (c *Config) ProductsPath() string    { return filepath.Join(c.DataDir, c.ProductsFile) }
func (c *Config) MovementsPath() string   { return filepath.Join(c.DataDir, c.MovementsFile) }
func (c *Config) CustomersPath() string   { return filepath.Join(c.DataDir, c.CustomersFile) }
func (c *Config) OrdersPath() string      { return filepath.Join(c.DataDir, c.OrdersFile) }
