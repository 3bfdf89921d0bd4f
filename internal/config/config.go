package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/snapshot"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Application ApplicationConfig `yaml:"application"`
	API         APIConfig         `yaml:"api"`
	Reconcile   ReconcileConfig   `yaml:"reconcile"`
	Amounts     AmountsConfig     `yaml:"amounts"`
	Payee       model.Payee       `yaml:"payee"`
}

// ApplicationConfig identifies the application under test.
type ApplicationConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

// APIConfig selects the customer whose accounts are fetched.
type APIConfig struct {
	CustomerID int `yaml:"customer_id"`
}

// ReconcileConfig controls snapshot normalization and the agreement check.
// These are rendering conventions of one currency/locale, so they live in
// configuration rather than code.
type ReconcileConfig struct {
	CurrencySymbol string  `yaml:"currency_symbol"`
	GroupSeparator string  `yaml:"group_separator"`
	Placeholder    string  `yaml:"placeholder"`
	TotalsLabel    string  `yaml:"totals_label"`
	Tolerance      float64 `yaml:"tolerance"`
}

// AmountsConfig holds the fixed amounts used for transfers and bill
// payments.
type AmountsConfig struct {
	Transfer float64 `yaml:"transfer"`
	Bill     float64 `yaml:"bill"`
}

// Env holds runtime-only settings read from the environment. The session
// token is deliberately env-only: it is a live credential and never belongs
// in tally.yaml.
type Env struct {
	BaseURL    string `envconfig:"BASE_URL"`
	Session    string `envconfig:"SESSION"`
	CustomerID int    `envconfig:"CUSTOMER_ID"`
}

// LoadEnv reads TALLY_* environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process("tally", &e); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	return e, nil
}

// ApplyEnv overrides file settings with any that were set in the
// environment.
func (c *Config) ApplyEnv(e Env) {
	if e.BaseURL != "" {
		c.Application.BaseURL = e.BaseURL
	}
	if e.CustomerID != 0 {
		c.API.CustomerID = e.CustomerID
	}
}

// Options converts the reconcile section into snapshot Options.
func (c *Config) Options() snapshot.Options {
	return snapshot.Options{
		CurrencySymbol: c.Reconcile.CurrencySymbol,
		GroupSeparator: c.Reconcile.GroupSeparator,
		Placeholder:    c.Reconcile.Placeholder,
		TotalsLabel:    c.Reconcile.TotalsLabel,
		Tolerance:      decimal.NewFromFloat(c.Reconcile.Tolerance),
	}
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config preset for the public ParaBank demo.
func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:    "ParaBank",
			BaseURL: "https://parabank.parasoft.com/parabank",
		},
		API: APIConfig{
			CustomerID: 12212,
		},
		Reconcile: ReconcileConfig{
			CurrencySymbol: "$",
			GroupSeparator: ",",
			Placeholder:    " ",
			TotalsLabel:    "Total",
			Tolerance:      0.01,
		},
		Amounts: AmountsConfig{
			Transfer: 1000,
			Bill:     500,
		},
		Payee: model.Payee{
			Name: "Electricity Company",
			Address: model.Address{
				Street:  "123 Main St",
				City:    "New York",
				State:   "NY",
				ZipCode: "10001",
			},
			PhoneNumber: "1234567890",
		},
	}
}
