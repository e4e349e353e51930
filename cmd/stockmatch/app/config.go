package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/stockmatch/stockmatch/internal/server"
	"github.com/stockmatch/stockmatch/internal/sources/flowhub"
	"github.com/stockmatch/stockmatch/internal/sources/googlesheets"
	"github.com/stockmatch/stockmatch/pkg/constants"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/orders"
	"github.com/stockmatch/stockmatch/pkg/pos"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file. Credentials and store or
// spreadsheet identifiers have no defaults.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Sources
	Flowhub  flowhub.Config
	Sheets   googlesheets.Config
	Workbook string

	// Matching and orders
	OverridesFile       string
	POSRules            POSRules
	OrderPolicy         orders.Policy
	Company             string
	OrderPrefix         string
	AutoRefresh         bool
	AutoRefreshInterval time.Duration

	Server server.Config

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// POSRules are the house-product filters for live POS inventory and for
// POS exports. Each list set under pos_rules.api or pos_rules.csv replaces
// the built-in list.
type POSRules struct {
	API pos.Rules
	CSV pos.Rules
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string][]string{
	"flowhub.client_id":       {"FLOWHUB_CLIENT_ID"},
	"flowhub.api_key":         {"FLOWHUB_API_KEY"},
	"flowhub.base_url":        {"FLOWHUB_BASE_URL"},
	"flowhub.locations":       {"FLOWHUB_LOCATIONS"},
	"sheets.spreadsheet_id":   {"GOOGLE_SHEETS_SPREADSHEET_ID"},
	"sheets.credentials_file": {"GOOGLE_APPLICATION_CREDENTIALS"},
	"sheets.credentials_json": {"GOOGLE_CREDENTIALS_JSON"},
	"sheets.project_id":       {"GCP_PROJECT_ID"},
	"sheets.client_email":     {"GCP_CLIENT_EMAIL"},
	"sheets.private_key":      {"GCP_PRIVATE_KEY"},
	"workbook":                {"STOCKMATCH_WORKBOOK"},
	"overrides_file":          {"STOCKMATCH_OVERRIDES_FILE"},
	"company":                 {"STOCKMATCH_COMPANY"},
	"order_prefix":            {"STOCKMATCH_ORDER_PREFIX"},
	"auto_refresh":            {"STOCKMATCH_AUTO_REFRESH"},
	"auto_refresh_interval":   {"STOCKMATCH_AUTO_REFRESH_INTERVAL"},
	"server.host":             {"HTTP_HOST"},
	"server.port":             {"HTTP_PORT", "PORT"},
	"server.cors_origins":     {"CORS_ORIGINS"},
	"server.cache_ttl":        {"CACHE_TTL"},
	"log_level":               {"LOG_LEVEL"},
	"log_format":              {"LOG_FORMAT"},
	"log_output":              {"LOG_OUTPUT"},
	"format":                  {"STOCKMATCH_FORMAT"},
	"server.path_prefix":      {"API_PATH_PREFIX"},
	"server.max_upload_bytes": {"MAX_UPLOAD_BYTES"},
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables
//  3. .env and .env.local files
//  4. Config file (configFile, or ~/.stockmatch.yaml / ./.stockmatch.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, errors.NewConfigError("config", "bind "+key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".stockmatch")
		// A missing default config file is fine.
		_ = v.ReadInConfig()
	}

	locations, err := loadLocations(v)
	if err != nil {
		return nil, err
	}
	policy, err := loadOrderPolicy(v)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		Flowhub: flowhub.Config{
			ClientID:  v.GetString("flowhub.client_id"),
			APIKey:    v.GetString("flowhub.api_key"),
			BaseURL:   v.GetString("flowhub.base_url"),
			Locations: locations,
		},
		Sheets: googlesheets.Config{
			SpreadsheetID:   v.GetString("sheets.spreadsheet_id"),
			CredentialsFile: v.GetString("sheets.credentials_file"),
			CredentialsJSON: v.GetString("sheets.credentials_json"),
			ProjectID:       v.GetString("sheets.project_id"),
			ClientEmail:     v.GetString("sheets.client_email"),
			PrivateKey:      v.GetString("sheets.private_key"),
		},
		Workbook: v.GetString("workbook"),

		OverridesFile: v.GetString("overrides_file"),
		POSRules: POSRules{
			API: loadPOSRules(v, "pos_rules.api", pos.APIRules()),
			CSV: loadPOSRules(v, "pos_rules.csv", pos.CSVRules()),
		},
		OrderPolicy:         policy,
		Company:             v.GetString("company"),
		OrderPrefix:         v.GetString("order_prefix"),
		AutoRefresh:         v.GetBool("auto_refresh"),
		AutoRefreshInterval: v.GetDuration("auto_refresh_interval"),

		Server: server.Config{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			PathPrefix:      v.GetString("server.path_prefix"),
			CORSOrigins:     stringList(v, "server.cors_origins"),
			CacheTTL:        v.GetDuration("server.cache_ttl"),
			MaxRequestBytes: v.GetInt64("server.max_request_bytes"),
			MaxUploadBytes:  v.GetInt64("server.max_upload_bytes"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
		},

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	srv := server.DefaultConfig()
	v.SetDefault("flowhub.base_url", constants.DefaultFlowhubURL)
	v.SetDefault("company", "Production Order")
	v.SetDefault("order_prefix", orders.DefaultPrefix)
	v.SetDefault("auto_refresh_interval", constants.DefaultInventoryCacheTTL)
	v.SetDefault("server.host", srv.Host)
	v.SetDefault("server.port", srv.Port)
	v.SetDefault("server.path_prefix", srv.PathPrefix)
	v.SetDefault("server.cache_ttl", srv.CacheTTL)
	v.SetDefault("server.max_request_bytes", srv.MaxRequestBytes)
	v.SetDefault("server.max_upload_bytes", srv.MaxUploadBytes)
	v.SetDefault("server.read_timeout", srv.ReadTimeout)
	v.SetDefault("server.write_timeout", srv.WriteTimeout)
	v.SetDefault("server.idle_timeout", srv.IdleTimeout)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// loadLocations reads flowhub.locations as a map from the config file, or
// as "name=id,name=id" from FLOWHUB_LOCATIONS.
func loadLocations(v *viper.Viper) (map[string]string, error) {
	switch raw := v.Get("flowhub.locations").(type) {
	case nil:
		return map[string]string{}, nil
	case string:
		return flowhub.ParseLocations(raw)
	default:
		return v.GetStringMapString("flowhub.locations"), nil
	}
}

// loadPOSRules replaces each list of rules that is set under key.
func loadPOSRules(v *viper.Viper, key string, rules pos.Rules) pos.Rules {
	for name, list := range map[string]*[]string{
		"include":     &rules.Include,
		"skip":        &rules.Skip,
		"third_party": &rules.ThirdParty,
	} {
		if v.IsSet(key + "." + name) {
			*list = stringList(v, key+"."+name)
		}
	}
	return rules
}

// loadOrderPolicy overlays order_policy on the default policy. Threshold
// and quantity maps are keyed by category name.
func loadOrderPolicy(v *viper.Viper) (orders.Policy, error) {
	policy := orders.DefaultPolicy()
	for name, value := range map[string]*float64{
		"default_threshold": &policy.DefaultThreshold,
		"default_quantity":  &policy.DefaultQuantity,
	} {
		key := "order_policy." + name
		if !v.IsSet(key) {
			continue
		}
		if *value = v.GetFloat64(key); *value < 0 {
			return orders.Policy{}, errors.NewValidationError(key, *value, "must not be negative")
		}
	}

	for name, target := range map[string]map[inventory.Category]float64{
		"thresholds": policy.Thresholds,
		"quantities": policy.Quantities,
	} {
		key := "order_policy." + name
		for raw := range v.GetStringMap(key) {
			category, ok := inventory.ParseCategory(raw)
			if !ok {
				return orders.Policy{}, errors.NewValidationError(key, raw, "unknown category")
			}
			value := v.GetFloat64(key + "." + raw)
			if value < 0 {
				return orders.Policy{}, errors.NewValidationError(key+"."+raw, value, "must not be negative")
			}
			target[category] = value
		}
	}
	return policy, nil
}

// stringList reads a list from the config file, or a comma-separated
// string from the environment.
func stringList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// UpdateFromFlags applies parsed global flags, which take precedence over
// every other source.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	switch {
	case logLevel != "":
		c.LogLevel = logLevel
	case verbose || quiet:
		// The shortcuts outrank LOG_LEVEL.
		c.LogLevel = ""
	}
}

// loadEnvFiles loads .env.local and .env. godotenv never overrides a set
// variable, so the process environment wins, then .env.local, then .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
