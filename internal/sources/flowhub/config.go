package flowhub

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stockmatch/stockmatch/pkg/constants"
	"github.com/stockmatch/stockmatch/pkg/errors"
)

var validate = validator.New()

// Config holds the Flowhub credentials and the store locations they can
// read. Nothing here has a default except BaseURL.
type Config struct {
	ClientID string `mapstructure:"client_id" validate:"required"`
	APIKey   string `mapstructure:"api_key" validate:"required"`
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`

	// Locations maps a store name to its Flowhub location id.
	Locations map[string]string `mapstructure:"locations"`
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultFlowhubURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.NewConfigError(service, "invalid configuration", err)
		}
		fields := make([]string, 0, len(verrs))
		missing := false
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			if fe.Tag() == "required" && fe.Field() != "BaseURL" {
				missing = true
			}
		}
		cause := errors.ErrInvalidInput
		if missing {
			cause = errors.ErrCredentialsRequired
		}
		return errors.NewConfigError(service,
			"set FLOWHUB_CLIENT_ID and FLOWHUB_API_KEY",
			fmt.Errorf("%w: %s", cause, strings.Join(fields, ", ")))
	}

	normalized := make(map[string]string, len(c.Locations))
	for name, id := range c.Locations {
		normalized[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(id)
	}
	c.Locations = normalized
	return nil
}

// LocationNames returns the configured store names, sorted.
func (c Config) LocationNames() []string {
	names := make([]string, 0, len(c.Locations))
	for name := range c.Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLocations reads "name=id,name=id" pairs, the form used by the
// FLOWHUB_LOCATIONS environment variable.
func ParseLocations(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, id, ok := strings.Cut(part, "=")
		name, id = strings.TrimSpace(name), strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			return nil, errors.NewValidationError("locations", part, "expected name=id")
		}
		out[strings.ToLower(name)] = id
	}
	return out, nil
}
