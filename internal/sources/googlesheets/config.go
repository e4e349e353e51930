package googlesheets

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stockmatch/stockmatch/pkg/errors"
)

const (
	service = "google_sheets"

	// ReadOnlyScope is the only scope the source requests.
	ReadOnlyScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

	tokenURI = "https://oauth2.googleapis.com/token"
)

var validate = validator.New()

// Config identifies the spreadsheet and how to authenticate. Credentials are
// taken, in order, from CredentialsJSON, the ClientEmail/PrivateKey pair,
// CredentialsFile, then Application Default Credentials.
type Config struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id" validate:"required"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsJSON string `mapstructure:"credentials_json"`

	ProjectID   string `mapstructure:"project_id"`
	ClientEmail string `mapstructure:"client_email" validate:"required_with=PrivateKey"`
	PrivateKey  string `mapstructure:"private_key" validate:"required_with=ClientEmail"`
}

func (c Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "SpreadsheetID" {
			return errors.NewConfigError(service, "set GOOGLE_SHEETS_SPREADSHEET_ID", errors.ErrCredentialsRequired)
		}
		return errors.NewConfigError(service, "GCP_CLIENT_EMAIL and GCP_PRIVATE_KEY must be set together", err)
	}
	return nil
}

// serviceAccountJSON assembles a service-account key from inline pieces.
// Escaped newlines in the private key, as stored in env files, are expanded.
func (c Config) serviceAccountJSON() ([]byte, error) {
	if c.CredentialsJSON != "" {
		return []byte(c.CredentialsJSON), nil
	}
	if c.ClientEmail == "" {
		return nil, nil
	}
	return json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   c.ProjectID,
		"private_key":  strings.ReplaceAll(c.PrivateKey, `\n`, "\n"),
		"client_email": c.ClientEmail,
		"token_uri":    tokenURI,
	})
}
