package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/logging"
)

// maxErrorBody caps how much of a failed response is kept in an APIError.
const maxErrorBody = 512

// DecodeResponse reads resp and decodes a 200 JSON body into target.
// A 401 becomes an AuthenticationError and any other non-200 status an
// APIError naming service.
func DecodeResponse(resp *http.Response, service string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Debug().Err(err).Str("service", service).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", service+" response body", err)
	}

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.Path
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.NewAuthenticationError(service, "api_key", "unauthorized, check client id and key",
			&errors.APIError{Service: service, StatusCode: resp.StatusCode, Message: truncate(body), Endpoint: endpoint})
	case resp.StatusCode != http.StatusOK:
		return &errors.APIError{Service: service, StatusCode: resp.StatusCode, Message: truncate(body), Endpoint: endpoint}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", service+" response", err)
	}
	return nil
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
