// Package googlesheets reads production inventory tabs from a Google
// spreadsheet through the Sheets v4 API.
package googlesheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/stockmatch/stockmatch/pkg/constants"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// Source is a sheets.TabSource backed by one spreadsheet.
type Source struct {
	id  string
	svc *gsheets.Service
}

var _ sheets.TabSource = (*Source)(nil)

// Option configures New.
type Option func(*sourceOptions)

type sourceOptions struct {
	client      []option.ClientOption
	credentials *auth.Credentials
	skipAuth    bool
	timeout     time.Duration
}

// WithClientOptions passes extra options to the Sheets client.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(o *sourceOptions) { o.client = append(o.client, opts...) }
}

// WithCredentials uses creds instead of detecting them.
func WithCredentials(creds *auth.Credentials) Option {
	return func(o *sourceOptions) { o.credentials = creds }
}

// WithoutAuthentication skips credential detection. Only useful against a
// local endpoint.
func WithoutAuthentication() Option {
	return func(o *sourceOptions) { o.skipAuth = true }
}

// New validates cfg, resolves credentials and creates the Sheets client.
func New(ctx context.Context, cfg Config, opts ...Option) (*Source, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := &sourceOptions{timeout: constants.CredentialsTimeout}
	for _, opt := range opts {
		opt(o)
	}

	clientOpts := append([]option.ClientOption{}, o.client...)
	switch {
	case o.skipAuth:
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	default:
		creds := o.credentials
		if creds == nil {
			var err error
			if creds, err = detectCredentials(ctx, cfg, o.timeout); err != nil {
				return nil, err
			}
		}
		clientOpts = append(clientOpts, option.WithAuthCredentials(creds))
	}

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.NewConfigError(service, "failed to create client", err)
	}
	return &Source{id: cfg.SpreadsheetID, svc: svc}, nil
}

// detectCredentials runs credential detection with a deadline, since
// DetectDefault may query the metadata server and does not take a context.
func detectCredentials(ctx context.Context, cfg Config, timeout time.Duration) (*auth.Credentials, error) {
	keyJSON, err := cfg.serviceAccountJSON()
	if err != nil {
		return nil, errors.NewConfigError(service, "invalid service account", err)
	}

	type result struct {
		creds *auth.Credentials
		err   error
	}
	done := make(chan result, 1)
	go func() {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes:          []string{ReadOnlyScope},
			CredentialsFile: cfg.CredentialsFile,
			CredentialsJSON: keyJSON,
		})
		done <- result{creds: creds, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, errors.NewConfigError(service,
				"no valid credentials found, set GOOGLE_APPLICATION_CREDENTIALS or GCP_CLIENT_EMAIL and GCP_PRIVATE_KEY",
				fmt.Errorf("%w: %w", errors.ErrCredentialsRequired, res.err))
		}
		return res.creds, nil
	case <-time.After(timeout):
		return nil, errors.NewConfigError(service, "credential detection timed out", errors.ErrTimeout)
	case <-ctx.Done():
		return nil, errors.NewConfigError(service, "credential detection cancelled", ctx.Err())
	}
}

// Tabs lists the spreadsheet's tabs in order.
func (s *Source) Tabs(ctx context.Context) ([]sheets.TabInfo, error) {
	ss, err := s.svc.Spreadsheets.Get(s.id).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, apiError(err, "spreadsheets.get")
	}
	tabs := make([]sheets.TabInfo, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties == nil {
			continue
		}
		tabs = append(tabs, sheets.TabInfo{Name: sh.Properties.Title, GID: sh.Properties.SheetId})
	}
	return tabs, nil
}

// Rows reads rng from tab as trimmed strings.
func (s *Source) Rows(ctx context.Context, tab string, rng sheets.Range) ([][]string, error) {
	vr, err := s.svc.Spreadsheets.Values.Get(s.id, sheets.A1(tab, rng)).Context(ctx).Do()
	if err != nil {
		return nil, apiError(err, "values.get")
	}
	rows := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = strings.TrimSpace(fmt.Sprint(cell))
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

func apiError(err error, endpoint string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &errors.APIError{
			Service:    service,
			StatusCode: gerr.Code,
			Message:    gerr.Message,
			Endpoint:   endpoint,
			Err:        err,
		}
	}
	return errors.WrapResource("call", service, endpoint, err)
}
