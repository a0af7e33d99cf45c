package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/Veraticus/agrotrade/internal/grid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// APITransport talks to the Google Sheets v4 API.
type APITransport struct {
	service *sheets.Service
	logger  *slog.Logger
}

// NewAPITransport creates a transport authenticated the way config says.
func NewAPITransport(ctx context.Context, config Config, logger *slog.Logger, opts ...option.ClientOption) (*APITransport, error) {
	clientOpts, err := clientOptions(ctx, config)
	if err != nil {
		return nil, err
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &APITransport{
		service: service,
		logger:  logger,
	}, nil
}

// clientOptions picks API-key, service-account or OAuth2 refresh-token auth.
func clientOptions(ctx context.Context, config Config) ([]option.ClientOption, error) {
	switch {
	case config.APIKey != "":
		return []option.ClientOption{option.WithAPIKey(config.APIKey)}, nil

	case config.ServiceAccountPath != "":
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
		return []option.ClientOption{option.WithHTTPClient(httpClient)}, nil

	case config.ClientID != "" && config.ClientSecret != "" && config.RefreshToken != "":
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		httpClient := oauth2.NewClient(ctx, client.TokenSource(ctx, token))
		return []option.ClientOption{option.WithHTTPClient(httpClient)}, nil
	}

	return nil, fmt.Errorf("%w: no Google Sheets credentials configured", common.ErrMissingConfig)
}

// Read implements Transport.
func (a *APITransport) Read(ctx context.Context, sheetID, rng string) ([][]string, error) {
	resp, err := a.service.Spreadsheets.Values.Get(sheetID, rng).
		MajorDimension("ROWS").
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError("read", sheetID, rng, err)
	}

	a.logger.Debug("read range", "sheet_id", sheetID, "range", rng, "rows", len(resp.Values))
	return grid.Cells(resp.Values), nil
}

// Write implements Transport.
func (a *APITransport) Write(ctx context.Context, sheetID, rng string, rows [][]any, opt ValueInputOption) error {
	valueRange := &sheets.ValueRange{
		Range:          rng,
		MajorDimension: "ROWS",
		Values:         rows,
	}

	_, err := a.service.Spreadsheets.Values.Update(sheetID, rng, valueRange).
		ValueInputOption(string(opt)).
		Context(ctx).
		Do()
	if err != nil {
		return apiError("write", sheetID, rng, err)
	}

	a.logger.Debug("wrote range", "sheet_id", sheetID, "range", rng, "rows", len(rows))
	return nil
}

// apiError keeps the HTTP status and message of a failed API call.
func apiError(op, sheetID, rng string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	te := &common.TransportError{Op: op, SheetID: sheetID, Range: rng, Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		te.Status = gerr.Code
		te.Message = gerr.Message
	}
	return te
}
