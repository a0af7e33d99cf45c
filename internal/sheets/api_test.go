package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Veraticus/agrotrade/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func newTestAPITransport(t *testing.T, handler http.HandlerFunc) *APITransport {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config := DefaultConfig()
	config.APIKey = "test-key"

	transport, err := NewAPITransport(context.Background(), config, common.DiscardLogger(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return transport
}

func TestAPITransport_Read(t *testing.T) {
	var gotPath, gotRender string
	transport := newTestAPITransport(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRender = r.URL.Query().Get("valueRenderOption")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"Sheet1!A2:G","majorDimension":"ROWS","values":[["P1","Rice",10,2.5],["P2"]]}`))
	})

	rows, err := transport.Read(context.Background(), "inv", "A2:G")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"P1", "Rice", "10", "2.5"}, {"P2"}}, rows)
	assert.True(t, strings.HasPrefix(gotPath, "/v4/spreadsheets/inv/values/"))
	assert.Equal(t, "UNFORMATTED_VALUE", gotRender)
}

func TestAPITransport_Write(t *testing.T) {
	var (
		gotMethod string
		gotOption string
		body      struct {
			Range          string  `json:"range"`
			MajorDimension string  `json:"majorDimension"`
			Values         [][]any `json:"values"`
		}
	)
	transport := newTestAPITransport(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotOption = r.URL.Query().Get("valueInputOption")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"trades","updatedRange":"Sheet1!A7:G7","updatedRows":1}`))
	})

	err := transport.Write(context.Background(), "trades", "A7", [][]any{{"2025-03-04T10:30:00.000Z", "TRD000006"}}, UserEntered)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "USER_ENTERED", gotOption)
	assert.Equal(t, "A7", body.Range)
	assert.Equal(t, "ROWS", body.MajorDimension)
	assert.Equal(t, [][]any{{"2025-03-04T10:30:00.000Z", "TRD000006"}}, body.Values)
}

func TestAPITransport_RemoteError(t *testing.T) {
	transport := newTestAPITransport(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	})

	_, err := transport.Read(context.Background(), "inv", "A2:G")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTransport))

	var te *common.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 403, te.Status)
	assert.Equal(t, "The caller does not have permission", te.Message)
	assert.Equal(t, "read", te.Op)
	assert.False(t, common.IsRetryable(err))
}

func TestAPIError(t *testing.T) {
	assert.ErrorIs(t, apiError("read", "s", "A1", context.Canceled), context.Canceled)

	err := apiError("write", "s", "A1", &googleapi.Error{Code: 503, Message: "backend unavailable"})
	var te *common.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 503, te.Status)
	assert.True(t, common.IsRetryable(err))
	assert.NotErrorIs(t, err, common.ErrRateLimit)

	err = apiError("read", "s", "A1", &googleapi.Error{Code: 429, Message: "Quota exceeded"})
	assert.ErrorIs(t, err, common.ErrRateLimit)
	assert.True(t, common.IsRetryable(err))
}

func TestClientOptions_NoCredentials(t *testing.T) {
	_, err := clientOptions(context.Background(), DefaultConfig())
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}
