package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		name string
		kind ErrorKind
		want string
	}{
		{"unmapped", ErrorKindUnmapped, "UNMAPPED"},
		{"authentication", ErrorKindAuthentication, "AUTHENTICATION"},
		{"bad_request", ErrorKindBadRequest, "BAD_REQUEST"},
		{"not_found", ErrorKindNotFound, "NOT_FOUND"},
		{"rate_limit", ErrorKindRateLimit, "RATE_LIMIT"},
		{"server_error", ErrorKindServerError, "SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestFault_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Fault
		want string
	}{
		{
			name: "with_exchange",
			err: &Fault{
				Exchange: "binance",
				Kind:     ErrorKindRateLimit,
				Code:     "429",
				Message:  "too many requests",
			},
			want: "[binance] RATE_LIMIT (429): too many requests",
		},
		{
			name: "without_exchange",
			err: &Fault{
				Kind:    ErrorKindBadRequest,
				Code:    "400",
				Message: "invalid quantity",
			},
			want: "BAD_REQUEST (400): invalid quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestFaultFromStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		kind    ErrorKind
		code    string
		want    string
	}{
		{"401_default", 401, "", ErrorKindAuthentication, "401", "Authentication failed"},
		{"400_default", 400, "", ErrorKindBadRequest, "400", "Bad Request"},
		{"404_default", 404, "", ErrorKindNotFound, "404", "Not Found"},
		{"429_default", 429, "", ErrorKindRateLimit, "429", "Rate Limit Exceeded"},
		{"500_default", 500, "", ErrorKindServerError, "500", "Internal Server Error"},
		{"400_message", 400, "Get Balances Failed", ErrorKindBadRequest, "400", "Get Balances Failed"},
		{"401_message", 401, "Invalid API-key", ErrorKindAuthentication, "401", "Invalid API-key"},
		{"418_unmapped", 418, "banned", ErrorKindUnmapped, "418", "banned"},
		{"503_unmapped", 503, "", ErrorKindUnmapped, "503", "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FaultFromStatus("upbit", tt.status, tt.message)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.want, f.Message)
			assert.Equal(t, "upbit", f.Exchange)
			assert.False(t, f.Success)
			assert.Positive(t, f.Timestamp)
		})
	}
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
		want string
	}{
		{"nested", `{"error":{"message":"Get Balances Failed","name":"invalid"}}`, "error.message", "Get Balances Failed"},
		{"flat", `{"code":-2014,"msg":"API-key format invalid."}`, "msg", "API-key format invalid."},
		{"gateio", `{"label":"INVALID_KEY","message":"Invalid key provided"}`, "message", "Invalid key provided"},
		{"padded_path", `{"msg":"x"}`, " msg ", "x"},
		{"missing_key", `{"error":{"name":"x"}}`, "error.message", ""},
		{"missing_parent", `{"msg":"x"}`, "error.message", ""},
		{"not_json", `<html>bad gateway</html>`, "msg", ""},
		{"empty_body", ``, "msg", ""},
		{"empty_path", `{"msg":"x"}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractMessage([]byte(tt.body), tt.path))
		})
	}
}

func TestFaultFromResponse(t *testing.T) {
	body := []byte(`{"error":{"message":"Get Balances Failed"}}`)

	f := FaultFromResponse("upbit", 400, body, "error.message")

	assert.Equal(t, ErrorKindBadRequest, f.Kind)
	assert.Equal(t, "400", f.Code)
	assert.Equal(t, "Get Balances Failed", f.Message)

	f = FaultFromResponse("upbit", 401, []byte("not json"), "error.message")
	assert.Equal(t, "Authentication failed", f.Message)
}

func TestIsKindHelpers(t *testing.T) {
	authErr := FaultFromStatus("test", 401, "")
	rateErr := FaultFromStatus("test", 429, "")
	wrapped := fmt.Errorf("get balances: %w", rateErr)

	assert.True(t, IsAuthenticationError(authErr))
	assert.False(t, IsAuthenticationError(rateErr))
	assert.False(t, IsAuthenticationError(nil))

	assert.True(t, IsRateLimitError(wrapped))
	assert.True(t, IsBadRequestError(FaultFromStatus("test", 400, "")))
	assert.True(t, IsNotFoundError(FaultFromStatus("test", 404, "")))
	assert.True(t, IsServerError(FaultFromStatus("test", 500, "")))
	assert.False(t, IsServerError(FaultFromStatus("test", 502, "")))
}

func TestErrorKind_MarshalJSON(t *testing.T) {
	data, err := ErrorKindNotFound.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"NOT_FOUND"`, string(data))
}
