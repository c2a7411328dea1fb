package core

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// ErrorKind represents the category of an exchange fault.
type ErrorKind int

// Error kind constants. Each failed HTTP status maps to exactly one kind.
const (
	// ErrorKindUnmapped indicates a status with no dedicated kind.
	ErrorKindUnmapped ErrorKind = iota
	// ErrorKindAuthentication indicates invalid or expired credentials (401).
	ErrorKindAuthentication
	// ErrorKindBadRequest indicates invalid request parameters (400).
	ErrorKindBadRequest
	// ErrorKindNotFound indicates the requested resource does not exist (404).
	ErrorKindNotFound
	// ErrorKindRateLimit indicates the rate limit was exceeded (429).
	ErrorKindRateLimit
	// ErrorKindServerError indicates a server-side or transport failure (500).
	ErrorKindServerError
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	return [...]string{
		"UNMAPPED",
		"AUTHENTICATION",
		"BAD_REQUEST",
		"NOT_FOUND",
		"RATE_LIMIT",
		"SERVER_ERROR",
	}[k]
}

// MarshalJSON implements json.Marshaler for ErrorKind.
func (k ErrorKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// ErrUnknownExchange is returned by the registry for a name it does not know.
var ErrUnknownExchange = errors.New("unknown exchange")

// Fault is the structured failure returned for every non-2xx exchange response.
// Its JSON form is the failure envelope handed to callers.
type Fault struct {
	Kind ErrorKind `json:"kind"`
	// Code is the HTTP status code as a string, e.g. "401".
	Code    string `json:"code"`
	Message string `json:"message"`
	// Timestamp is epoch milliseconds at which the fault was created.
	Timestamp int64  `json:"timestamp"`
	Success   bool   `json:"success"`
	Exchange  string `json:"exchange,omitempty"`
}

// Error implements the error interface for Fault.
func (f *Fault) Error() string {
	if f.Exchange != "" {
		return fmt.Sprintf("[%s] %s (%s): %s", f.Exchange, f.Kind, f.Code, f.Message)
	}
	return fmt.Sprintf("%s (%s): %s", f.Kind, f.Code, f.Message)
}

// NewFault creates a Fault stamped with the current time.
func NewFault(exchange string, kind ErrorKind, code, message string) *Fault {
	return &Fault{
		Kind:      kind,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
		Exchange:  exchange,
	}
}

// FaultFromStatus classifies a failed HTTP status. An empty message is
// replaced by the default message of the kind.
func FaultFromStatus(exchange string, status int, message string) *Fault {
	kind, fallback := ErrorKindUnmapped, http.StatusText(status)
	switch status {
	case http.StatusUnauthorized:
		kind, fallback = ErrorKindAuthentication, "Authentication failed"
	case http.StatusBadRequest:
		kind, fallback = ErrorKindBadRequest, "Bad Request"
	case http.StatusNotFound:
		kind, fallback = ErrorKindNotFound, "Not Found"
	case http.StatusTooManyRequests:
		kind, fallback = ErrorKindRateLimit, "Rate Limit Exceeded"
	case http.StatusInternalServerError:
		kind, fallback = ErrorKindServerError, "Internal Server Error"
	}
	if message == "" {
		message = fallback
	}
	return NewFault(exchange, kind, strconv.Itoa(status), message)
}

// FaultFromResponse extracts the message at path from body and classifies status.
func FaultFromResponse(exchange string, status int, body []byte, path string) *Fault {
	return FaultFromStatus(exchange, status, ExtractMessage(body, path))
}

// ExtractMessage walks a dotted path ("error.message") through a JSON body.
// It returns "" when the body is not JSON or a segment is missing. Scalar
// targets are rendered as strings.
func ExtractMessage(body []byte, path string) string {
	path = strings.TrimSpace(path)
	if len(body) == 0 || path == "" {
		return ""
	}
	keys := strings.Split(path, ".")
	nodePath := make([]any, len(keys))
	for i, k := range keys {
		nodePath[i] = k
	}
	node, err := sonic.Get(body, nodePath...)
	if err != nil {
		return ""
	}
	msg, err := node.String()
	if err != nil {
		return ""
	}
	return msg
}

// IsAuthenticationError returns true if err is an authentication fault.
func IsAuthenticationError(err error) bool {
	return isKind(err, ErrorKindAuthentication)
}

// IsBadRequestError returns true if err is a bad request fault.
func IsBadRequestError(err error) bool {
	return isKind(err, ErrorKindBadRequest)
}

// IsNotFoundError returns true if err is a not found fault.
func IsNotFoundError(err error) bool {
	return isKind(err, ErrorKindNotFound)
}

// IsRateLimitError returns true if err is a rate limit fault.
func IsRateLimitError(err error) bool {
	return isKind(err, ErrorKindRateLimit)
}

// IsServerError returns true if err is a server error fault, including
// transport failures reported as status 500.
func IsServerError(err error) bool {
	return isKind(err, ErrorKindServerError)
}

func isKind(err error, kind ErrorKind) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}
