package core

// Envelope is the uniform success wrapper around an operation result.
// Failures are rendered from Fault, which carries the same keys.
type Envelope struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// OK wraps data in a success envelope stamped with now (epoch ms).
func OK(data any, now int64) Envelope {
	return Envelope{
		Success:   true,
		Code:      "200",
		Message:   "OK",
		Data:      data,
		Timestamp: now,
	}
}
