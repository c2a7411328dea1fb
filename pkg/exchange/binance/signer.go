package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"cryptotrade/internal/transport"
	"cryptotrade/pkg/core"
)

// signedPaths lists the endpoint suffixes that require a signature.
var signedPaths = []string{
	"/api/v3/order",
	"/api/v3/openOrders",
	"/api/v3/allOrders",
	"/api/v3/account",
}

// Signer authenticates Binance requests. Every request carries the
// X-MBX-APIKEY header; requests to account and order endpoints also get a
// trailing HMAC-SHA256 "signature" query parameter.
type Signer struct {
	creds core.Credentials
}

// NewSigner creates a signer for creds.
func NewSigner(creds core.Credentials) *Signer {
	return &Signer{creds: creds}
}

// RequiresSignature reports whether path ends with a signed endpoint.
func RequiresSignature(path string) bool {
	for _, suffix := range signedPaths {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// Sign implements transport.Signer.
func (s *Signer) Sign(req *transport.Request) error {
	if RequiresSignature(req.URLPath()) {
		signature := s.Signature(req.Query.Decoded(), string(req.Payload()))
		req.Query.Add("signature", signature)
	}
	req.SetHeader("X-MBX-APIKEY", s.creds.AccessKey)
	return nil
}

// Signature returns hex(HMAC-SHA256(secret, query+payload)) over the
// unescaped query string and body.
func (s *Signer) Signature(query, payload string) string {
	return signHMAC(query+payload, s.creds.SecretKey)
}

func signHMAC(message, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}
