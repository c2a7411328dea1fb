package gateio

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strconv"
	"time"

	"cryptotrade/internal/transport"
	"cryptotrade/pkg/core"
)

// Signer authenticates GateIO APIv4 requests with the KEY, SIGN and
// Timestamp headers. Every request is signed.
type Signer struct {
	creds core.Credentials
	now   func() time.Time
}

// NewSigner creates a signer for creds. now supplies the signing time.
func NewSigner(creds core.Credentials, now func() time.Time) *Signer {
	if now == nil {
		now = time.Now
	}
	return &Signer{creds: creds, now: now}
}

// Sign implements transport.Signer.
func (s *Signer) Sign(req *transport.Request) error {
	ts := s.now().Unix()
	signature := s.Signature(req.Method, req.URLPath(), req.Query.Decoded(), string(req.Payload()), ts)

	req.SetHeader("KEY", s.creds.AccessKey)
	req.SetHeader("SIGN", signature)
	req.SetHeader("Timestamp", strconv.FormatInt(ts, 10))
	return nil
}

// Signature returns hex(HMAC-SHA512(secret, message)) where message is
// "METHOD\npath\nquery\nhex(SHA512(payload))\ntimestamp".
func (s *Signer) Signature(method, path, query, payload string, ts int64) string {
	hashed := sha512.Sum512([]byte(payload))
	message := method + "\n" + path + "\n" + query + "\n" + hex.EncodeToString(hashed[:]) + "\n" + strconv.FormatInt(ts, 10)

	h := hmac.New(sha512.New, []byte(s.creds.SecretKey))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}
