package upbit

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cryptotrade/internal/transport"
	"cryptotrade/pkg/core"
)

// Signer authenticates Upbit requests with an HS256 JWT bearer token.
// Every request is signed; requests with parameters also commit to them
// through query_hash.
type Signer struct {
	creds core.Credentials
	nonce func() string
}

// NewSigner creates a signer for creds. nonce defaults to a random UUID.
func NewSigner(creds core.Credentials, nonce func() string) *Signer {
	if nonce == nil {
		nonce = uuid.NewString
	}
	return &Signer{creds: creds, nonce: nonce}
}

// Sign implements transport.Signer. The query string is hashed when
// present, otherwise the body parameters are.
func (s *Signer) Sign(req *transport.Request) error {
	params := req.Query
	if len(params) == 0 {
		params = req.Body
	}

	var query string
	if len(params) > 0 {
		query = params.Decoded()
	}

	token, err := s.Token(query)
	if err != nil {
		return err
	}
	req.SetHeader("Authorization", "Bearer "+token)
	return nil
}

// Token builds the signed JWT. An empty query omits the hash claims.
func (s *Signer) Token(query string) (string, error) {
	claims := jwt.MapClaims{
		"access_key": s.creds.AccessKey,
		"nonce":      s.nonce(),
	}
	if query != "" {
		claims["query_hash"] = QueryHash(query)
		claims["query_hash_alg"] = "SHA512"
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.creds.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return token, nil
}

// QueryHash returns hex(SHA512(query)).
func QueryHash(query string) string {
	sum := sha512.Sum512([]byte(query))
	return hex.EncodeToString(sum[:])
}
