// Package upbit implements the Upbit REST adapter.
//
// Requests are authorized with an HS256 JWT carrying the access key, a
// UUID nonce and, when the request has parameters, a SHA512 query hash.
// Upbit reports numbers as bare JSON values and order times as ISO-8601
// strings in KST; both are converted to canonical types here.
package upbit
