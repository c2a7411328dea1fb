// Package gateio adapts the GateIO APIv4 spot endpoints to the
// exchange.Exchange interface.
//
// Every request is signed with HMAC-SHA512 over the method, path, query,
// hashed body and a unix-seconds timestamp. Order statuses open, closed and
// cancelled map to wait, done and canceled.
package gateio
