// Package router relays requests between untrusted caller contexts and the
// simulation backend.
//
// Inbound messages flow origin check -> envelope check -> ledger register ->
// action dispatch -> transport (with retries) -> ledger complete -> response
// dispatch. Origin and envelope failures are dropped silently; everything
// accepted produces exactly one correlated response.
package router
