// Package transport performs outbound backend calls: a single-attempt HTTP
// client with strict success classification, and a bounded retry state
// machine with linear backoff between attempts.
package transport
