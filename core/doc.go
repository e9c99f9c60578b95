// Package core contains the canonical bridge domain contracts, entities, and
// configuration. Lower-level packages (transport, tracker, router) depend on
// this package; core must not depend on any of them.
package core
