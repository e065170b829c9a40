// Package delivery provides contact.Deliverer implementations: structured
// log lines, an in-memory recorder, an HTTP webhook and a SQLite outbox.
package delivery
