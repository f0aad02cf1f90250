// Package journal keeps a local SQLite history of delivery runs. It is
// informational only: the pipeline never reads it to make decisions, and the
// catalog stays the source of truth for shot status.
package journal
