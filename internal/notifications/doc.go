// Package notifications delivers export events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. The Service interface covers the major export milestones so
// workflow code can emit consistent, user-friendly messages without
// duplicating HTTP glue.
package notifications
