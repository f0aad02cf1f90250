// Package workflow coordinates one export session end to end.
//
// The Manager owns the loaded shot list and runs the validate-then-deliver
// pipeline over it on a single background goroutine, streaming typed Events
// to the consumer. Shots are processed sequentially; a failure on one shot
// never stops the run. Overlapping runs are refused both in-process and
// across processes via a lock file.
//
// Journal writes and push notifications are best-effort: their failures are
// logged and never affect delivery outcomes.
package workflow
