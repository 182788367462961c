/*
Package observability provides metrics and logging hooks for the editor.

Metrics wraps a set of Prometheus collectors. Hooks turns them, together with
a structured logger, into domain.HistoryHooks that can be passed to a history.
*/
package observability
