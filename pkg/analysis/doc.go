// Package analysis derives diagnostics from a reconciliation map: which
// combinations of fields tend to diverge together, and which matched rows
// diverge on a given field.
package analysis
