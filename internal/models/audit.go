package models

// AuditRecord is one append-only row per automation call: who asked for
// what and what came back. Rows are written once and never mutated.
type AuditRecord struct {
	CorrelationID string `db:"request_id" json:"requestId"`
	Username      string `db:"username" json:"username"`
	Request       string `db:"request" json:"request"`
	Response      string `db:"response" json:"response"`
}
