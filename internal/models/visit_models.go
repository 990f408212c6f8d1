package models

import "time"

// VisitRecord is the per-visit bundle the caller persists alongside the
// transcript. The analysis engine itself never reads or writes these.
type VisitRecord struct {
	VisitID    string           `json:"visit_id" dynamodbav:"visit_id"`
	Transcript string           `json:"transcript" dynamodbav:"transcript"`
	Comparison ComparisonResult `json:"comparison" dynamodbav:"comparison"`
	Consensus  *ConsensusResult `json:"consensus,omitempty" dynamodbav:"consensus,omitempty"`
	CreatedAt  time.Time        `json:"created_at" dynamodbav:"created_at"`
}

// AuditEvent is one provider lifecycle transition, published to the audit
// topic by the caller's progress sink.
type AuditEvent struct {
	VisitID    string    `json:"visit_id"`
	ProviderID string    `json:"provider_id"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}
