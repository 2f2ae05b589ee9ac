package model

import "time"

// VisitEvent describes a single successful resolution. Events travel over
// JetStream for operational visibility only; the authoritative visit count is
// the clicks column on the link row.
type VisitEvent struct {
	ID        string    `json:"id"`
	LinkID    string    `json:"link_id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	VisitStreamName     = "VISITS"
	VisitStreamSubject  = "visits.resolved"
	VisitConsumerName   = "visit-logger"
	VisitStreamMaxBytes = 1024 * 1024 * 64 // 64MB
)
