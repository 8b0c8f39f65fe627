package entity

import (
	"time"
)

// Extraction archive process status
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
	StatusSkipped   = "SKIPPED"
)

// ExtractionLog is the archived record of one received extraction: the raw
// payload plus everything the engine decided about it. Kept as a document so
// partial re-imports and cleanup runs have a full audit trail.
type ExtractionLog struct {
	ID            string                 `bson:"_id,omitempty"`
	PNR           string                 `bson:"pnr"`
	SourceFile    string                 `bson:"sourceFile,omitempty"`
	Extraction    *TicketExtraction      `bson:"extraction"`
	Report        map[string]interface{} `bson:"report,omitempty"`
	Connections   *ConnectionAnalysis    `bson:"connections,omitempty"`
	Sequence      *SequenceValidation    `bson:"sequence,omitempty"`
	ImportAction  string                 `bson:"importAction,omitempty"`
	ImportReason  string                 `bson:"importReason,omitempty"`
	ProcessStatus string                 `bson:"processStatus"`
	ErrorDetail   string                 `bson:"errorDetail,omitempty"`
	ReceivedAt    time.Time              `bson:"receivedAt"`
	ProcessedAt   time.Time              `bson:"processedAt,omitempty"`
}
