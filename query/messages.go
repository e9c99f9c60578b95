package query

import "strings"

const (
	TypeGetStats         = "bridge.query.stats.get"
	TypeGetRequestRecord = "bridge.query.record.get"
	TypeGetSnapshot      = "bridge.query.snapshot.get"
)

type GetStatsMessage struct{}

func (GetStatsMessage) Type() string { return TypeGetStats }

func (GetStatsMessage) Validate() error { return nil }

type GetRequestRecordMessage struct {
	RequestID string
}

func (GetRequestRecordMessage) Type() string { return TypeGetRequestRecord }

func (m GetRequestRecordMessage) Validate() error {
	if strings.TrimSpace(m.RequestID) == "" {
		return queryInvalidInputError("query: request id is required")
	}
	return nil
}

type GetSnapshotMessage struct{}

func (GetSnapshotMessage) Type() string { return TypeGetSnapshot }

func (GetSnapshotMessage) Validate() error { return nil }
