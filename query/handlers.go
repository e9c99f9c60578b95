package query

import (
	"context"

	"github.com/aura-mf/bridge/core"
)

type StatsReader interface {
	Stats(ctx context.Context) (core.TrackerStats, error)
}

type RecordReader interface {
	RequestRecord(ctx context.Context, id string) (core.RequestRecord, error)
}

type SnapshotReader interface {
	Snapshot(ctx context.Context) (core.TrackerSnapshot, error)
}

type GetStatsQuery struct {
	reader StatsReader
}

func NewGetStatsQuery(reader StatsReader) *GetStatsQuery {
	return &GetStatsQuery{reader: reader}
}

func (q *GetStatsQuery) Query(ctx context.Context, msg GetStatsMessage) (core.TrackerStats, error) {
	if q == nil || q.reader == nil {
		return core.TrackerStats{}, queryDependencyError("query: stats reader is required")
	}
	return q.reader.Stats(ctx)
}

type GetRequestRecordQuery struct {
	reader RecordReader
}

func NewGetRequestRecordQuery(reader RecordReader) *GetRequestRecordQuery {
	return &GetRequestRecordQuery{reader: reader}
}

func (q *GetRequestRecordQuery) Query(ctx context.Context, msg GetRequestRecordMessage) (core.RequestRecord, error) {
	if q == nil || q.reader == nil {
		return core.RequestRecord{}, queryDependencyError("query: record reader is required")
	}
	return q.reader.RequestRecord(ctx, msg.RequestID)
}

type GetSnapshotQuery struct {
	reader SnapshotReader
}

func NewGetSnapshotQuery(reader SnapshotReader) *GetSnapshotQuery {
	return &GetSnapshotQuery{reader: reader}
}

func (q *GetSnapshotQuery) Query(ctx context.Context, msg GetSnapshotMessage) (core.TrackerSnapshot, error) {
	if q == nil || q.reader == nil {
		return core.TrackerSnapshot{}, queryDependencyError("query: snapshot reader is required")
	}
	return q.reader.Snapshot(ctx)
}
