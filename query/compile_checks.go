package query

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/aura-mf/bridge/core"
)

var (
	_ gocmd.Querier[GetStatsMessage, core.TrackerStats]          = (*GetStatsQuery)(nil)
	_ gocmd.Querier[GetRequestRecordMessage, core.RequestRecord] = (*GetRequestRecordQuery)(nil)
	_ gocmd.Querier[GetSnapshotMessage, core.TrackerSnapshot]    = (*GetSnapshotQuery)(nil)
)
