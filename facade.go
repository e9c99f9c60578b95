package bridge

import (
	"fmt"

	bridgecommand "github.com/aura-mf/bridge/command"
	bridgequery "github.com/aura-mf/bridge/query"
)

type CommandQueryService interface {
	bridgecommand.MutatingService
	bridgequery.StatsReader
	bridgequery.RecordReader
	bridgequery.SnapshotReader
}

type Commands struct {
	SubmitEnvelope *bridgecommand.SubmitEnvelopeCommand
	ReplaceOrigins *bridgecommand.ReplaceOriginsCommand
}

type Queries struct {
	GetStats         *bridgequery.GetStatsQuery
	GetRequestRecord *bridgequery.GetRequestRecordQuery
	GetSnapshot      *bridgequery.GetSnapshotQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("bridge: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		SubmitEnvelope: bridgecommand.NewSubmitEnvelopeCommand(service),
		ReplaceOrigins: bridgecommand.NewReplaceOriginsCommand(service),
	}
	facade.queries = Queries{
		GetStats:         bridgequery.NewGetStatsQuery(service),
		GetRequestRecord: bridgequery.NewGetRequestRecordQuery(service),
		GetSnapshot:      bridgequery.NewGetSnapshotQuery(service),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
