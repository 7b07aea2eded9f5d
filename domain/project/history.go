package project

import (
	"beacon/common"
	"beacon/domain"
	"beacon/event"
	"strings"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

const DefaultCurrency = "BRL"

var historyIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

// appendHistory appends exactly one audit entry to the project and returns
// the matching change record for handler fan-out. History entries are never
// edited or removed while the project lives.
func appendHistory(p *domain.Project, category event.Category, action, detail, actor string,
	timestamp types.Timestamp) *event.ChangeRecord {

	p.History = append(p.History, domain.HistoryEntry{
		ID:        common.NextId(historyIdWorker),
		Action:    action,
		Detail:    detail,
		Actor:     actor,
		Timestamp: timestamp,
	})

	return &event.ChangeRecord{
		ProjectID: p.ID, ProjectName: p.Name,
		Category: category, Action: action, Detail: detail,
		Actor: actor, Timestamp: timestamp,
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
