package project

import (
	"beacon/common"
	"beacon/domain"
	"beacon/event"
	"context"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

var (
	riskIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	AddRiskFunc    = AddRisk
	UpdateRiskFunc = UpdateRisk
)

// AddRisk appends a risk to the named project, new risks start active.
// Unknown project id is a silent no-op returning nil.
func AddRisk(projectId types.ID, c *domain.RiskCreation, actor string, ctx context.Context) *domain.Risk {
	mutex.Lock()

	p := findProject(projectId)
	if p == nil {
		mutex.Unlock()
		return nil
	}

	now := types.CurrentTimestamp()
	risk := domain.Risk{
		ID:          common.NextId(riskIdWorker),
		Name:        c.Name,
		Impact:      c.Impact,
		Probability: c.Probability,
		Contingency: c.Contingency,
		Status:      domain.RiskStatusActive,
		CreateTime:  now,
	}
	p.Risks = append(p.Risks, risk)

	ev := appendHistory(p, event.CategoryExtensionUpdated, "risk.added", "risk added: "+c.Name, actor, now)

	persist(ctx)
	mutex.Unlock()

	notifyHandlers(ev)
	return &risk
}

// UpdateRisk merges the patch into exactly one risk, commonly just the
// status transition. Unknown project or risk id is a silent no-op returning
// nil.
func UpdateRisk(projectId, riskId types.ID, patch *domain.RiskPatch, actor string, ctx context.Context) *domain.Risk {
	mutex.Lock()

	p := findProject(projectId)
	if p == nil {
		mutex.Unlock()
		return nil
	}

	var risk *domain.Risk
	for i := range p.Risks {
		if p.Risks[i].ID == riskId {
			risk = &p.Risks[i]
			break
		}
	}
	if risk == nil {
		mutex.Unlock()
		return nil
	}

	if patch.Name != nil {
		risk.Name = *patch.Name
	}
	if patch.Impact != nil {
		risk.Impact = *patch.Impact
	}
	if patch.Probability != nil {
		risk.Probability = *patch.Probability
	}
	if patch.Contingency != nil {
		risk.Contingency = *patch.Contingency
	}
	if patch.Status != nil {
		risk.Status = *patch.Status
	}

	ev := appendHistory(p, event.CategoryExtensionUpdated, "risk.updated", "risk updated: "+risk.Name,
		actor, types.CurrentTimestamp())

	persist(ctx)
	r := *risk
	mutex.Unlock()

	notifyHandlers(ev)
	return &r
}
