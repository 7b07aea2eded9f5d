package project

import (
	"beacon/bizerror"
	"beacon/common"
	"beacon/domain"
	"beacon/event"
	"beacon/persistence"
	"context"
	"sync"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

var (
	projectIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateProjectFunc = CreateProject
	UpdateProjectFunc = UpdateProject
	DeleteProjectFunc = DeleteProject
	DetailProjectFunc = DetailProject
	QueryProjectsFunc = QueryProjects

	TodayFunc = func() string { return time.Now().Format(domain.DateLayout) }
)

// The collection is the only shared mutable state: one writer, guarded by a
// single mutex, written through to the persistence slot after every mutation.
var (
	mutex      sync.Mutex
	collection []domain.Project
)

// Bootstrap loads the persisted collection into memory. Malformed or missing
// stored data degrades to an empty collection.
func Bootstrap(ctx context.Context) {
	mutex.Lock()
	defer mutex.Unlock()
	collection = persistence.LoadCollectionFunc(ctx)
	logrus.Infof("project collection loaded, %d projects", len(collection))
}

func CreateProject(c *domain.ProjectCreation, actor string, ctx context.Context) *domain.Project {
	mutex.Lock()

	now := types.CurrentTimestamp()
	p := domain.Project{
		ID:          common.NextId(projectIdWorker),
		Name:        c.Name,
		Client:      c.Client,
		Description: c.Description,
		Tags:        c.Tags,
		Team:        c.Team,

		Status: c.Status,
		Phase:  c.Phase,

		StartDate: c.StartDate,
		EndDate:   c.EndDate,

		Progress: 0,

		InitialValue: c.InitialValue,
		FinalValue:   c.FinalValue,
		Currency:     c.Currency,

		CreateTime: now,

		Tasks:    []domain.Task{},
		Files:    []domain.FileMeta{},
		Comments: []domain.Comment{},
		Risks:    []domain.Risk{},
		History:  []domain.HistoryEntry{},
	}
	if p.Status == "" {
		p.Status = domain.StatusInProgress
	}
	if p.Phase == "" {
		p.Phase = domain.PhaseInitiation
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}

	ev := appendHistory(&p, event.CategoryCreated, "created", "project created", actor, now)
	collection = append(collection, p)

	persist(ctx)
	r := cloneProject(&p)
	mutex.Unlock()

	notifyHandlers(ev)
	return &r
}

// UpdateProject merges the patch into the named project: nil patch fields
// leave the current value unchanged. Progress is task-driven and is not
// recomputed here. Unknown id is a silent no-op returning nil.
func UpdateProject(id types.ID, patch *domain.ProjectPatch, actor string, ctx context.Context) *domain.Project {
	mutex.Lock()

	p := findProject(id)
	if p == nil {
		mutex.Unlock()
		return nil
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Client != nil {
		p.Client = *patch.Client
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Team != nil {
		p.Team = *patch.Team
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Phase != nil {
		p.Phase = *patch.Phase
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = *patch.EndDate
	}
	if patch.InitialValue != nil {
		p.InitialValue = *patch.InitialValue
	}
	if patch.FinalValue != nil {
		p.FinalValue = *patch.FinalValue
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}

	ev := appendHistory(p, event.CategoryPropertyUpdated, "updated", "project updated", actor, types.CurrentTimestamp())

	persist(ctx)
	r := cloneProject(p)
	mutex.Unlock()

	notifyHandlers(ev)
	return &r
}

// DeleteProject permanently removes the project and all of its owned
// collections. A soft delete is a status transition through UpdateProject
// instead. Unknown id is a silent no-op.
func DeleteProject(id types.ID, actor string, ctx context.Context) {
	mutex.Lock()

	idx := -1
	for i := range collection {
		if collection[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		mutex.Unlock()
		return
	}

	removed := collection[idx]
	collection = append(collection[0:idx], collection[idx+1:]...)

	ev := &event.ChangeRecord{
		ProjectID: removed.ID, ProjectName: removed.Name,
		Category: event.CategoryDeleted, Action: "deleted", Detail: "project deleted",
		Actor: actor, Timestamp: types.CurrentTimestamp(),
	}
	persist(ctx)
	mutex.Unlock()

	notifyHandlers(ev)
	cleanProjectFiles(&removed, ctx)
}

func DetailProject(id types.ID) (*domain.Project, error) {
	mutex.Lock()
	defer mutex.Unlock()

	p := findProject(id)
	if p == nil {
		return nil, bizerror.ErrNotFound
	}
	r := cloneProject(p)
	return &r, nil
}

// QueryProjects filters the collection in memory. Soft-deleted projects are
// excluded unless asked for, overdue is evaluated against today's date and is
// never read from the stored status.
func QueryProjects(q domain.ProjectQuery) []domain.Project {
	mutex.Lock()
	defer mutex.Unlock()

	today := TodayFunc()
	r := make([]domain.Project, 0, len(collection))
	for i := range collection {
		p := &collection[i]
		if p.Status == domain.StatusDeleted && !q.Deleted {
			continue
		}
		if q.Name != "" && !containsFold(p.Name, q.Name) {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.Phase != "" && p.Phase != q.Phase {
			continue
		}
		if q.Tag != "" && !containsString(p.Tags, q.Tag) {
			continue
		}
		if q.Overdue && !p.OverdueAt(today) {
			continue
		}
		r = append(r, cloneProject(p))
	}
	return r
}

// persist writes the collection through to the persistence slot. Called with
// the store mutex held. Persistence is best effort from the store's point of
// view, a failed write is logged and the in-memory state stands.
func persist(ctx context.Context) {
	if err := persistence.SaveCollectionFunc(ctx, collection); err != nil {
		logrus.Errorf("write through of project collection failed: %v", err)
	}
}

// notifyHandlers fans the change record out to registered handlers. Must run
// only after the store mutex is released: handlers are free to re-enter the
// store, the index synchronizer re-reads the mutated project.
func notifyHandlers(ev *event.ChangeRecord) {
	if event.InvokeHandlersFunc != nil && ev != nil {
		event.InvokeHandlersFunc(ev)
	}
}

func findProject(id types.ID) *domain.Project {
	for i := range collection {
		if collection[i].ID == id {
			return &collection[i]
		}
	}
	return nil
}

func cloneProject(p *domain.Project) domain.Project {
	r := *p
	r.Tags = append([]string{}, p.Tags...)
	r.Team = append([]string{}, p.Team...)
	r.Tasks = append([]domain.Task{}, p.Tasks...)
	r.Files = append([]domain.FileMeta{}, p.Files...)
	r.Comments = append([]domain.Comment{}, p.Comments...)
	r.Risks = append([]domain.Risk{}, p.Risks...)
	r.History = append([]domain.HistoryEntry{}, p.History...)
	return r
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
