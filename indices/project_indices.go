package indices

import (
	"beacon/client/es"
	"beacon/domain"
	"beacon/domain/project"
	"beacon/event"
	"context"
	"fmt"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

var (
	ProjectIndexName = "projects"

	IndexProjectsFunc = IndexProjects
)

// ProjectDocument extends the persisted shape with the derived overdue flag
// so searches can filter on it directly.
type ProjectDocument struct {
	domain.Project

	Overdue bool `json:"overdue"`
}

type BatchActionError map[types.ID]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[types.ID]error(e))
}

func IndexProjects(projects []domain.Project, ctx context.Context) error {
	today := project.TodayFunc()
	docs := make([]ProjectDocument, 0, len(projects))
	for i := range projects {
		docs = append(docs, ProjectDocument{Project: projects[i], Overdue: projects[i].OverdueAt(today)})
	}

	if err := saveProjectDocuments(docs, ctx); err != nil {
		return err
	}
	return nil
}

func saveProjectDocuments(docs []ProjectDocument, ctx context.Context) BatchActionError {
	errs := BatchActionError{}

	for _, doc := range docs {
		if err := es.IndexFunc(ProjectIndexName, doc.ID, doc, ctx); err != nil {
			errs[doc.ID] = err
			logrus.Warnf("index project %d %s %s\n", doc.ID, doc.Name, err)
		} else {
			logrus.Infof("index project %d %s successfully\n", doc.ID, doc.Name)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Bootstrap registers the change record handler keeping the index in sync
// with the store.
func Bootstrap() {
	event.Handlers = append(event.Handlers, IndexSyncHandler)
}

var IndexSyncHandlerName = "projectIndexer"

func IndexSyncHandler(e *event.ChangeRecord) *event.HandleResult {
	ctx := context.Background()

	if e.Category == event.CategoryDeleted {
		if err := es.DeleteDocumentByIdFunc(ProjectIndexName, e.ProjectID, ctx); err != nil {
			return &event.HandleResult{Success: false, Message: err.Error(), HandlerIdentifier: IndexSyncHandlerName}
		}
		return &event.HandleResult{Success: true, HandlerIdentifier: IndexSyncHandlerName}
	}

	record, err := project.DetailProjectFunc(e.ProjectID)
	if err != nil {
		return &event.HandleResult{Success: false, Message: err.Error(), HandlerIdentifier: IndexSyncHandlerName}
	}
	if err := IndexProjectsFunc([]domain.Project{*record}, ctx); err != nil {
		return &event.HandleResult{Success: false, Message: err.Error(), HandlerIdentifier: IndexSyncHandlerName}
	}
	return &event.HandleResult{Success: true, HandlerIdentifier: IndexSyncHandlerName}
}
