package search

import (
	"beacon/client/es"
	"beacon/domain"
	"beacon/indices"
	"context"
	"encoding/json"
	"strings"
)

var (
	SearchProjectsFunc = SearchProjects
)

// SearchProjects answers the filter query from the search index instead of
// the in-memory collection. Soft-deleted projects are excluded unless asked
// for, overdue is matched on the indexed derived flag.
func SearchProjects(q domain.ProjectQuery, ctx context.Context) ([]indices.ProjectDocument, error) {
	filters := make([]es.H, 0, 5)

	if q.Name != "" {
		filters = append(filters, es.H{"match": es.H{"name": es.H{"query": q.Name, "operator": "AND"}}})
	}
	if q.Status != "" {
		filters = append(filters, es.H{"term": es.H{"status": q.Status}})
	}
	if q.Phase != "" {
		filters = append(filters, es.H{"term": es.H{"phase": q.Phase}})
	}
	if q.Tag != "" {
		filters = append(filters, es.H{"term": es.H{"tags": q.Tag}})
	}
	if q.Overdue {
		filters = append(filters, es.H{"term": es.H{"overdue": true}})
	}
	if !q.Deleted {
		filters = append(filters, es.H{"bool": es.H{"must_not": es.H{"term": es.H{"status": domain.StatusDeleted}}}})
	}

	sorts := make([]es.H, 0, 1)
	sorts = append(sorts, es.H{"createTime": es.H{"order": "desc"}})

	root := es.H{"bool": es.H{"filter": filters}}
	r, err := es.SearchFunc(indices.ProjectIndexName, es.H{"size": 10000, "query": root, "sort": sorts}, ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]indices.ProjectDocument, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		doc := indices.ProjectDocument{}
		if err := json.NewDecoder(strings.NewReader(string(hit.Source))).Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
