package search_test

import (
	"beacon/client/es"
	"beacon/domain"
	"beacon/indices"
	"beacon/indices/search"
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
)

func TestSearchProjects(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should build the filter query and decode hits", func(t *testing.T) {
		var gotIndex string
		var gotQuery es.H
		es.SearchFunc = func(index string, query es.H, ctx context.Context) (*es.ESSearchResult, error) {
			gotIndex = index
			gotQuery = query
			return &es.ESSearchResult{Hits: es.ESSearchHits{Hits: []es.ESSearchHit{
				{Id: "100", Source: es.Source(`{"id":"100","name":"website relaunch","overdue":true}`)},
			}}}, nil
		}

		docs, err := search.SearchProjects(domain.ProjectQuery{
			Name: "website", Status: domain.StatusInProgress, Tag: "urgent", Overdue: true,
		}, context.Background())
		Expect(err).To(BeNil())
		Expect(gotIndex).To(Equal(indices.ProjectIndexName))

		Expect(len(docs)).To(Equal(1))
		Expect(docs[0].Name).To(Equal("website relaunch"))
		Expect(docs[0].Overdue).To(BeTrue())

		body, err := json.Marshal(gotQuery)
		Expect(err).To(BeNil())
		Expect(body).To(MatchJSON(`{
			"size": 10000,
			"query": {"bool": {"filter": [
				{"match": {"name": {"query": "website", "operator": "AND"}}},
				{"term": {"status": "IN_PROGRESS"}},
				{"term": {"tags": "urgent"}},
				{"term": {"overdue": true}},
				{"bool": {"must_not": {"term": {"status": "DELETED"}}}}
			]}},
			"sort": [{"createTime": {"order": "desc"}}]
		}`))
	})

	t.Run("deleted filter is dropped when asked for deleted projects", func(t *testing.T) {
		var gotQuery es.H
		es.SearchFunc = func(index string, query es.H, ctx context.Context) (*es.ESSearchResult, error) {
			gotQuery = query
			return &es.ESSearchResult{}, nil
		}

		_, err := search.SearchProjects(domain.ProjectQuery{Deleted: true}, context.Background())
		Expect(err).To(BeNil())

		body, err := json.Marshal(gotQuery)
		Expect(err).To(BeNil())
		Expect(body).To(MatchJSON(`{
			"size": 10000,
			"query": {"bool": {"filter": []}},
			"sort": [{"createTime": {"order": "desc"}}]
		}`))
	})

	t.Run("should surface search failures", func(t *testing.T) {
		es.SearchFunc = func(index string, query es.H, ctx context.Context) (*es.ESSearchResult, error) {
			return nil, errors.New("error on search")
		}

		_, err := search.SearchProjects(domain.ProjectQuery{}, context.Background())
		Expect(err).ToNot(BeNil())
	})
}
