// internal/store/jobindex.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"jobbly-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ErrSearchFailed wraps every Elasticsearch fault.
var ErrSearchFailed = errors.New("search failed")

const DefaultJobIndex = "jobs"

// JobIndex reads job postings from Elasticsearch.
type JobIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewJobIndex(es *elasticsearch.Client, index string) *JobIndex {
	if index == "" {
		index = DefaultJobIndex
	}
	return &JobIndex{es: es, index: index}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// ActiveJobIDs pages active postings, newest first, and returns their ids
// with the total match count. Job rows are read from the database; the index
// only orders and pages them.
func (x *JobIndex) ActiveJobIDs(ctx context.Context, from, size int) ([]int64, int, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"status": string(models.JobStatusActive)}},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"postedAt": map[string]interface{}{"order": "desc"}},
		},
		"_source": false,
		"from":    from,
		"size":    size,
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: encode query: %v", ErrSearchFailed, err)
	}

	req := esapi.SearchRequest{
		Index: []string{x.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("%w: %s", ErrSearchFailed, res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	ids := make([]int64, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: document id %q is not a job id", ErrSearchFailed, hit.ID)
		}
		ids = append(ids, id)
	}
	return ids, r.Hits.Total.Value, nil
}

// IndexJob upserts one posting document keyed by job id.
func (x *JobIndex) IndexJob(ctx context.Context, job models.Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("%w: encode job: %v", ErrSearchFailed, err)
	}

	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(job.ID, 10),
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: index job %d: %s", ErrSearchFailed, job.ID, res.Status())
	}
	return nil
}
