package service

import (
	"context"
	"time"

	"device_inventory/internal/catalog"
	"device_inventory/internal/logger"
	"device_inventory/internal/metrics"
	"device_inventory/internal/models"
	"device_inventory/internal/repository"
)

// RecordFetcher runs the single predefined query for a selector.
type RecordFetcher struct {
	docs    repository.DocumentStore
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewRecordFetcher(docs repository.DocumentStore, log *logger.Logger, m *metrics.Metrics) *RecordFetcher {
	return &RecordFetcher{docs: docs, log: log, metrics: m}
}

// Fetch returns one record per matching document. Types without a fetch path
// (columnData, unknown types) yield an empty result and no error.
func (f *RecordFetcher) Fetch(ctx context.Context, sel models.ChartSelector) ([]models.Record, error) {
	d, ok := catalog.Lookup(sel.Type)
	var q catalog.Query
	if ok {
		q, ok = d.Query(sel.Label)
	}
	if !ok {
		f.log.Warnw("fetch_no_query_path", "type", sel.Type, "label", sel.Label)
		f.metrics.ObserveFetch(string(sel.Type), metrics.OutcomeNoPath, 0)
		return []models.Record{}, nil
	}

	start := time.Now()
	records, err := f.docs.Find(ctx, q.Collection, q.Field, q.Value)
	if err != nil {
		f.metrics.ObserveFetch(string(sel.Type), metrics.OutcomeError, time.Since(start))
		return nil, &FetchError{Selector: sel, Err: err}
	}
	f.metrics.ObserveFetch(string(sel.Type), metrics.OutcomeOK, time.Since(start))
	f.log.Debugw("fetch_done", "type", sel.Type, "label", sel.Label, "collection", q.Collection, "count", len(records))
	return records, nil
}
