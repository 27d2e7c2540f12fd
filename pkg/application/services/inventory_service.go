package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"

	"github.com/vsinha/inventory/pkg/application/dto"
	"github.com/vsinha/inventory/pkg/application/services/report"
	"github.com/vsinha/inventory/pkg/application/services/view"
	"github.com/vsinha/inventory/pkg/domain/entities"
	"github.com/vsinha/inventory/pkg/domain/repositories"
	"github.com/vsinha/inventory/pkg/infrastructure/logging"
	"github.com/vsinha/inventory/pkg/infrastructure/repositories/csv"
)

// ViewRequest selects which records a report covers and how they are grouped
type ViewRequest struct {
	Filter   view.Filter
	Sort     view.Sort
	Grouping report.Dimension
}

// InventoryService is the host-facing facade over the record repository,
// the filter/sort engine, the report functions and the CSV codec.
type InventoryService struct {
	repo     repositories.RecordRepository
	engine   *view.Engine
	exporter *csv.Exporter
	loader   *csv.Loader
	logger   logging.Logger
	now      func() time.Time
}

// NewInventoryService creates a service over repo. A nil engine sorts with
// the root collation.
func NewInventoryService(
	repo repositories.RecordRepository,
	engine *view.Engine,
	logger logging.Logger,
) *InventoryService {
	if engine == nil {
		engine = view.NewEngine(language.Und)
	}
	return &InventoryService{
		repo:     repo,
		engine:   engine,
		exporter: csv.NewExporter(),
		loader:   csv.NewLoader(),
		logger:   logging.OrNoOp(logger),
		now:      time.Now,
	}
}

func (s *InventoryService) Add(ctx context.Context, input entities.RecordInput) (entities.RecordID, error) {
	return s.repo.Add(ctx, input)
}

func (s *InventoryService) Update(ctx context.Context, id entities.RecordID, patch entities.RecordPatch) error {
	return s.repo.Update(ctx, id, patch)
}

func (s *InventoryService) Remove(ctx context.Context, id entities.RecordID) error {
	return s.repo.Remove(ctx, id)
}

func (s *InventoryService) Get(id entities.RecordID) (entities.InventoryRecord, error) {
	return s.repo.Get(id)
}

func (s *InventoryService) Records() []entities.InventoryRecord {
	return s.repo.All()
}

func (s *InventoryService) Categories() []string {
	return s.repo.Categories()
}

// View returns the filtered and sorted records
func (s *InventoryService) View(filter view.Filter, sort view.Sort) []entities.InventoryRecord {
	return s.engine.Apply(s.repo.All(), filter, sort)
}

// Summary is computed over the whole store, not a view
func (s *InventoryService) Summary() report.Summary {
	return report.Summarize(s.repo.All())
}

func (s *InventoryService) Aggregate(dim report.Dimension) ([]report.Row, error) {
	return report.Aggregate(s.repo.All(), dim)
}

func (s *InventoryService) CategoryValue() []report.ValueRow {
	return report.AggregateValue(s.repo.All())
}

func (s *InventoryService) ReorderList() []report.ReorderLine {
	return report.ReorderList(s.repo.All())
}

// Report builds a host report. Records and grouping follow the request;
// summary, category value and reorder lines always cover the whole store.
func (s *InventoryService) Report(req ViewRequest) (*dto.InventoryReport, error) {
	all := s.repo.All()
	visible := s.engine.Apply(all, req.Filter, req.Sort)

	grouping := req.Grouping
	if grouping == "" {
		grouping = report.ByCategory
	}
	groups, err := report.Aggregate(visible, grouping)
	if err != nil {
		return nil, err
	}

	views := make([]dto.RecordView, len(visible))
	for i, r := range visible {
		views[i] = dto.NewRecordView(r)
	}

	return &dto.InventoryReport{
		GeneratedAt:   s.now().UTC(),
		Records:       views,
		Summary:       report.Summarize(all),
		Grouping:      grouping,
		Groups:        groups,
		CategoryValue: report.AggregateValue(all),
		Reorder:       report.ReorderList(all),
		Categories:    s.repo.Categories(),
	}, nil
}

// ExportCSV writes the given view in export format
func (s *InventoryService) ExportCSV(w io.Writer, records []entities.InventoryRecord) error {
	if err := s.exporter.Write(w, records); err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}
	s.logger.Info("records exported", map[string]interface{}{"count": len(records)})
	return nil
}

// SerializeCSV returns the given view in export format
func (s *InventoryService) SerializeCSV(records []entities.InventoryRecord) (string, error) {
	return s.exporter.Serialize(records)
}

// ImportCSV replaces the store contents with the records read from r
func (s *InventoryService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	records, err := s.loader.ReadRecords(r)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Load(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to load imported records: %w", err)
	}
	return len(records), nil
}

// ImportCSVFile replaces the store contents with the records in filename
func (s *InventoryService) ImportCSVFile(ctx context.Context, filename string) (int, error) {
	records, err := s.loader.LoadRecords(filename)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Load(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to load imported records: %w", err)
	}
	return len(records), nil
}
