package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"licencewatch/internal/domain"
	"licencewatch/internal/normalize"
	"licencewatch/internal/port"
	"licencewatch/internal/reconcile"
	"licencewatch/internal/validate"
)

// HarvestService runs the bulletin pipeline end-to-end for a document:
// discover, download, archive, extract, normalize, validate, reconcile,
// report, notify. Variants are independent units of work; each run owns
// its own transactions, so variants can process concurrently.
type HarvestService struct {
	source    port.DocumentSource
	archive   port.BulletinArchive
	extractor port.TableExtractor
	engine    *reconcile.Engine
	notifier  port.Notifier

	mu          sync.Mutex
	lastReports map[domain.Variant]*domain.BatchReport
}

// NewHarvestService wires the pipeline's collaborators together.
func NewHarvestService(
	source port.DocumentSource,
	archive port.BulletinArchive,
	extractor port.TableExtractor,
	engine *reconcile.Engine,
	notifier port.Notifier,
) *HarvestService {
	return &HarvestService{
		source:      source,
		archive:     archive,
		extractor:   extractor,
		engine:      engine,
		notifier:    notifier,
		lastReports: make(map[domain.Variant]*domain.BatchReport),
	}
}

// RunAll harvests every variant concurrently. One variant failing does not
// stop the others; the first error, if any, is returned once all are done.
func (s *HarvestService) RunAll(ctx context.Context) error {
	var g errgroup.Group
	for _, variant := range domain.Variants {
		variant := variant
		g.Go(func() error {
			if _, err := s.HarvestVariant(ctx, variant); err != nil {
				return fmt.Errorf("variant %s: %w", variant, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// HarvestVariant processes the latest bulletin of one variant and returns
// its batch report. Errors that reach the caller are document-level: the
// bulletin could not be resolved, fetched, or opened at all. Everything
// recoverable narrower than that lands in the report instead.
func (s *HarvestService) HarvestVariant(ctx context.Context, variant domain.Variant) (*domain.BatchReport, error) {
	url, err := s.source.LatestBulletinURL(ctx, variant)
	if err != nil {
		s.notify(ctx, fmt.Sprintf("Licence harvest failed (%s)", variant),
			fmt.Sprintf("resolving latest bulletin: %v", err))
		return nil, fmt.Errorf("resolving latest bulletin: %w", err)
	}

	content, err := s.source.Fetch(ctx, url)
	if err != nil {
		s.notify(ctx, fmt.Sprintf("Licence harvest failed (%s)", variant),
			fmt.Sprintf("downloading %s: %v", url, err))
		return nil, fmt.Errorf("downloading bulletin: %w", err)
	}

	name := path.Base(url)
	doc := &domain.SourceDocument{Name: name, URL: url, Variant: variant, Content: content}

	// Archiving is audit-only; its failure never blocks the pipeline.
	if loc, err := s.archive.Archive(ctx, name, content); err != nil {
		log.Printf("harvestService: archiving %s failed: %v", name, err)
	} else if loc != "" {
		log.Printf("harvestService: archived %s to %s", name, loc)
	}

	report := domain.NewBatchReport(name, variant)

	tables, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		if errors.Is(err, domain.ErrNoTables) {
			report.AddDefect(domain.NewDefect(name, 0, -1, "", "",
				domain.DefectExtractionFailed, err.Error()))
			s.finish(ctx, report)
			return report, nil
		}
		s.notify(ctx, fmt.Sprintf("Licence harvest failed (%s)", variant),
			fmt.Sprintf("extracting tables from %s: %v", name, err))
		return nil, fmt.Errorf("extracting tables: %w", err)
	}

	for _, table := range tables {
		rows, defects := normalize.Normalize(table, variant, name)
		for _, d := range defects {
			report.AddDefect(d)
		}

		records := make([]*domain.LicenceRecord, 0, len(rows))
		for _, row := range rows {
			res := validate.ValidateRow(row)
			for _, d := range res.Defects {
				report.AddDefect(d)
			}
			if res.Dropped {
				report.Drop()
				log.Printf("harvestService: dropped row %d (page %d) of %s: %s",
					row.RowIndex, row.Page, name, res.DropReason)
				continue
			}
			records = append(records, res.Record)
		}

		if err := s.engine.ReconcileAll(ctx, records, report); err != nil {
			// Store connection gone mid-pass. Committed records stay put;
			// reruns are idempotent, so stopping here is safe.
			log.Printf("harvestService: %s: %v", name, err)
			break
		}
	}

	s.finish(ctx, report)
	return report, nil
}

// LatestReport returns the most recent batch report for a variant, or nil.
func (s *HarvestService) LatestReport(variant domain.Variant) *domain.BatchReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReports[variant]
}

func (s *HarvestService) finish(ctx context.Context, report *domain.BatchReport) {
	report.FinishedAt = time.Now().UTC()

	s.mu.Lock()
	s.lastReports[report.Variant] = report
	s.mu.Unlock()

	log.Printf("harvestService: %s done: inserted=%d duplicates=%d failed=%d dropped=%d defects=%d",
		report.SourceDocument, report.Inserted, report.Duplicates,
		report.Failed, report.Dropped, len(report.Defects))

	subject := fmt.Sprintf("Licence harvest report: %s", report.SourceDocument)
	s.notify(ctx, subject, report.Summary())
}

// notify delivers best-effort: a notifier outage is logged and swallowed.
func (s *HarvestService) notify(ctx context.Context, subject, body string) {
	if err := s.notifier.Send(ctx, subject, body); err != nil {
		log.Printf("harvestService: notification %q failed: %v", subject, err)
	}
}
