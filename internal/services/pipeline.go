package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/maxaizer/hh-analytics/internal/logger"
	log "github.com/sirupsen/logrus"
)

type snapshotStore interface {
	Write(listings []models.RawListing) error
	Read() ([]models.RawListing, error)
}

type listingsLoader interface {
	Load(ctx context.Context, listings []models.RawListing) (*LoadReport, error)
}

type schemaManager interface {
	DefineSchema() error
	EnsureSchema() error
}

// Pipeline moves listings from the source through the snapshot file into the store.
type Pipeline struct {
	source   ListingSource
	snapshot snapshotStore
	loader   listingsLoader
	schema   schemaManager
	keyword  string
}

func NewPipeline(source ListingSource, snapshot snapshotStore, loader listingsLoader, schema schemaManager,
	keyword string) *Pipeline {
	return &Pipeline{source: source, snapshot: snapshot, loader: loader, schema: schema, keyword: keyword}
}

// Fetch loads listings from the source and replaces the snapshot with them.
func (p *Pipeline) Fetch(ctx context.Context) (int, error) {
	listings, err := p.source.LoadVacancies(ctx, p.keyword)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch vacancies: %w", err)
	}

	if err = p.snapshot.Write(listings); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSnapshot).Errorf("failed to write snapshot: %v", err)
		return 0, err
	}

	log.Infof("saved %d raw listings to snapshot", len(listings))
	return len(listings), nil
}

// Reload loads the snapshot into the store, creating the relations if they are missing.
func (p *Pipeline) Reload(ctx context.Context) (*LoadReport, error) {
	if err := p.schema.EnsureSchema(); err != nil {
		return nil, err
	}
	return p.loadSnapshot(ctx)
}

// Rebuild drops and recreates the relations before loading the snapshot.
func (p *Pipeline) Rebuild(ctx context.Context) (*LoadReport, error) {
	if err := p.schema.DefineSchema(); err != nil {
		return nil, err
	}
	return p.loadSnapshot(ctx)
}

// Refresh fetches a new batch and reloads the store with it.
func (p *Pipeline) Refresh(ctx context.Context) (*LoadReport, error) {
	if _, err := p.Fetch(ctx); err != nil {
		return nil, err
	}
	return p.Reload(ctx)
}

func (p *Pipeline) loadSnapshot(ctx context.Context) (*LoadReport, error) {
	listings, err := p.snapshot.Read()
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSnapshot).Errorf("failed to read snapshot: %v", err)
		return nil, err
	}
	return p.loader.Load(ctx, listings)
}
