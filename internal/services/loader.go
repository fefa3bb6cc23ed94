package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/maxaizer/hh-analytics/internal/config"
	"github.com/maxaizer/hh-analytics/internal/domain/events"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/maxaizer/hh-analytics/internal/logger"
	"github.com/maxaizer/hh-analytics/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

type vacanciesWriter interface {
	ReplaceAll(ctx context.Context, companies []models.Company, vacancies []models.Vacancy) error
}

type RejectedListing struct {
	ListingID string
	Err       error
}

type LoadReport struct {
	LoadID    string
	Companies int
	Vacancies int
	Rejected  []RejectedListing
	Duration  time.Duration
}

type Loader struct {
	writer vacanciesWriter
	bus    EventBus.Bus
	policy config.InvalidListingPolicy
}

func NewLoader(writer vacanciesWriter, bus EventBus.Bus, policy config.InvalidListingPolicy) (*Loader, error) {
	if policy != config.PolicyAbort && policy != config.PolicySkip {
		return nil, fmt.Errorf("unknown invalid listing policy: %q", policy)
	}
	return &Loader{writer: writer, bus: bus, policy: policy}, nil
}

// Load replaces the contents of companies and vacancies with the normalized listings.
// Either the whole batch becomes visible or nothing changes.
func (l *Loader) Load(ctx context.Context, listings []models.RawListing) (*LoadReport, error) {
	start := time.Now()
	report := &LoadReport{LoadID: uuid.NewString()}
	entry := log.WithField("load_id", report.LoadID)

	batch := newLoadBatch()
	for _, raw := range listings {
		company, vacancy, err := models.Normalize(raw)
		if err != nil {
			if l.policy == config.PolicyAbort {
				entry.WithField(logger.ErrorTypeField, logger.ErrorTypeValidation).Errorf("load aborted: %v", err)
				return nil, err
			}
			entry.Warnf("listing skipped: %v", err)
			report.Rejected = append(report.Rejected, RejectedListing{ListingID: raw.ID, Err: err})
			continue
		}
		batch.add(entry, company, vacancy)
	}

	if err := l.writer.ReplaceAll(ctx, batch.companies, batch.vacancies); err != nil {
		if errors.Is(err, models.ErrConstraintViolation) {
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("load violated a store constraint: %v", err)
		} else {
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to write load: %v", err)
		}
		return nil, err
	}

	report.Companies = len(batch.companies)
	report.Vacancies = len(batch.vacancies)
	report.Duration = time.Since(start)

	metrics.LoadDuration.Observe(report.Duration.Seconds())
	metrics.LoadedRowsCounter.WithLabelValues("companies").Add(float64(report.Companies))
	metrics.LoadedRowsCounter.WithLabelValues("vacancies").Add(float64(report.Vacancies))
	metrics.RejectedListingsCounter.Add(float64(len(report.Rejected)))

	entry.Infof("loaded %d companies and %d vacancies, rejected %d listings in %v",
		report.Companies, report.Vacancies, len(report.Rejected), report.Duration)

	if l.bus != nil {
		l.bus.Publish(events.LoadCompletedTopic, events.LoadCompleted{
			LoadID:    report.LoadID,
			Companies: report.Companies,
			Vacancies: report.Vacancies,
			Rejected:  len(report.Rejected),
			Duration:  report.Duration,
		})
	}

	return report, nil
}

// loadBatch collects the rows of one load. A company is written once per id,
// the first name seen for that id wins.
type loadBatch struct {
	seen      map[string]string
	companies []models.Company
	vacancies []models.Vacancy
}

func newLoadBatch() *loadBatch {
	return &loadBatch{seen: make(map[string]string)}
}

func (b *loadBatch) add(entry *log.Entry, company models.Company, vacancy models.Vacancy) {
	if name, ok := b.seen[company.CompanyID]; !ok {
		b.seen[company.CompanyID] = company.CompanyName
		b.companies = append(b.companies, company)
	} else if name != company.CompanyName {
		entry.Debugf("company %s: name %q ignored, keeping %q", company.CompanyID, company.CompanyName, name)
	}

	b.vacancies = append(b.vacancies, vacancy)
}
