package services

import (
	"context"
	"github.com/maxaizer/hh-analytics/internal/clients/hh"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/maxaizer/hh-analytics/internal/logger"
	"github.com/maxaizer/hh-analytics/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// ListingSource supplies raw listings found by a keyword.
type ListingSource interface {
	LoadVacancies(ctx context.Context, keyword string) ([]models.RawListing, error)
}

type vacanciesClient interface {
	GetVacancies(ctx context.Context, parameters hh.SearchParameters) (*hh.VacanciesPage, error)
}

type HHListingSource struct {
	client         vacanciesClient
	pages          int
	perPage        int
	onlyWithSalary bool
}

func NewHHListingSource(client vacanciesClient, pages, perPage int, onlyWithSalary bool) *HHListingSource {
	return &HHListingSource{client: client, pages: pages, perPage: perPage, onlyWithSalary: onlyWithSalary}
}

// LoadVacancies walks up to the configured number of pages. A listing seen on an earlier page wins
// over its later copies, hh may shift results between pages while they are being read.
func (s *HHListingSource) LoadVacancies(ctx context.Context, keyword string) ([]models.RawListing, error) {

	var listings []models.RawListing

	for pageNum := 0; pageNum < s.pages; pageNum++ {

		params := hh.SearchParameters{
			Text:           keyword,
			OnlyWithSalary: s.onlyWithSalary,
			Page:           pageNum,
			PerPage:        s.perPage,
		}

		page, err := s.client.GetVacancies(ctx, params)
		if err != nil {
			if errors.Is(err, hh.ErrTooDeepPagination) {
				log.Warningf("too deep pagination for keyword %q, page: %d, per page: %d", keyword, pageNum, s.perPage)
				break
			}
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).Errorf("failed to get vacancies page %d: %v", pageNum, err)
			return nil, err
		}

		listings = append(listings, page.Listings...)

		if len(page.Listings) == 0 || pageNum+1 >= page.Pages {
			break
		}
	}

	unique := lo.UniqBy(listings, func(listing models.RawListing) string {
		return listing.ID
	})
	metrics.FetchedListingsCounter.Add(float64(len(unique)))
	log.Infof("fetched %d vacancies for keyword %q", len(unique), keyword)

	return unique, nil
}
