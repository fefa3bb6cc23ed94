package services

import (
	"context"
	"github.com/maxaizer/hh-analytics/internal/clients/hh"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

func ptr[T any](v T) *T {
	return &v
}

func rawListing(id, name, employerID, employerName string, salary *models.Salary) models.RawListing {
	return models.RawListing{
		ID:          id,
		Name:        name,
		Employer:    models.Employer{ID: employerID, Name: employerName, Url: "https://api.hh.ru/employers/" + employerID},
		Salary:      salary,
		PublishedAt: "2024-10-21T10:15:32+0300",
		Url:         "https://api.hh.ru/vacancies/" + id,
	}
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) ReplaceAll(ctx context.Context, companies []models.Company, vacancies []models.Vacancy) error {
	return m.Called(ctx, companies, vacancies).Error(0)
}

type mockVacanciesClient struct {
	mock.Mock
}

func (m *mockVacanciesClient) GetVacancies(ctx context.Context, parameters hh.SearchParameters) (*hh.VacanciesPage, error) {
	args := m.Called(ctx, parameters)
	page, _ := args.Get(0).(*hh.VacanciesPage)
	return page, args.Error(1)
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) LoadVacancies(ctx context.Context, keyword string) ([]models.RawListing, error) {
	args := m.Called(ctx, keyword)
	listings, _ := args.Get(0).([]models.RawListing)
	return listings, args.Error(1)
}

type memorySnapshot struct {
	listings []models.RawListing
	writeErr error
	readErr  error
}

func (m *memorySnapshot) Write(listings []models.RawListing) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.listings = listings
	return nil
}

func (m *memorySnapshot) Read() ([]models.RawListing, error) {
	return m.listings, m.readErr
}

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(ctx context.Context, listings []models.RawListing) (*LoadReport, error) {
	args := m.Called(ctx, listings)
	report, _ := args.Get(0).(*LoadReport)
	return report, args.Error(1)
}

type mockSchema struct {
	mock.Mock
}

func (m *mockSchema) DefineSchema() error {
	return m.Called().Error(0)
}

func (m *mockSchema) EnsureSchema() error {
	return m.Called().Error(0)
}
