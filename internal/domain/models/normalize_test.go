package models

import (
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func ptr[T any](v T) *T {
	return &v
}

func newRawListing() RawListing {
	return RawListing{
		ID:   "93000001",
		Name: "Python разработчик",
		Employer: Employer{
			ID:           "1740",
			Name:         "Яндекс",
			Url:          "https://api.hh.ru/employers/1740",
			AlternateUrl: ptr("https://hh.ru/employer/1740"),
			Trusted:      ptr(true),
		},
		Salary:      &Salary{From: ptr(150000), To: ptr(250000), Currency: ptr("RUR")},
		Snippet:     &Snippet{Requirement: ptr("Опыт от 3 лет"), Responsibility: ptr("Писать код")},
		PublishedAt: "2024-03-11T12:40:05+0300",
		Url:         "https://api.hh.ru/vacancies/93000001",
	}
}

func Test_Normalize_CopiesAllFields(t *testing.T) {
	raw := newRawListing()

	company, vacancy, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, Company{
		CompanyID:           "1740",
		CompanyName:         "Яндекс",
		CompanyUrl:          "https://api.hh.ru/employers/1740",
		CompanyAlternateUrl: ptr("https://hh.ru/employer/1740"),
		Trusted:             ptr(true),
	}, company)

	assert.Equal(t, "93000001", vacancy.VacancyID)
	assert.Equal(t, "1740", vacancy.CompanyID)
	assert.Equal(t, "Python разработчик", vacancy.VacancyName)
	assert.Equal(t, 250000, vacancy.Salary)
	assert.Equal(t, ptr("RUR"), vacancy.SalaryCurrency)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), vacancy.PublishedAt)
	assert.Equal(t, "https://api.hh.ru/vacancies/93000001", vacancy.VacancyUrl)
	assert.Equal(t, ptr("Опыт от 3 лет"), vacancy.Requirement)
	assert.Equal(t, ptr("Писать код"), vacancy.Responsibility)
}

func Test_Normalize_Salary(t *testing.T) {
	tests := []struct {
		name             string
		salary           *Salary
		expectedSalary   int
		expectedCurrency *string
	}{
		{name: "null salary", salary: nil, expectedSalary: 0, expectedCurrency: nil},
		{name: "only from", salary: &Salary{From: ptr(1000), Currency: ptr("RUR")}, expectedSalary: 1000, expectedCurrency: ptr("RUR")},
		{name: "only to", salary: &Salary{To: ptr(2000), Currency: ptr("RUR")}, expectedSalary: 2000, expectedCurrency: ptr("RUR")},
		{name: "from greater than to", salary: &Salary{From: ptr(3000), To: ptr(2000), Currency: ptr("USD")}, expectedSalary: 3000, expectedCurrency: ptr("USD")},
		{name: "empty salary object", salary: &Salary{}, expectedSalary: 0, expectedCurrency: nil},
		{name: "negative bounds", salary: &Salary{From: ptr(-10), To: ptr(-5), Currency: ptr("RUR")}, expectedSalary: -5, expectedCurrency: ptr("RUR")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := newRawListing()
			raw.Salary = tt.salary

			_, vacancy, err := Normalize(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSalary, vacancy.Salary)
			assert.Equal(t, tt.expectedCurrency, vacancy.SalaryCurrency)
		})
	}
}

func Test_Normalize_Snippet(t *testing.T) {
	raw := newRawListing()
	raw.Snippet = nil

	_, vacancy, err := Normalize(raw)
	require.NoError(t, err)
	assert.Nil(t, vacancy.Requirement)
	assert.Nil(t, vacancy.Responsibility)

	raw.Snippet = &Snippet{Responsibility: ptr("Поддержка сервисов")}
	_, vacancy, err = Normalize(raw)
	require.NoError(t, err)
	assert.Nil(t, vacancy.Requirement)
	assert.Equal(t, ptr("Поддержка сервисов"), vacancy.Responsibility)
}

func Test_Normalize_TrustedDefaultsToNull(t *testing.T) {
	raw := newRawListing()
	raw.Employer.Trusted = nil
	raw.Employer.AlternateUrl = nil

	company, _, err := Normalize(raw)
	require.NoError(t, err)
	assert.Nil(t, company.Trusted)
	assert.Nil(t, company.CompanyAlternateUrl)
}

func Test_Normalize_IsDeterministic(t *testing.T) {
	raw := newRawListing()

	company1, vacancy1, err1 := Normalize(raw)
	company2, vacancy2, err2 := Normalize(raw)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, company1, company2)
	assert.Equal(t, vacancy1, vacancy2)
}

func Test_Normalize_RejectsInvalidListings(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(raw *RawListing)
		expectedField string
	}{
		{name: "missing published_at", modify: func(raw *RawListing) { raw.PublishedAt = "" }, expectedField: "published_at"},
		{name: "garbage published_at", modify: func(raw *RawListing) { raw.PublishedAt = "вчера" }, expectedField: "published_at"},
		{name: "missing employer id", modify: func(raw *RawListing) { raw.Employer.ID = "" }, expectedField: "employer.CompanyID"},
		{name: "missing employer name", modify: func(raw *RawListing) { raw.Employer.Name = "" }, expectedField: "employer.CompanyName"},
		{name: "missing vacancy name", modify: func(raw *RawListing) { raw.Name = "" }, expectedField: "VacancyName"},
		{name: "bad currency", modify: func(raw *RawListing) { raw.Salary.Currency = ptr("RUBLES") }, expectedField: "SalaryCurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := newRawListing()
			tt.modify(&raw)

			_, _, err := Normalize(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, raw.ID, validationErr.ListingID)
			assert.Equal(t, tt.expectedField, validationErr.Field)
		})
	}
}

func Test_ParsePublishedAt_AcceptsKnownLayouts(t *testing.T) {
	expected := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"2024-03-11T23:40:05+0300", "2024-03-11T23:40:05+03:00", "2024-03-11"} {
		parsed, err := ParsePublishedAt(value)
		assert.NoError(t, err, value)
		assert.Equal(t, expected, parsed, value)
	}
}
