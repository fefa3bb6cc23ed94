package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"strconv"
	"strings"
	"time"
)

var publishedAtLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02",
}

var rowValidator = validator.New()

// Normalize maps one raw listing to the company and vacancy rows it produces.
// Missing salary and snippet sub-objects resolve to zero salary and null texts.
func Normalize(raw RawListing) (Company, Vacancy, error) {

	publishedAt, err := ParsePublishedAt(raw.PublishedAt)
	if err != nil {
		return Company{}, Vacancy{}, &ValidationError{ListingID: raw.ID, Field: "published_at", Reason: err.Error()}
	}

	company := Company{
		CompanyID:           raw.Employer.ID,
		CompanyName:         raw.Employer.Name,
		CompanyUrl:          raw.Employer.Url,
		CompanyAlternateUrl: raw.Employer.AlternateUrl,
		Trusted:             raw.Employer.Trusted,
	}

	vacancy := Vacancy{
		VacancyID:   raw.ID,
		CompanyID:   raw.Employer.ID,
		VacancyName: raw.Name,
		PublishedAt: publishedAt,
		VacancyUrl:  raw.Url,
	}

	if raw.Salary != nil {
		vacancy.Salary = max(valueOrZero(raw.Salary.From), valueOrZero(raw.Salary.To))
		vacancy.SalaryCurrency = raw.Salary.Currency
	}

	if raw.Snippet != nil {
		vacancy.Requirement = raw.Snippet.Requirement
		vacancy.Responsibility = raw.Snippet.Responsibility
	}

	if err = validateRow(raw.ID, "employer", company); err != nil {
		return Company{}, Vacancy{}, err
	}
	if err = validateRow(raw.ID, "", vacancy); err != nil {
		return Company{}, Vacancy{}, err
	}

	return company, vacancy, nil
}

// ParsePublishedAt keeps the calendar date of an hh timestamp in its own offset.
func ParsePublishedAt(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, errors.New("value is missing")
	}

	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New("unparsable date " + strconv.Quote(value))
}

func validateRow(listingID, prefix string, row any) error {
	err := rowValidator.Struct(row)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &ValidationError{ListingID: listingID, Field: prefix, Reason: err.Error()}
	}

	first := fieldErrors[0]
	field := first.Field()
	if prefix != "" {
		field = prefix + "." + field
	}
	return &ValidationError{ListingID: listingID, Field: field, Reason: "failed on '" + first.Tag() + "' rule"}
}

func valueOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
