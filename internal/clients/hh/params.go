package hh

import (
	"fmt"
	"github.com/pkg/errors"
	"net/url"
	"strconv"
)

var ErrTooDeepPagination = errors.New("too deep pagination")

// hh.ru returns at most this many results for one search, whatever the page size.
const maxSearchResults = 2000

type SearchParameters struct {
	Text           string
	AreaID         string
	OnlyWithSalary bool
	Page           int
	PerPage        int
}

func (s SearchParameters) Validate() error {

	if s.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage <= 0 || s.PerPage > 100 {
		return fmt.Errorf("per page must be between 1 and 100")
	}

	if (s.Page+1)*s.PerPage > maxSearchResults {
		return ErrTooDeepPagination
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("text", s.Text)

	if s.AreaID != "" {
		params.Add("area", s.AreaID)
	}

	params.Add("page", strconv.Itoa(s.Page))
	params.Add("per_page", strconv.Itoa(s.PerPage))

	if s.OnlyWithSalary {
		params.Add("only_with_salary", "true")
	}

	return params
}
