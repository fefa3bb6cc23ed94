package hh

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"os"
	"testing"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func getVacanciesMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/get_vacancies.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func Test_HHClient_GetVacancies_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://api.hh.ru/vacancies?only_with_salary=true&page=0&per_page=10&text=python" &&
			req.Header.Get("User-Agent") != ""
	})).Return(getVacanciesMock())

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	page, err := client.GetVacancies(context.Background(), SearchParameters{
		Text:           "python",
		OnlyWithSalary: true,
		Page:           0,
		PerPage:        10,
	})
	require.NoError(t, err)
	mockClient.AssertExpectations(t)

	assert.Equal(1, page.Pages)
	assert.Equal(2, page.Found)
	require.Len(t, page.Listings, 2)

	first := page.Listings[0]
	assert.Equal("107958774", first.ID)
	assert.Equal("Python разработчик (Junior)", first.Name)
	assert.Equal("3529", first.Employer.ID)
	assert.Equal("СБЕР", first.Employer.Name)
	require.NotNil(t, first.Employer.Trusted)
	assert.True(*first.Employer.Trusted)
	require.NotNil(t, first.Salary)
	assert.Equal(80000, *first.Salary.From)
	assert.Nil(first.Salary.To)
	assert.Equal("RUR", *first.Salary.Currency)
	require.NotNil(t, first.Snippet)
	assert.Equal("2024-10-21T10:15:32+0300", first.PublishedAt)

	second := page.Listings[1]
	assert.Nil(second.Salary)
	assert.Nil(second.Snippet)
}

func Test_HHClient_GetVacancies_FailsOnBadStatus(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusForbidden,
		Body:       io.NopCloser(bytes.NewBufferString(`{"errors":[{"type":"forbidden"}]}`)),
	}, nil)

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	_, err := client.GetVacancies(context.Background(), SearchParameters{Text: "go", PerPage: 10})
	assert.ErrorContains(t, err, "403")
}

func Test_SearchParameters_Validate(t *testing.T) {
	assert.NoError(t, SearchParameters{Page: 19, PerPage: 100}.Validate())
	assert.ErrorIs(t, SearchParameters{Page: 20, PerPage: 100}.Validate(), ErrTooDeepPagination)
	assert.Error(t, SearchParameters{Page: -1, PerPage: 10}.Validate())
	assert.Error(t, SearchParameters{Page: 0, PerPage: 0}.Validate())
	assert.Error(t, SearchParameters{Page: 0, PerPage: 101}.Validate())
}
