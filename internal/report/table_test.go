package report

import (
	"bytes"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func ptr[T any](v T) *T {
	return &v
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}

func render(t *testing.T, table Table) []string {
	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func Test_Table_AlignsCyrillicColumns(t *testing.T) {
	lines := render(t, CompaniesTable([]models.CompanyVacanciesCount{
		{CompanyName: "Яндекс", VacanciesCount: 12},
		{CompanyName: "Ozon Технологии", VacanciesCount: 3},
	}))

	require.Len(t, lines, 4)
	assert.Equal(t, "Компания"+spaces(9)+"Вакансий", lines[0])
	assert.Equal(t, strings.Repeat("-", 15)+spaces(2)+strings.Repeat("-", 8), lines[1])
	assert.Equal(t, "Яндекс"+spaces(11)+"12", lines[2])
	assert.Equal(t, "Ozon Технологии"+spaces(2)+"3", lines[3])

	for _, line := range lines[2:] {
		assert.Equal(t, 17, runewidth.StringWidth(line)-runewidth.StringWidth(strings.Fields(line)[len(strings.Fields(line))-1]))
	}
}

func Test_Table_FormatsMissingSalary(t *testing.T) {
	lines := render(t, VacancySalaryTable([]models.VacancySalary{
		{VacancyName: "Python", Salary: 0},
		{VacancyName: "Go", Salary: 3000, SalaryCurrency: ptr("USD")},
	}))

	assert.Equal(t, "Python"+spaces(4)+"не указана", lines[2])
	assert.Equal(t, "Go"+spaces(8)+"3000 USD", lines[3])
}

func Test_Table_AverageSalaryIsRounded(t *testing.T) {
	lines := render(t, AverageSalaryTable([]models.AverageSalary{
		{AverageSalary: 126666.67, SalaryCurrency: ptr("RUR")},
		{AverageSalary: 1500, SalaryCurrency: nil},
	}))

	assert.Equal(t, "RUR"+spaces(5)+"126667", lines[2])
	assert.Equal(t, "-"+spaces(7)+"1500", lines[3])
}

func Test_Table_EmptyResultRendersHeaderOnly(t *testing.T) {
	lines := render(t, VacanciesTable(nil))
	assert.Len(t, lines, 2)
}
