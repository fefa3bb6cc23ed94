// Package report renders catalog query results as plain text tables.
package report

import (
	"fmt"
	"github.com/maxaizer/hh-analytics/internal/domain/models"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"io"
	"strconv"
	"strings"
)

const columnGap = "  "

type Table struct {
	Headers []string
	Rows    [][]string
}

// Render writes the table with columns padded by display width, so Cyrillic and wide
// characters stay aligned.
func (t Table) Render(w io.Writer) error {
	widths := lo.Map(t.Headers, func(header string, _ int) int { return runewidth.StringWidth(header) })
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	lines := make([]string, 0, len(t.Rows)+2)
	lines = append(lines, formatRow(t.Headers, widths))
	lines = append(lines, formatRow(lo.Map(widths, func(width int, _ int) string {
		return strings.Repeat("-", width)
	}), widths))
	for _, row := range t.Rows {
		lines = append(lines, formatRow(row, widths))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == len(widths)-1 {
			padded[i] = cell
		} else {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(padded, columnGap), " ")
}

func CompaniesTable(rows []models.CompanyVacanciesCount) Table {
	return Table{
		Headers: []string{"Компания", "Вакансий"},
		Rows: lo.Map(rows, func(row models.CompanyVacanciesCount, _ int) []string {
			return []string{row.CompanyName, strconv.FormatInt(row.VacanciesCount, 10)}
		}),
	}
}

func VacanciesTable(rows []models.VacancyWithCompany) Table {
	return Table{
		Headers: []string{"Вакансия", "Компания", "Зарплата", "Ссылка"},
		Rows: lo.Map(rows, func(row models.VacancyWithCompany, _ int) []string {
			return []string{row.VacancyName, row.CompanyName, formatSalary(row.Salary, row.SalaryCurrency), row.VacancyUrl}
		}),
	}
}

func AverageSalaryTable(rows []models.AverageSalary) Table {
	return Table{
		Headers: []string{"Валюта", "Средняя зарплата"},
		Rows: lo.Map(rows, func(row models.AverageSalary, _ int) []string {
			return []string{currency(row.SalaryCurrency), strconv.FormatFloat(row.AverageSalary, 'f', 0, 64)}
		}),
	}
}

func VacancySalaryTable(rows []models.VacancySalary) Table {
	return Table{
		Headers: []string{"Вакансия", "Зарплата"},
		Rows: lo.Map(rows, func(row models.VacancySalary, _ int) []string {
			return []string{row.VacancyName, formatSalary(row.Salary, row.SalaryCurrency)}
		}),
	}
}

func formatSalary(salary int, salaryCurrency *string) string {
	if salary == 0 {
		return "не указана"
	}
	return strconv.Itoa(salary) + " " + currency(salaryCurrency)
}

func currency(value *string) string {
	if value == nil {
		return "-"
	}
	return *value
}
