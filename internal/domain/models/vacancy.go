package models

import "time"

type Vacancy struct {
	VacancyID      string    `gorm:"column:vacancy_id;primaryKey;size:20" validate:"required"`
	CompanyID      string    `gorm:"column:company_id;size:20;not null;index" validate:"required"`
	VacancyName    string    `gorm:"column:vacancy_name;size:255;not null" validate:"required"`
	Salary         int       `gorm:"column:salary;not null"`
	SalaryCurrency *string   `gorm:"column:salary_currency;size:3" validate:"omitempty,len=3"`
	PublishedAt    time.Time `gorm:"column:published_at;type:date;not null"`
	VacancyUrl     string    `gorm:"column:vacancy_url;type:text"`
	Requirement    *string   `gorm:"column:requirement;type:text"`
	Responsibility *string   `gorm:"column:responsibility;type:text"`
}

func (Vacancy) TableName() string {
	return "vacancies"
}
