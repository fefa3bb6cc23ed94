package models

type Company struct {
	CompanyID           string  `gorm:"column:company_id;primaryKey;size:20;uniqueIndex:idx_companies_id_name,priority:1" validate:"required"`
	CompanyName         string  `gorm:"column:company_name;size:255;not null;uniqueIndex:idx_companies_id_name,priority:2" validate:"required"`
	CompanyUrl          string  `gorm:"column:company_url;type:text;not null"`
	CompanyAlternateUrl *string `gorm:"column:company_alternate_url;type:text"`
	Trusted             *bool   `gorm:"column:trusted"`

	Vacancies []Vacancy `gorm:"foreignKey:CompanyID;references:CompanyID;constraint:OnDelete:CASCADE" validate:"-"`
}

func (Company) TableName() string {
	return "companies"
}
