package models

type CompanyVacanciesCount struct {
	CompanyName    string
	VacanciesCount int64
}

type VacancyWithCompany struct {
	VacancyName    string
	CompanyName    string
	Salary         int
	SalaryCurrency *string
	VacancyUrl     string
}

type AverageSalary struct {
	AverageSalary  float64
	SalaryCurrency *string
}

type VacancySalary struct {
	VacancyName    string
	Salary         int
	SalaryCurrency *string
}
