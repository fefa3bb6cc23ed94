package models

// RawListing is one vacancy item as returned by the hh.ru search API.
// Sub-objects and scalars that hh may send as null are pointers.
type RawListing struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Employer     Employer `json:"employer"`
	Salary       *Salary  `json:"salary"`
	Snippet      *Snippet `json:"snippet"`
	PublishedAt  string   `json:"published_at"`
	Url          string   `json:"url"`
	AlternateUrl string   `json:"alternate_url,omitempty"`
}

type Employer struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Url          string  `json:"url"`
	AlternateUrl *string `json:"alternate_url"`
	Trusted      *bool   `json:"trusted"`
}

type Salary struct {
	From     *int    `json:"from"`
	To       *int    `json:"to"`
	Currency *string `json:"currency"`
}

type Snippet struct {
	Requirement    *string `json:"requirement"`
	Responsibility *string `json:"responsibility"`
}
