package domain

type Dentist struct {
	ID           int64  `json:"id"`
	Registration string `json:"registration"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}
