package company

import "time"

type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Phone1      string    `json:"phone1"`
	Phone2      string    `json:"phone2"`
	Logo        string    `json:"logo"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Address     string    `json:"address"`
	GSTNumber   string    `json:"gst_number"`
	Description string    `json:"description"`
	GPayNumber  string    `json:"gpay_number"`
	GPayUPI     string    `json:"gpay_upi"`
	Gmail       string    `json:"gmail"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input mirrors the multipart form. A nil field was not sent.
type Input struct {
	Name        *string
	Phone1      *string
	Phone2      *string
	City        *string
	State       *string
	Address     *string
	GSTNumber   *string
	Description *string
	GPayNumber  *string
	GPayUPI     *string
	Gmail       *string
	Country     *string
	// Logo is the stored file name of a newly uploaded logo, if any.
	Logo *string
}

// columns pairs each column with its value in the input.
func (in Input) columns() []column {
	return []column{
		{"name", in.Name},
		{"phone1", in.Phone1},
		{"phone2", in.Phone2},
		{"city", in.City},
		{"state", in.State},
		{"address", in.Address},
		{"gst_number", in.GSTNumber},
		{"description", in.Description},
		{"gpay_number", in.GPayNumber},
		{"gpay_upi", in.GPayUPI},
		{"gmail", in.Gmail},
		{"country", in.Country},
		{"logo", in.Logo},
	}
}

type column struct {
	name  string
	value *string
}
