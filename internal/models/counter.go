package models

// DocumentCounter maps to the document_counters table.
// PRIMARY KEY(company_id, counter_type, year).
type DocumentCounter struct {
	CompanyID   string      `json:"companyID"`
	CounterType JournalType `json:"counterType"`
	Year        int         `json:"year"`
	LastValue   int64       `json:"lastValue"`
}
