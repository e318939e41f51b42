package domain

// DocumentCounter is the running sequence for one (company, journal type,
// fiscal year) group. The next value handed out is always LastValue + 1;
// allocation happens through a single atomic SQL statement, never a
// read-then-write pair.
type DocumentCounter struct {
	CompanyID   string      `json:"companyID"`
	CounterType JournalType `json:"counterType"`
	Year        int         `json:"year"`
	LastValue   int64       `json:"lastValue"`
}
