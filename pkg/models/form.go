package models

// UTMParams carries the marketing attribution tags captured from the page
// query string. All fields are optional; submit time is authoritative.
type UTMParams struct {
	Source   string `json:"utm_source"`
	Medium   string `json:"utm_medium"`
	Campaign string `json:"utm_campaign"`
	Term     string `json:"utm_term"`
}

// BirthDate holds the three birth-date selects as the form sends them.
// Each part is a numeric string; empty means unset.
type BirthDate struct {
	Year  string `json:"year" binding:"required"`
	Month string `json:"month" binding:"required"`
	Day   string `json:"day" binding:"required"`
}

// ApplicantForm is the payload POSTed to /api/applicants.
type ApplicantForm struct {
	BirthDate       BirthDate `json:"birthDate" binding:"required"`
	LastName        string    `json:"lastName" binding:"required"`
	FirstName       string    `json:"firstName" binding:"required"`
	LastNameKana    string    `json:"lastNameKana" binding:"required"`
	FirstNameKana   string    `json:"firstNameKana" binding:"required"`
	PostalCode      string    `json:"postalCode"`
	PrefectureID    string    `json:"prefectureId"`
	MunicipalityID  string    `json:"municipalityId"`
	PhoneNumber     string    `json:"phoneNumber" binding:"required,jpphone"`
	PreferredTiming string    `json:"preferredTiming"`
	UTMParams       UTMParams `json:"utmParams"`
	Experiment      bool      `json:"experiment"`
	FormOrigin      string    `json:"formOrigin"`
}

// CoupangApplicantForm is the payload POSTed to /api/coupang/applicants.
// The coupang campaign collects the same fields but is routed to its own
// webhooks and carries a fixed attribution label.
type CoupangApplicantForm struct {
	BirthDate       BirthDate `json:"birthDate" binding:"required"`
	LastName        string    `json:"lastName" binding:"required"`
	FirstName       string    `json:"firstName" binding:"required"`
	LastNameKana    string    `json:"lastNameKana" binding:"required"`
	FirstNameKana   string    `json:"firstNameKana" binding:"required"`
	PostalCode      string    `json:"postalCode"`
	PhoneNumber     string    `json:"phoneNumber" binding:"required,jpphone"`
	PreferredTiming string    `json:"preferredTiming"`
	UTMParams       UTMParams `json:"utmParams"`
	Experiment      bool      `json:"experiment"`
}

// RequestMeta is server-side metadata stamped onto the structured record.
type RequestMeta struct {
	UserAgent   string
	ClientIP    string
	Environment string
	SubmittedAt string
}

// JobCountResult is the response body for GET /api/jobs-count.
type JobCountResult struct {
	PostalCode   string `json:"postalCode"`
	JobCount     int    `json:"jobCount"`
	SearchMethod string `json:"searchMethod"`
	SearchArea   string `json:"searchArea"`
	Message      string `json:"message"`
}
