package models

// Canonical field names of a normalized import row.
const (
	FieldLastName      = "vezetek_nev"
	FieldFirstName     = "kereszt_nev"
	FieldEmail         = "email"
	FieldPhone         = "telefonszam"
	FieldStab          = "stab"
	FieldStartYear     = "kezdes_eve"
	FieldTagozat       = "tagozat"
	FieldRadio         = "radio"
	FieldProductionMgr = "gyartasvezeto"
	FieldMediaTeacher  = "mediatana"
	FieldClassTeacher  = "osztalyfonok"
	FieldClasses       = "osztalyai"
)

// NormalizedRow maps canonical field names to trimmed cell values.
type NormalizedRow map[string]string

// Get returns the value of field, or "" when the column was absent.
func (r NormalizedRow) Get(field string) string {
	return r[field]
}

// ParsedUser is a fully validated import row.
type ParsedUser struct {
	VezetekNev    string   `json:"vezetek_nev"`
	KeresztNev    string   `json:"kereszt_nev"`
	Email         string   `json:"email"`
	Telefonszam   string   `json:"telefonszam,omitempty"`
	Stab          string   `json:"stab,omitempty"`
	KezdesEve     *int     `json:"kezdes_eve,omitempty"`
	Tagozat       string   `json:"tagozat,omitempty"`
	Radio         string   `json:"radio,omitempty"`
	Gyartasvezeto bool     `json:"gyartasvezeto"`
	Mediatana     bool     `json:"mediatana"`
	Osztalyfonok  bool     `json:"osztalyfonok"`
	Osztalyai     []string `json:"osztalyai"`
}

// FullName renders the name in Hungarian order.
func (u ParsedUser) FullName() string {
	return u.VezetekNev + " " + u.KeresztNev
}

// ValidationOutcome accumulates the result of validating every row of one file.
type ValidationOutcome struct {
	Users    []ParsedUser `json:"users"`
	Errors   []string     `json:"errors"`
	Warnings []string     `json:"warnings"`
	// Rejected counts rows that produced an error; Skipped counts blank rows.
	Rejected int `json:"-"`
	Skipped  int `json:"-"`
}

// ModelPreview lists the entities an import would create alongside the users.
type ModelPreview struct {
	Stabs                   []string `json:"stabs"`
	RadioStabs              []string `json:"radio_stabs"`
	Classes                 []string `json:"classes"`
	ClassTeacherAssignments []string `json:"class_teacher_assignments"`
}

// ImportSummary holds role and membership counts over the accepted users.
type ImportSummary struct {
	TotalUsers         int `json:"total_users"`
	UsersWithStab      int `json:"users_with_stab"`
	UsersWithRadio     int `json:"users_with_radio"`
	UsersWithClasses   int `json:"users_with_classes"`
	ProductionManagers int `json:"production_managers"`
	MediaTeachers      int `json:"media_teachers"`
	ClassTeachers      int `json:"class_teachers"`
}

// UserImportPreview is the full result of running the pipeline over one upload.
type UserImportPreview struct {
	Delimiter string
	Outcome   ValidationOutcome
	Summary   ImportSummary
	Preview   ModelPreview
	// Accepted reports whether the batch passes the import policy.
	Accepted bool
}

// TotalRecords counts the non-blank data rows of the file.
func (p *UserImportPreview) TotalRecords() int {
	return len(p.Outcome.Users) + p.Outcome.Rejected
}

// ImportMetricsSnapshot is a JSON view over the import counters.
type ImportMetricsSnapshot struct {
	RequestsTotal            uint64  `json:"requests_total"`
	AverageRequestDurationMs float64 `json:"average_request_duration_ms"`
	PreviewsTotal            uint64  `json:"previews_total"`
	PreviewsFailed           uint64  `json:"previews_failed"`
	RowsAccepted             uint64  `json:"rows_accepted"`
	RowsRejected             uint64  `json:"rows_rejected"`
	Goroutines               int     `json:"goroutines"`
}
