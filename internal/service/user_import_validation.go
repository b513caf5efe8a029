package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/szlg-ftv/ftv-api/internal/models"
)

// EmailTag is the validator tag checking the local@domain.tld shape.
const EmailTag = "ftv_email"

// \p{Z} covers Unicode separators such as U+00A0, which \s does not match.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

var truthyValues = map[string]struct{}{
	"igen": {},
	"true": {},
	"1":    {},
}

// RowValidator turns normalized rows into parsed users, collecting row errors
// and warnings instead of stopping at the first bad row.
type RowValidator struct {
	validate *validator.Validate
}

// NewRowValidator registers the email rule on validate (a fresh validator when nil).
func NewRowValidator(validate *validator.Validate) (*RowValidator, error) {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", EmailTag, err)
	}
	return &RowValidator{validate: validate}, nil
}

// Validate checks every row in order. Row i is reported as line i+2 of the file.
func (v *RowValidator) Validate(rows []models.NormalizedRow) models.ValidationOutcome {
	return v.ValidateLines(rows, nil)
}

// ValidateLines is Validate with the file line of every row supplied by the
// reader, so messages stay accurate when the file contains empty lines. A lines
// slice that does not match rows in length falls back to i+2.
func (v *RowValidator) ValidateLines(rows []models.NormalizedRow, lines []int) models.ValidationOutcome {
	if len(lines) != len(rows) {
		lines = nil
	}
	outcome := models.ValidationOutcome{
		Users:    []models.ParsedUser{},
		Errors:   []string{},
		Warnings: []string{},
	}

	for i, row := range rows {
		line := i + 2
		if lines != nil {
			line = lines[i]
		}
		user, rowErr, warnings, skipped := v.validateRow(line, row)
		switch {
		case skipped:
			outcome.Skipped++
		case rowErr != "":
			outcome.Errors = append(outcome.Errors, rowErr)
			outcome.Rejected++
		default:
			outcome.Warnings = append(outcome.Warnings, warnings...)
			outcome.Users = append(outcome.Users, user)
		}
	}

	return outcome
}

func (v *RowValidator) validateRow(line int, row models.NormalizedRow) (user models.ParsedUser, rowErr string, warnings []string, skipped bool) {
	lastName := row.Get(models.FieldLastName)
	firstName := row.Get(models.FieldFirstName)
	email := row.Get(models.FieldEmail)

	switch {
	case lastName == "" && firstName == "":
		return user, "", nil, true
	case lastName == "":
		return user, rowMessage(line, "Vezetéknév hiányzik"), nil, false
	case firstName == "":
		return user, rowMessage(line, "Keresztnév hiányzik"), nil, false
	case email == "":
		return user, rowMessage(line, "Email cím hiányzik"), nil, false
	}
	if err := v.validate.Var(email, EmailTag); err != nil {
		return user, rowMessage(line, fmt.Sprintf("Érvénytelen email formátum: '%s'", email)), nil, false
	}

	var startYear *int
	if raw := row.Get(models.FieldStartYear); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			warnings = append(warnings, rowMessage(line, fmt.Sprintf("Érvénytelen kezdési év: '%s'", raw)))
		} else {
			startYear = &year
		}
	}

	user = models.ParsedUser{
		VezetekNev:    lastName,
		KeresztNev:    firstName,
		Email:         email,
		Telefonszam:   row.Get(models.FieldPhone),
		Stab:          row.Get(models.FieldStab),
		KezdesEve:     startYear,
		Tagozat:       row.Get(models.FieldTagozat),
		Radio:         row.Get(models.FieldRadio),
		Gyartasvezeto: ParseBool(row.Get(models.FieldProductionMgr)),
		Mediatana:     ParseBool(row.Get(models.FieldMediaTeacher)),
		Osztalyfonok:  ParseBool(row.Get(models.FieldClassTeacher)),
		Osztalyai:     SplitClasses(row.Get(models.FieldClasses)),
	}

	if user.Telefonszam == "" {
		warnings = append(warnings, rowMessage(line, user.FullName()+": Nincs telefonszám megadva"))
	}

	return user, "", warnings, false
}

// ParseBool accepts igen/true/1 in any case; everything else is false.
func ParseBool(raw string) bool {
	_, ok := truthyValues[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// SplitClasses splits a semicolon separated class list, dropping empty entries.
func SplitClasses(raw string) []string {
	classes := []string{}
	for _, part := range strings.Split(raw, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			classes = append(classes, trimmed)
		}
	}
	return classes
}

func rowMessage(line int, msg string) string {
	return fmt.Sprintf("%d. sor: %s", line, msg)
}
