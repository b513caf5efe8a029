package service

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/szlg-ftv/ftv-api/internal/models"
	"github.com/szlg-ftv/ftv-api/pkg/csvimport"
)

// headerAliases maps every header spelling the dashboard template and hand-made
// spreadsheets use onto a canonical field. Keys are NFC lowercase.
var headerAliases = map[string]string{
	"vezetéknév":  models.FieldLastName,
	"vezetek nev": models.FieldLastName,
	"vezetek_nev": models.FieldLastName,
	"vezetéknev":  models.FieldLastName,
	"családnév":   models.FieldLastName,
	"last name":   models.FieldLastName,
	"last_name":   models.FieldLastName,
	"lastname":    models.FieldLastName,
	"surname":     models.FieldLastName,

	"keresztnév":  models.FieldFirstName,
	"kereszt nev": models.FieldFirstName,
	"kereszt_nev": models.FieldFirstName,
	"keresztnev":  models.FieldFirstName,
	"utónév":      models.FieldFirstName,
	"first name":  models.FieldFirstName,
	"first_name":  models.FieldFirstName,
	"firstname":   models.FieldFirstName,

	"email":          models.FieldEmail,
	"e-mail":         models.FieldEmail,
	"e-mail cím":     models.FieldEmail,
	"email cím":      models.FieldEmail,
	"email cim":      models.FieldEmail,
	"e-mail cim":     models.FieldEmail,
	"email address":  models.FieldEmail,
	"e-mail address": models.FieldEmail,

	"telefonszám":  models.FieldPhone,
	"telefonszam":  models.FieldPhone,
	"telefon":      models.FieldPhone,
	"phone":        models.FieldPhone,
	"phone number": models.FieldPhone,

	"stáb": models.FieldStab,
	"stab": models.FieldStab,
	"crew": models.FieldStab,
	"team": models.FieldStab,

	"kezdés éve": models.FieldStartYear,
	"kezdes eve": models.FieldStartYear,
	"kezdes_eve": models.FieldStartYear,
	"kezdési év": models.FieldStartYear,
	"kezdés":     models.FieldStartYear,
	"start year": models.FieldStartYear,
	"start_year": models.FieldStartYear,

	"tagozat":    models.FieldTagozat,
	"department": models.FieldTagozat,
	"section":    models.FieldTagozat,

	"rádió":       models.FieldRadio,
	"radio":       models.FieldRadio,
	"rádiós stáb": models.FieldRadio,
	"radio crew":  models.FieldRadio,

	"gyártásvezető":      models.FieldProductionMgr,
	"gyártásvezető?":     models.FieldProductionMgr,
	"gyartasvezeto":      models.FieldProductionMgr,
	"production manager": models.FieldProductionMgr,

	"médiatanár":    models.FieldMediaTeacher,
	"médiatanár?":   models.FieldMediaTeacher,
	"mediatanar":    models.FieldMediaTeacher,
	"mediatana":     models.FieldMediaTeacher,
	"media teacher": models.FieldMediaTeacher,

	"osztályfőnök":     models.FieldClassTeacher,
	"osztályfőnök?":    models.FieldClassTeacher,
	"osztalyfonok":     models.FieldClassTeacher,
	"class teacher":    models.FieldClassTeacher,
	"homeroom teacher": models.FieldClassTeacher,

	"osztályai": models.FieldClasses,
	"osztalyai": models.FieldClasses,
	"osztályok": models.FieldClasses,
	"classes":   models.FieldClasses,
}

// canonicalFields lists the fields in template column order.
var canonicalFields = []string{
	models.FieldLastName,
	models.FieldFirstName,
	models.FieldEmail,
	models.FieldPhone,
	models.FieldStab,
	models.FieldStartYear,
	models.FieldTagozat,
	models.FieldRadio,
	models.FieldProductionMgr,
	models.FieldMediaTeacher,
	models.FieldClassTeacher,
	models.FieldClasses,
}

// templateHeaders holds the preferred header for each canonical field.
var templateHeaders = map[string]string{
	models.FieldLastName:      "Vezetéknév",
	models.FieldFirstName:     "Keresztnév",
	models.FieldEmail:         "E-mail cím",
	models.FieldPhone:         "Telefonszám",
	models.FieldStab:          "Stáb",
	models.FieldStartYear:     "Kezdés éve",
	models.FieldTagozat:       "Tagozat",
	models.FieldRadio:         "Rádió",
	models.FieldProductionMgr: "Gyártásvezető",
	models.FieldMediaTeacher:  "Médiatanár",
	models.FieldClassTeacher:  "Osztályfőnök",
	models.FieldClasses:       "Osztályai",
}

// NormalizeHeader maps a header cell to its canonical field name. Unknown
// headers are lowercased with every rune outside [a-z0-9] replaced by '_'.
func NormalizeHeader(header string) string {
	composed := norm.NFC.String(header)
	key := strings.ToLower(strings.TrimSpace(composed))
	if field, ok := headerAliases[key]; ok {
		return field
	}
	return sanitizeHeader(composed)
}

func sanitizeHeader(raw string) string {
	raw = strings.ToLower(raw)
	var b strings.Builder
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// NormalizeRow renames the cells of a raw row to canonical fields and trims
// every value. Canonical fields without a column are present as "".
func NormalizeRow(raw csvimport.RawRow) models.NormalizedRow {
	row := make(models.NormalizedRow, len(canonicalFields)+len(raw))
	for _, field := range canonicalFields {
		row[field] = ""
	}
	headers := make([]string, 0, len(raw))
	for header := range raw {
		headers = append(headers, header)
	}
	sort.Strings(headers)

	for _, header := range headers {
		field := NormalizeHeader(header)
		value := strings.TrimSpace(raw[header])
		// Two columns may share a canonical name; an empty duplicate never hides a filled one.
		if existing := row[field]; existing != "" && value == "" {
			continue
		}
		row[field] = value
	}
	return row
}
