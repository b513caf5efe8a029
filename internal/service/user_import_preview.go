package service

import (
	"strconv"
	"strings"

	"github.com/szlg-ftv/ftv-api/internal/models"
)

const noClassAssigned = "nincs megadott osztály"

// orderedSet keeps distinct strings in first-seen order so previews are stable.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) add(value string) {
	if value == "" {
		return
	}
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
}

// BuildModelPreview derives the crews, radio crews, classes and class teacher
// assignments an import of users would create.
func BuildModelPreview(users []models.ParsedUser) models.ModelPreview {
	stabs := newOrderedSet()
	radios := newOrderedSet()
	classes := newOrderedSet()
	assignments := []string{}

	for _, user := range users {
		stabs.add(user.Stab)
		radios.add(user.Radio)
		if user.KezdesEve != nil && user.Tagozat != "" {
			classes.add(strconv.Itoa(*user.KezdesEve) + user.Tagozat)
		}
		for _, class := range user.Osztalyai {
			classes.add(class)
		}
		if user.Osztalyfonok {
			target := noClassAssigned
			if len(user.Osztalyai) > 0 {
				target = strings.Join(user.Osztalyai, ", ")
			}
			assignments = append(assignments, user.FullName()+" → "+target)
		}
	}

	return models.ModelPreview{
		Stabs:                   stabs.items,
		RadioStabs:              radios.items,
		Classes:                 classes.items,
		ClassTeacherAssignments: assignments,
	}
}

// BuildSummary counts roles and memberships over the accepted users.
func BuildSummary(users []models.ParsedUser) models.ImportSummary {
	summary := models.ImportSummary{TotalUsers: len(users)}
	for _, user := range users {
		if user.Stab != "" {
			summary.UsersWithStab++
		}
		if user.Radio != "" {
			summary.UsersWithRadio++
		}
		if len(user.Osztalyai) > 0 {
			summary.UsersWithClasses++
		}
		if user.Gyartasvezeto {
			summary.ProductionManagers++
		}
		if user.Mediatana {
			summary.MediaTeachers++
		}
		if user.Osztalyfonok {
			summary.ClassTeachers++
		}
	}
	return summary
}
