// Package roster holds the static reference data the validator checks
// submissions against: the student roster and the complaint categories.
// Both are loaded once at process start and immutable afterwards.
package roster

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed students.json
var embeddedStudents []byte

// Student is one roster entry. Display form is "<last name> <first name>".
type Student struct {
	No        int    `json:"no"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
}

// FullName returns the display form used on the submission form.
func (s Student) FullName() string {
	return s.LastName + " " + s.FirstName
}

// Categories is the fixed complaint category allow-list.
var Categories = []string{
	"Academic Issues",
	"Examination & Grading",
	"Administrative Matters",
	"Technical Support",
	"Other",
}

// Roster is an immutable membership set of valid student names and
// categories.
type Roster struct {
	students []Student
	names    map[string]struct{}
	cats     map[string]struct{}
}

// Load reads the roster from path, or from the embedded default when path is
// empty.
func Load(path string) (*Roster, error) {
	data := embeddedStudents
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read roster file: %w", err)
		}
	}

	var students []Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}

	r := &Roster{
		students: students,
		names:    make(map[string]struct{}, len(students)),
		cats:     make(map[string]struct{}, len(Categories)),
	}
	for _, s := range students {
		r.names[s.FullName()] = struct{}{}
	}
	for _, c := range Categories {
		r.cats[c] = struct{}{}
	}
	return r, nil
}

// ContainsStudent reports whether name (already trimmed) is on the roster.
// Matching is exact, including case.
func (r *Roster) ContainsStudent(name string) bool {
	_, ok := r.names[name]
	return ok
}

// ContainsCategory reports whether category (already trimmed) is one of the
// fixed allow-list entries.
func (r *Roster) ContainsCategory(category string) bool {
	_, ok := r.cats[category]
	return ok
}

// Names returns the sorted student display names, for the operator CLI.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.names))
	for n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of students on the roster.
func (r *Roster) Size() int { return len(r.students) }

// FindStudent locates a roster entry by display name, case-insensitively.
// Used by the operator CLI to suggest the exact spelling.
func (r *Roster) FindStudent(name string) (Student, bool) {
	for _, s := range r.students {
		if strings.EqualFold(s.FullName(), strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Student{}, false
}
