package allocator

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/examdesk/seatmap/pkg/core/model"
)

// Canonical column keys for student source rows. Loaders translate whatever
// headers the workbook uses into these before handing rows to BuildPool.
const (
	ColName       = "name"
	ColClass      = "class"
	ColStudentID  = "student_id"
	ColSeatNumber = "seat_number"
	ColFlex       = "flex"
)

// RequiredColumns lists the keys every student source row must carry.
// The flex flag is deliberately absent: a missing flag means "not exempt".
var RequiredColumns = []string{ColName, ColClass, ColStudentID, ColSeatNumber}

// RawStudent is one student source row keyed by canonical column name.
type RawStudent map[string]any

// sourceStudent is the decoded shape of a raw row before projection.
type sourceStudent struct {
	Name       string `mapstructure:"name"`
	Class      string `mapstructure:"class"`
	StudentID  string `mapstructure:"student_id"`
	SeatNumber string `mapstructure:"seat_number"`
	Flex       any    `mapstructure:"flex"`
}

// Pool is one group's queue of students awaiting seating. Once built it only
// supports front-removal: the order fixed at construction time is the order
// students are seated in.
type Pool struct {
	students []model.Student
}

// NewPool wraps an already-ordered list of students. Used when the caller
// controls ordering, e.g. tests exercising a known sequence. BuildPool is
// the production path.
func NewPool(students []model.Student) *Pool {
	return &Pool{students: append([]model.Student(nil), students...)}
}

// BuildPool turns raw source rows into a seating pool:
//  1. drop rows whose flex flag marks the student as exempt from seating,
//  2. shuffle the remainder once with a fresh random draw,
//  3. project each row down to the four fields the seat map needs.
//
// Seating order is intentionally different on every run; there is no seed.
// Returns *MissingColumnError if any row lacks a required column.
func BuildPool(rows []RawStudent) (*Pool, error) {
	students := make([]model.Student, 0, len(rows))

	for i, row := range rows {
		for _, col := range RequiredColumns {
			if _, ok := row[col]; !ok {
				return nil, &MissingColumnError{Column: col}
			}
		}

		var src sourceStudent
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &src,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build row decoder: %w", err)
		}
		if err := decoder.Decode(map[string]any(row)); err != nil {
			return nil, fmt.Errorf("failed to decode student row %d: %w", i, err)
		}

		if IsExempt(src.Flex) {
			continue
		}

		students = append(students, model.Student{
			Name:       src.Name,
			Class:      src.Class,
			StudentID:  src.StudentID,
			SeatNumber: src.SeatNumber,
		})
	}

	rand.Shuffle(len(students), func(i, j int) {
		students[i], students[j] = students[j], students[i]
	})

	return &Pool{students: students}, nil
}

// IsExempt reports whether a flex flag value marks a student as exempt from
// seated allocation. A student is exempt iff the flag equals 1: numeric 1
// (spreadsheet cells often decode as float64) or the strings "1"/"1.0".
// Missing, empty and every other value keep the student in the pool.
func IsExempt(flag any) bool {
	switch v := flag.(type) {
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed == "1" || trimmed == "1.0"
	default:
		return false
	}
}

// Pop removes and returns the front student. The second return is false once
// the pool is exhausted.
func (p *Pool) Pop() (model.Student, bool) {
	if len(p.students) == 0 {
		return model.Student{}, false
	}
	next := p.students[0]
	p.students = p.students[1:]
	return next, true
}

// Len returns the number of students still awaiting a seat.
func (p *Pool) Len() int {
	return len(p.students)
}

// Snapshot returns a copy of the remaining queue in order. The pool itself
// is untouched; the copy is safe to hold across an allocation run.
func (p *Pool) Snapshot() []model.Student {
	return append([]model.Student(nil), p.students...)
}
