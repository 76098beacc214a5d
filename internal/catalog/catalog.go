// Package catalog serves the read-only fee, curriculum and schedule tables
// keyed by grade band.
package catalog

import "github.com/noah-isme/k12-registration-api/internal/models"

// Catalog is an immutable grade-keyed lookup built once at start-up.
type Catalog struct {
	fees        map[models.Grade]models.FeeStructure
	curriculums map[models.Grade]models.Curriculum
	schedules   map[models.Grade]models.Schedule
}

// Default returns the catalog built from the school's published tables.
func Default() *Catalog {
	return New(feeStructures, curriculums, schedules)
}

// New indexes the given rows by grade. Later rows win on duplicate grades.
func New(fees []models.FeeStructure, curr []models.Curriculum, sched []models.Schedule) *Catalog {
	c := &Catalog{
		fees:        make(map[models.Grade]models.FeeStructure, len(fees)),
		curriculums: make(map[models.Grade]models.Curriculum, len(curr)),
		schedules:   make(map[models.Grade]models.Schedule, len(sched)),
	}
	for _, f := range fees {
		c.fees[f.Grade] = f
	}
	for _, cu := range curr {
		cu.Subjects = append([]models.Subject(nil), cu.Subjects...)
		c.curriculums[cu.Grade] = cu
	}
	for _, s := range sched {
		s.Periods = append([]models.Period(nil), s.Periods...)
		c.schedules[s.Grade] = s
	}
	return c
}

// Fees returns the fee structure for a grade, or nil when none is published.
func (c *Catalog) Fees(grade models.Grade) *models.FeeStructure {
	f, ok := c.fees[grade]
	if !ok {
		return nil
	}
	return &f
}

// Curriculum returns the curriculum for a grade, or nil.
func (c *Catalog) Curriculum(grade models.Grade) *models.Curriculum {
	cu, ok := c.curriculums[grade]
	if !ok {
		return nil
	}
	cu.Subjects = append([]models.Subject(nil), cu.Subjects...)
	return &cu
}

// Schedule returns the daily timetable for a grade, or nil.
func (c *Catalog) Schedule(grade models.Grade) *models.Schedule {
	s, ok := c.schedules[grade]
	if !ok {
		return nil
	}
	s.Periods = append([]models.Period(nil), s.Periods...)
	return &s
}

// Entry bundles the three lookups for a grade. Missing rows stay nil.
type Entry struct {
	Grade      models.Grade         `json:"grade"`
	Fees       *models.FeeStructure `json:"fees"`
	Curriculum *models.Curriculum   `json:"curriculum"`
	Schedule   *models.Schedule     `json:"schedule"`
}

// Lookup returns every table's row for the grade.
func (c *Catalog) Lookup(grade models.Grade) Entry {
	return Entry{
		Grade:      grade,
		Fees:       c.Fees(grade),
		Curriculum: c.Curriculum(grade),
		Schedule:   c.Schedule(grade),
	}
}
