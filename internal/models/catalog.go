package models

// FeeStructure is the annual fee breakdown for a grade band, in dollars.
type FeeStructure struct {
	Grade        Grade `json:"grade"`
	TuitionFee   int   `json:"tuitionFee"`
	AdmissionFee int   `json:"admissionFee"`
	BooksFee     int   `json:"booksFee"`
	UniformFee   int   `json:"uniformFee"`
	TransportFee int   `json:"transportFee"`
	Total        int   `json:"total"`
}

// Subject is one course in a curriculum.
type Subject struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	HoursPerWeek int    `json:"hoursPerWeek"`
}

// Curriculum lists the subjects taught in a grade band.
type Curriculum struct {
	Grade      Grade     `json:"grade"`
	Subjects   []Subject `json:"subjects"`
	TotalHours int       `json:"totalHours"`
}

// Period is a single slot of the daily timetable.
type Period struct {
	Time     string `json:"time"`
	Duration string `json:"duration"`
}

// Schedule is the daily timetable for a grade band.
type Schedule struct {
	Grade      Grade    `json:"grade"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	LunchBreak string   `json:"lunchBreak"`
	Periods    []Period `json:"periods"`
}
