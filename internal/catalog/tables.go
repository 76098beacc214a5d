package catalog

import "github.com/noah-isme/k12-registration-api/internal/models"

var feeStructures = []models.FeeStructure{
	{Grade: models.GradeKindergarten, TuitionFee: 15000, AdmissionFee: 5000, BooksFee: 2000, UniformFee: 3000, TransportFee: 8000, Total: 33000},
	{Grade: models.Grade1To5, TuitionFee: 18000, AdmissionFee: 5000, BooksFee: 3000, UniformFee: 3500, TransportFee: 8000, Total: 37500},
	{Grade: models.Grade6To8, TuitionFee: 22000, AdmissionFee: 6000, BooksFee: 4000, UniformFee: 4000, TransportFee: 9000, Total: 45000},
	{Grade: models.Grade9To10, TuitionFee: 26000, AdmissionFee: 7000, BooksFee: 5000, UniformFee: 4500, TransportFee: 10000, Total: 52500},
	{Grade: models.Grade11To12, TuitionFee: 30000, AdmissionFee: 8000, BooksFee: 6000, UniformFee: 5000, TransportFee: 10000, Total: 59000},
}

var curriculums = []models.Curriculum{
	{
		Grade: models.GradeKindergarten,
		Subjects: []models.Subject{
			{Name: "Pre-Math", Description: "Basic number concepts and counting", HoursPerWeek: 5},
			{Name: "Language Arts", Description: "Letter recognition and phonics", HoursPerWeek: 6},
			{Name: "Creative Arts", Description: "Drawing, coloring, and crafts", HoursPerWeek: 4},
			{Name: "Physical Education", Description: "Basic motor skills and games", HoursPerWeek: 3},
			{Name: "Story Time", Description: "Listening skills and imagination", HoursPerWeek: 2},
		},
		TotalHours: 20,
	},
	{
		Grade: models.Grade1To5,
		Subjects: []models.Subject{
			{Name: "Mathematics", Description: "Arithmetic, geometry, and problem solving", HoursPerWeek: 6},
			{Name: "English", Description: "Reading, writing, and communication", HoursPerWeek: 6},
			{Name: "Science", Description: "Basic scientific concepts and experiments", HoursPerWeek: 4},
			{Name: "Social Studies", Description: "History, geography, and civics", HoursPerWeek: 3},
			{Name: "Physical Education", Description: "Sports and physical fitness", HoursPerWeek: 2},
			{Name: "Arts & Crafts", Description: "Creative expression and fine motor skills", HoursPerWeek: 2},
			{Name: "Computer Basics", Description: "Introduction to technology", HoursPerWeek: 2},
		},
		TotalHours: 25,
	},
	{
		Grade: models.Grade6To8,
		Subjects: []models.Subject{
			{Name: "Mathematics", Description: "Algebra, geometry, and advanced arithmetic", HoursPerWeek: 6},
			{Name: "English Literature", Description: "Reading comprehension and creative writing", HoursPerWeek: 5},
			{Name: "Science", Description: "Physics, chemistry, and biology basics", HoursPerWeek: 6},
			{Name: "Social Studies", Description: "World history and cultural studies", HoursPerWeek: 4},
			{Name: "Physical Education", Description: "Team sports and fitness training", HoursPerWeek: 3},
			{Name: "Art & Music", Description: "Visual arts and musical appreciation", HoursPerWeek: 2},
			{Name: "Computer Science", Description: "Programming basics and digital literacy", HoursPerWeek: 2},
			{Name: "Foreign Language", Description: "Spanish or French language learning", HoursPerWeek: 2},
		},
		TotalHours: 30,
	},
	{
		Grade: models.Grade9To10,
		Subjects: []models.Subject{
			{Name: "Advanced Mathematics", Description: "Algebra II, trigonometry, and pre-calculus", HoursPerWeek: 6},
			{Name: "English Literature", Description: "Classic literature and advanced composition", HoursPerWeek: 5},
			{Name: "Biology", Description: "Life sciences and laboratory work", HoursPerWeek: 4},
			{Name: "Chemistry", Description: "Chemical principles and experiments", HoursPerWeek: 4},
			{Name: "Physics", Description: "Mechanical and electrical physics", HoursPerWeek: 4},
			{Name: "World History", Description: "Global historical perspectives", HoursPerWeek: 3},
			{Name: "Physical Education", Description: "Advanced fitness and sports", HoursPerWeek: 2},
			{Name: "Electives", Description: "Art, music, or additional language", HoursPerWeek: 2},
		},
		TotalHours: 30,
	},
	{
		Grade: models.Grade11To12,
		Subjects: []models.Subject{
			{Name: "Calculus", Description: "Advanced mathematical concepts", HoursPerWeek: 6},
			{Name: "Advanced English", Description: "College-level writing and literature", HoursPerWeek: 5},
			{Name: "Advanced Sciences", Description: "AP Biology, Chemistry, or Physics", HoursPerWeek: 6},
			{Name: "Economics", Description: "Micro and macroeconomic principles", HoursPerWeek: 3},
			{Name: "Government", Description: "Political science and civics", HoursPerWeek: 2},
			{Name: "College Prep", Description: "SAT preparation and college counseling", HoursPerWeek: 2},
			{Name: "Electives", Description: "Specialized courses in chosen field", HoursPerWeek: 6},
		},
		TotalHours: 30,
	},
}

var schedules = []models.Schedule{
	{
		Grade:      models.GradeKindergarten,
		StartTime:  "8:30 AM",
		EndTime:    "12:30 PM",
		LunchBreak: "11:00 AM - 11:30 AM",
		Periods: []models.Period{
			{Time: "8:30 - 9:15 AM", Duration: "45 min"},
			{Time: "9:15 - 10:00 AM", Duration: "45 min"},
			{Time: "10:00 - 10:15 AM", Duration: "15 min (Break)"},
			{Time: "10:15 - 11:00 AM", Duration: "45 min"},
			{Time: "11:00 - 11:30 AM", Duration: "30 min (Lunch)"},
			{Time: "11:30 AM - 12:30 PM", Duration: "60 min"},
		},
	},
	{
		Grade:      models.Grade1To5,
		StartTime:  "8:00 AM",
		EndTime:    "2:30 PM",
		LunchBreak: "12:00 PM - 12:45 PM",
		Periods: []models.Period{
			{Time: "8:00 - 8:45 AM", Duration: "45 min"},
			{Time: "8:45 - 9:30 AM", Duration: "45 min"},
			{Time: "9:30 - 10:15 AM", Duration: "45 min"},
			{Time: "10:15 - 10:30 AM", Duration: "15 min (Break)"},
			{Time: "10:30 - 11:15 AM", Duration: "45 min"},
			{Time: "11:15 AM - 12:00 PM", Duration: "45 min"},
			{Time: "12:00 - 12:45 PM", Duration: "45 min (Lunch)"},
			{Time: "12:45 - 1:30 PM", Duration: "45 min"},
			{Time: "1:30 - 2:30 PM", Duration: "60 min"},
		},
	},
	{
		Grade:      models.Grade6To8,
		StartTime:  "7:45 AM",
		EndTime:    "3:15 PM",
		LunchBreak: "12:15 PM - 1:00 PM",
		Periods: []models.Period{
			{Time: "7:45 - 8:30 AM", Duration: "45 min"},
			{Time: "8:30 - 9:15 AM", Duration: "45 min"},
			{Time: "9:15 - 10:00 AM", Duration: "45 min"},
			{Time: "10:00 - 10:15 AM", Duration: "15 min (Break)"},
			{Time: "10:15 - 11:00 AM", Duration: "45 min"},
			{Time: "11:00 - 11:45 AM", Duration: "45 min"},
			{Time: "11:45 AM - 12:15 PM", Duration: "30 min"},
			{Time: "12:15 - 1:00 PM", Duration: "45 min (Lunch)"},
			{Time: "1:00 - 1:45 PM", Duration: "45 min"},
			{Time: "1:45 - 2:30 PM", Duration: "45 min"},
			{Time: "2:30 - 3:15 PM", Duration: "45 min"},
		},
	},
	{
		Grade:      models.Grade9To10,
		StartTime:  "7:30 AM",
		EndTime:    "3:30 PM",
		LunchBreak: "12:00 PM - 12:45 PM",
		Periods: []models.Period{
			{Time: "7:30 - 8:15 AM", Duration: "45 min"},
			{Time: "8:15 - 9:00 AM", Duration: "45 min"},
			{Time: "9:00 - 9:45 AM", Duration: "45 min"},
			{Time: "9:45 - 10:00 AM", Duration: "15 min (Break)"},
			{Time: "10:00 - 10:45 AM", Duration: "45 min"},
			{Time: "10:45 - 11:30 AM", Duration: "45 min"},
			{Time: "11:30 AM - 12:00 PM", Duration: "30 min"},
			{Time: "12:00 - 12:45 PM", Duration: "45 min (Lunch)"},
			{Time: "12:45 - 1:30 PM", Duration: "45 min"},
			{Time: "1:30 - 2:15 PM", Duration: "45 min"},
			{Time: "2:15 - 3:00 PM", Duration: "45 min"},
			{Time: "3:00 - 3:30 PM", Duration: "30 min (Study Hall)"},
		},
	},
	{
		Grade:      models.Grade11To12,
		StartTime:  "7:30 AM",
		EndTime:    "3:45 PM",
		LunchBreak: "12:00 PM - 12:45 PM",
		Periods: []models.Period{
			{Time: "7:30 - 8:15 AM", Duration: "45 min"},
			{Time: "8:15 - 9:00 AM", Duration: "45 min"},
			{Time: "9:00 - 9:45 AM", Duration: "45 min"},
			{Time: "9:45 - 10:00 AM", Duration: "15 min (Break)"},
			{Time: "10:00 - 10:45 AM", Duration: "45 min"},
			{Time: "10:45 - 11:30 AM", Duration: "45 min"},
			{Time: "11:30 AM - 12:00 PM", Duration: "30 min"},
			{Time: "12:00 - 12:45 PM", Duration: "45 min (Lunch)"},
			{Time: "12:45 - 1:30 PM", Duration: "45 min"},
			{Time: "1:30 - 2:15 PM", Duration: "45 min"},
			{Time: "2:15 - 3:00 PM", Duration: "45 min"},
			{Time: "3:00 - 3:45 PM", Duration: "45 min (Study Hall/AP Prep)"},
		},
	},
}
