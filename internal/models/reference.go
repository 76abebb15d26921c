package models

// Branches lists the branches offered in catalog filters
var Branches = []string{
	"Computer Science",
	"AIML",
	"Information Technology",
	"Electronics & Telecommunication",
	"Mechanical Engineering",
	"Civil Engineering",
	"Electrical Engineering",
	"Mathematics",
	"Physics",
}

// Semesters lists the semesters offered in filters and the upload form
var Semesters = []string{
	"Semester 1", "Semester 2", "Semester 3", "Semester 4",
	"Semester 5", "Semester 6", "Semester 7", "Semester 8",
}

// Modules lists the modules offered in filters and the upload form
var Modules = []string{"Module 1", "Module 2", "Module 3", "Module 4", "Module 5"}

// PredefinedSubjects holds the well-known subjects of each branch
var PredefinedSubjects = map[string][]string{
	"Computer Science": {
		"Data Structures", "Algorithms", "Database Management Systems", "Operating Systems",
		"Computer Networks", "Object Oriented Programming", "Discrete Mathematics",
		"Digital Logic Design", "Theory of Computation", "Compiler Design",
	},
	"AIML": {
		"Artificial Intelligence", "Machine Learning", "Deep Learning", "Data Science",
		"Natural Language Processing", "Statistics for Data Science", "Python Programming",
	},
	"Information Technology": {
		"Web Development", "Software Engineering", "Information Security",
		"Cloud Computing", "Data Mining", "E-Commerce",
	},
	"Electronics & Telecommunication": {
		"Analog Circuits", "Digital Circuits", "Signals and Systems", "Control Systems",
		"Microprocessors", "Communication Systems", "Electromagnetics",
	},
	"Mechanical Engineering": {
		"Thermodynamics", "Fluid Mechanics", "Strength of Materials", "Kinematics of Machines",
		"Dynamics of Machinery", "Heat Transfer", "Manufacturing Processes",
	},
	"Civil Engineering": {
		"Structural Analysis", "Geotechnical Engineering", "Fluid Mechanics", "Surveying",
		"Transportation Engineering", "Environmental Engineering", "Concrete Technology",
	},
	"Electrical Engineering": {
		"Circuit Theory", "Electrical Machines", "Power Systems", "Control Systems",
		"Power Electronics", "Analog and Digital Electronics",
	},
	"Mathematics": {
		"Engineering Mathematics I", "Engineering Mathematics II", "Engineering Mathematics III",
		"Engineering Mathematics IV", "Probability and Statistics",
	},
	"Physics": {
		"Engineering Physics", "Quantum Physics", "Optics", "Solid State Physics",
	},
}

// Options bundles the dropdown values used by the front-ends
type Options struct {
	Branches  []string `json:"branches"`
	Semesters []string `json:"semesters"`
	Modules   []string `json:"modules"`
}
