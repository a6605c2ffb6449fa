package records

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date serialized as "2006-01-02", matching the
// backend's LocalDate fields.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Student mirrors the backend's estudiante resource.
type Student struct {
	ID         int      `json:"id"`
	FirstName  string   `json:"nombre"`
	LastName   string   `json:"apellido"`
	Email      string   `json:"correo"`
	BirthDate  Date     `json:"fecha_nacimiento"`
	CourseIDs  []int    `json:"cursoIds"`
	ProjectIDs []string `json:"proyectoIds"`
}

// FullName joins first and last name for display.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Professor mirrors the backend's profesor resource. IDs are UUID strings.
type Professor struct {
	ID              string `json:"id"`
	FirstName       string `json:"nombre"`
	LastName        string `json:"apellido"`
	Email           string `json:"correo"`
	Specialty       string `json:"especialidad"`
	Phone           string `json:"telefono"`
	Degree          string `json:"gradoAcademico"`
	YearsExperience int    `json:"anosExperiencia"`
	Active          bool   `json:"activo"`
	CourseIDs       []int  `json:"cursoIds"`
}

func (p Professor) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Course mirrors the backend's curso resource.
type Course struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	Code    string `json:"codigo"`
	Credits int    `json:"creditos"`
}

// Project mirrors the backend's proyecto de investigación resource.
type Project struct {
	ID      string `json:"id"`
	Title   string `json:"titulo"`
	Summary string `json:"descripcion"`
	Lead    string `json:"responsable"`
	Year    int    `json:"anio"`
}

// DashboardStats is the aggregate count payload behind the console's
// landing page.
type DashboardStats struct {
	TotalStudents   int64 `json:"totalEstudiantes"`
	TotalProfessors int64 `json:"totalProfesores"`
	TotalCourses    int64 `json:"totalCursos"`
	TotalProjects   int64 `json:"totalProyectos"`
}

// StudentReport is the per-student integral report: the student plus
// resolved course and project records.
type StudentReport struct {
	Student  Student   `json:"estudiante"`
	Courses  []Course  `json:"cursos"`
	Projects []Project `json:"proyectos"`
}
