package records

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// CSV export matching the console's table columns. Headers stay in the
// backend's language since that is what the reports' consumers read.

func WriteStudentsCSV(w io.Writer, items []Student) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "nombre", "apellido", "correo", "fecha_nacimiento", "cursos", "proyectos"}); err != nil {
		return err
	}
	for _, s := range items {
		courses := make([]string, len(s.CourseIDs))
		for i, id := range s.CourseIDs {
			courses[i] = strconv.Itoa(id)
		}
		row := []string{
			strconv.Itoa(s.ID),
			s.FirstName,
			s.LastName,
			s.Email,
			s.BirthDate.String(),
			strings.Join(courses, ";"),
			strings.Join(s.ProjectIDs, ";"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteProfessorsCSV(w io.Writer, items []Professor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "nombre", "apellido", "correo", "especialidad", "telefono", "gradoAcademico", "anosExperiencia", "activo"}); err != nil {
		return err
	}
	for _, p := range items {
		row := []string{
			p.ID,
			p.FirstName,
			p.LastName,
			p.Email,
			p.Specialty,
			p.Phone,
			p.Degree,
			strconv.Itoa(p.YearsExperience),
			strconv.FormatBool(p.Active),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCoursesCSV(w io.Writer, items []Course) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "nombre", "codigo", "creditos"}); err != nil {
		return err
	}
	for _, c := range items {
		row := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Code,
			strconv.Itoa(c.Credits),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteProjectsCSV(w io.Writer, items []Project) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "titulo", "descripcion", "responsable", "anio"}); err != nil {
		return err
	}
	for _, p := range items {
		row := []string{
			p.ID,
			p.Title,
			p.Summary,
			p.Lead,
			strconv.Itoa(p.Year),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
