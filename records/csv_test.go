package records

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing emitted CSV: %v", err)
	}
	return rows
}

func TestWriteStudentsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStudentsCSV(&buf, []Student{
		{
			ID:         1,
			FirstName:  "Ana",
			LastName:   "García",
			Email:      "ana@uni.edu",
			BirthDate:  NewDate(2001, time.March, 14),
			CourseIDs:  []int{10, 11},
			ProjectIDs: []string{"p-1"},
		},
	})
	if err != nil {
		t.Fatalf("WriteStudentsCSV: %v", err)
	}

	rows := parseCSV(t, buf.Bytes())
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[0][1] != "nombre" || rows[0][4] != "fecha_nacimiento" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "1" || row[1] != "Ana" || row[2] != "García" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[4] != "2001-03-14" {
		t.Fatalf("birth date not in date-only form: %q", row[4])
	}
	if row[5] != "10;11" {
		t.Fatalf("course ids not joined: %q", row[5])
	}
	if row[6] != "p-1" {
		t.Fatalf("project ids not joined: %q", row[6])
	}
}

func TestWriteProfessorsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteProfessorsCSV(&buf, []Professor{
		{
			ID:              "11111111-2222-3333-4444-555555555555",
			FirstName:       "Marta",
			LastName:        "Ruiz",
			Specialty:       "Bases de Datos",
			Degree:          "Doctorado",
			YearsExperience: 12,
			Active:          true,
		},
	})
	if err != nil {
		t.Fatalf("WriteProfessorsCSV: %v", err)
	}

	rows := parseCSV(t, buf.Bytes())
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	row := rows[1]
	if row[4] != "Bases de Datos" || row[7] != "12" || row[8] != "true" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestWriteCoursesAndProjectsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCoursesCSV(&buf, []Course{{ID: 10, Name: "Redes", Code: "CS-301", Credits: 4}}); err != nil {
		t.Fatalf("WriteCoursesCSV: %v", err)
	}
	rows := parseCSV(t, buf.Bytes())
	if rows[1][2] != "CS-301" || rows[1][3] != "4" {
		t.Fatalf("unexpected course row: %v", rows[1])
	}

	buf.Reset()
	if err := WriteProjectsCSV(&buf, []Project{{ID: "p-1", Title: "Telemetría", Year: 2026}}); err != nil {
		t.Fatalf("WriteProjectsCSV: %v", err)
	}
	rows = parseCSV(t, buf.Bytes())
	if rows[1][1] != "Telemetría" || rows[1][4] != "2026" {
		t.Fatalf("unexpected project row: %v", rows[1])
	}
}

func TestCSVEscapesEmbeddedSeparators(t *testing.T) {
	var buf bytes.Buffer
	err := WriteProjectsCSV(&buf, []Project{
		{ID: "p-1", Title: `Proyecto "Alfa", fase 2`, Summary: "línea1\nlínea2", Year: 2026},
	})
	if err != nil {
		t.Fatalf("WriteProjectsCSV: %v", err)
	}

	rows := parseCSV(t, buf.Bytes())
	if rows[1][1] != `Proyecto "Alfa", fase 2` {
		t.Fatalf("title not round-tripped: %q", rows[1][1])
	}
	if rows[1][2] != "línea1\nlínea2" {
		t.Fatalf("summary not round-tripped: %q", rows[1][2])
	}
}

func TestEmptySliceWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStudentsCSV(&buf, nil); err != nil {
		t.Fatalf("WriteStudentsCSV: %v", err)
	}
	rows := parseCSV(t, buf.Bytes())
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
