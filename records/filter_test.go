package records

import (
	"testing"
)

func sampleStudents() []Student {
	return []Student{
		{ID: 1, FirstName: "Ana", LastName: "García", Email: "ana@uni.edu"},
		{ID: 2, FirstName: "Luis", LastName: "Pérez", Email: "luis@uni.edu"},
		{ID: 3, FirstName: "Mariana", LastName: "Soto", Email: "msoto@uni.edu"},
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := sampleStudents()
	out := Filter(in, func(s Student) bool { return s.ID > 1 })

	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if len(in) != 3 || in[0].ID != 1 {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestSortByReturnsSortedCopy(t *testing.T) {
	in := sampleStudents()
	out := SortBy(in, func(a, b Student) bool { return a.LastName < b.LastName })

	if out[0].LastName != "García" || out[1].LastName != "Pérez" || out[2].LastName != "Soto" {
		t.Fatalf("not sorted: %+v", out)
	}
	if in[0].ID != 1 || in[1].ID != 2 {
		t.Fatalf("input reordered: %+v", in)
	}
}

func TestSortByIsStable(t *testing.T) {
	in := []Course{
		{ID: 1, Name: "Redes", Credits: 4},
		{ID: 2, Name: "Algoritmos", Credits: 4},
		{ID: 3, Name: "Cálculo", Credits: 4},
	}
	out := SortBy(in, func(a, b Course) bool { return a.Credits < b.Credits })

	// Equal keys keep their original order.
	for i, c := range out {
		if c.ID != int64(i+1) {
			t.Fatalf("stable order broken: %+v", out)
		}
	}
}

func TestSearchStudentsMatchesCaseInsensitive(t *testing.T) {
	in := sampleStudents()

	if got := SearchStudents(in, "ANA"); len(got) != 2 {
		// "Ana" and "Mariana" both contain "ana".
		t.Fatalf("expected 2 matches for ANA, got %d", len(got))
	}
	if got := SearchStudents(in, "pérez"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected Luis for pérez, got %+v", got)
	}
	if got := SearchStudents(in, "msoto@"); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("email field not searched: %+v", got)
	}
	if got := SearchStudents(in, "nadie"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestEmptyQueryMatchesEverything(t *testing.T) {
	if got := SearchStudents(sampleStudents(), ""); len(got) != 3 {
		t.Fatalf("empty query must match all, got %d", len(got))
	}
}

func TestSearchProfessorsCoversSpecialtyAndDegree(t *testing.T) {
	in := []Professor{
		{ID: "a", FirstName: "Marta", Specialty: "Bases de Datos", Degree: "Doctorado"},
		{ID: "b", FirstName: "Diego", Specialty: "Redes", Degree: "Maestría"},
	}

	if got := SearchProfessors(in, "bases"); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("specialty not searched: %+v", got)
	}
	if got := SearchProfessors(in, "maestría"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("degree not searched: %+v", got)
	}
}

func TestSearchCoursesAndProjects(t *testing.T) {
	courses := []Course{
		{ID: 1, Name: "Redes de Computadoras", Code: "CS-301"},
		{ID: 2, Name: "Algoritmos", Code: "CS-201"},
	}
	if got := SearchCourses(courses, "cs-3"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("code not searched: %+v", got)
	}

	projects := []Project{
		{ID: "p-1", Title: "Telemetría", Lead: "Ana García"},
		{ID: "p-2", Title: "Simulador", Summary: "Simulador de redes"},
	}
	if got := SearchProjects(projects, "garcía"); len(got) != 1 || got[0].ID != "p-1" {
		t.Fatalf("lead not searched: %+v", got)
	}
	if got := SearchProjects(projects, "redes"); len(got) != 1 || got[0].ID != "p-2" {
		t.Fatalf("summary not searched: %+v", got)
	}
}
