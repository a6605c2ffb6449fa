package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/campusauth/goSession/records"
	"github.com/spf13/cobra"
)

func studentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Manage student records",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List students",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := a.records.ListStudents(ctx)
				if err != nil {
					return err
				}
				items = records.SearchStudents(items, query)
				items = records.SortBy(items, func(x, y records.Student) bool {
					return strings.ToLower(x.LastName) < strings.ToLower(y.LastName)
				})
				tw := newTable()
				fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tBIRTH DATE\tCOURSES")
				for _, s := range items {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n",
						s.ID, s.FullName(), s.Email, s.BirthDate, len(s.CourseIDs))
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("student id must be numeric: %q", args[0])
			}
			return guarded(func(ctx context.Context, a *app) error {
				s, err := a.records.GetStudent(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("ID:         %d\n", s.ID)
				fmt.Printf("Name:       %s\n", s.FullName())
				fmt.Printf("Email:      %s\n", s.Email)
				fmt.Printf("Birth date: %s\n", s.BirthDate)
				fmt.Printf("Courses:    %v\n", s.CourseIDs)
				fmt.Printf("Projects:   %v\n", s.ProjectIDs)
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export students as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := a.records.ListStudents(ctx)
				if err != nil {
					return err
				}
				return writeExport(func(w io.Writer) error {
					return records.WriteStudentsCSV(w, records.SearchStudents(items, query))
				})
			})
		},
	}
	export.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")
	export.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	cmd.AddCommand(list, get, export)
	return cmd
}

func professorsCmd() *cobra.Command {
	var (
		activeOnly    bool
		specialty     string
		degree        string
		minExperience int
	)

	cmd := &cobra.Command{
		Use:   "professors",
		Short: "Manage professor records",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List professors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := fetchProfessors(ctx, a, activeOnly, specialty, degree, minExperience)
				if err != nil {
					return err
				}
				items = records.SearchProfessors(items, query)
				items = records.SortBy(items, func(x, y records.Professor) bool {
					return strings.ToLower(x.LastName) < strings.ToLower(y.LastName)
				})
				tw := newTable()
				fmt.Fprintln(tw, "ID\tNAME\tSPECIALTY\tDEGREE\tYEARS\tACTIVE")
				for _, p := range items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%t\n",
						p.ID, p.FullName(), p.Specialty, p.Degree, p.YearsExperience, p.Active)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")
	list.Flags().BoolVar(&activeOnly, "active", false, "only active professors")
	list.Flags().StringVar(&specialty, "specialty", "", "filter by specialty (server-side)")
	list.Flags().StringVar(&degree, "degree", "", "filter by academic degree (server-side)")
	list.Flags().IntVar(&minExperience, "min-experience", 0, "minimum years of experience (server-side)")

	get := &cobra.Command{
		Use:   "get <uuid>",
		Short: "Show one professor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				p, err := a.records.GetProfessor(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("ID:         %s\n", p.ID)
				fmt.Printf("Name:       %s\n", p.FullName())
				fmt.Printf("Email:      %s\n", p.Email)
				fmt.Printf("Specialty:  %s\n", p.Specialty)
				fmt.Printf("Degree:     %s\n", p.Degree)
				fmt.Printf("Phone:      %s\n", p.Phone)
				fmt.Printf("Experience: %d years\n", p.YearsExperience)
				fmt.Printf("Active:     %t\n", p.Active)
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export professors as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := fetchProfessors(ctx, a, activeOnly, specialty, degree, minExperience)
				if err != nil {
					return err
				}
				return writeExport(func(w io.Writer) error {
					return records.WriteProfessorsCSV(w, records.SearchProfessors(items, query))
				})
			})
		},
	}
	export.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")
	export.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	export.Flags().BoolVar(&activeOnly, "active", false, "only active professors")

	cmd.AddCommand(list, get, export)
	return cmd
}

func fetchProfessors(ctx context.Context, a *app, activeOnly bool, specialty, degree string, minExperience int) ([]records.Professor, error) {
	switch {
	case specialty != "":
		return a.records.ProfessorsBySpecialty(ctx, specialty)
	case degree != "":
		return a.records.ProfessorsByDegree(ctx, degree)
	case minExperience > 0:
		return a.records.ProfessorsByMinExperience(ctx, minExperience)
	case activeOnly:
		return a.records.ActiveProfessors(ctx)
	default:
		return a.records.ListProfessors(ctx)
	}
}

func coursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage course records",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := a.records.ListCourses(ctx)
				if err != nil {
					return err
				}
				items = records.SearchCourses(items, query)
				items = records.SortBy(items, func(x, y records.Course) bool {
					return x.Code < y.Code
				})
				tw := newTable()
				fmt.Fprintln(tw, "ID\tCODE\tNAME\tCREDITS")
				for _, c := range items {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", c.ID, c.Code, c.Name, c.Credits)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("course id must be numeric: %q", args[0])
			}
			return guarded(func(ctx context.Context, a *app) error {
				c, err := a.records.GetCourse(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("ID:      %d\n", c.ID)
				fmt.Printf("Code:    %s\n", c.Code)
				fmt.Printf("Name:    %s\n", c.Name)
				fmt.Printf("Credits: %d\n", c.Credits)
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export courses as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := a.records.ListCourses(ctx)
				if err != nil {
					return err
				}
				return writeExport(func(w io.Writer) error {
					return records.WriteCoursesCSV(w, records.SearchCourses(items, query))
				})
			})
		},
	}
	export.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")
	export.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	cmd.AddCommand(list, get, export)
	return cmd
}

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage research project records",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List research projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := a.records.ListProjects(ctx)
				if err != nil {
					return err
				}
				items = records.SearchProjects(items, query)
				items = records.SortBy(items, func(x, y records.Project) bool {
					return x.Year > y.Year
				})
				tw := newTable()
				fmt.Fprintln(tw, "ID\tYEAR\tTITLE\tLEAD")
				for _, p := range items {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", p.ID, p.Year, p.Title, p.Lead)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one research project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				p, err := a.records.GetProject(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("ID:      %s\n", p.ID)
				fmt.Printf("Title:   %s\n", p.Title)
				fmt.Printf("Lead:    %s\n", p.Lead)
				fmt.Printf("Year:    %d\n", p.Year)
				fmt.Printf("Summary: %s\n", p.Summary)
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export research projects as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded(func(ctx context.Context, a *app) error {
				items, err := a.records.ListProjects(ctx)
				if err != nil {
					return err
				}
				return writeExport(func(w io.Writer) error {
					return records.WriteProjectsCSV(w, records.SearchProjects(items, query))
				})
			})
		},
	}
	export.Flags().StringVarP(&query, "query", "q", "", "filter rows by substring")
	export.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	cmd.AddCommand(list, get, export)
	return cmd
}

// guarded wraps withApp plus the auth gate, so every records command prompts
// for login when no session is established.
func guarded(fn func(ctx context.Context, a *app) error) error {
	return withApp(func(ctx context.Context, a *app) error {
		return a.gate.Require(ctx, func(ctx context.Context) error {
			return fn(ctx, a)
		})
	})
}

func printStudentReport(report records.StudentReport) {
	s := report.Student
	fmt.Printf("Student: %s (#%d) <%s>\n", s.FullName(), s.ID, s.Email)
	fmt.Println("Courses:")
	if len(report.Courses) == 0 {
		fmt.Println("  (none)")
	}
	for _, c := range report.Courses {
		fmt.Printf("  %s %s (%d credits)\n", c.Code, c.Name, c.Credits)
	}
	fmt.Println("Projects:")
	if len(report.Projects) == 0 {
		fmt.Println("  (none)")
	}
	for _, p := range report.Projects {
		fmt.Printf("  [%d] %s (lead: %s)\n", p.Year, p.Title, p.Lead)
	}
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func writeExport(write func(w io.Writer) error) error {
	if outPath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
	return nil
}
