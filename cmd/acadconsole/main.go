package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"

	cfgFile   string
	serverURL string
	query     string
	outPath   string
)

var rootCmd = &cobra.Command{
	Use:   "acadconsole",
	Short: "Academic records administration console",
	Long:  `acadconsole is a terminal client for the academic-records backend: session sign-in, students, professors, courses, research projects, and reports.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("acadconsole v%s\n", version)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			if a.auth.IsAuthenticated() {
				user := a.auth.CurrentUser()
				fmt.Printf("Already signed in as %s\n", user.Username)
				return nil
			}
			return a.promptLogin(ctx)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			if err := a.auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			user := a.auth.CurrentUser()
			if user == nil {
				fmt.Println("Not signed in.")
				return nil
			}
			fmt.Printf("%s (%s) role=%s state=%s\n", user.Username, user.FullName, user.Role, a.auth.State())
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return guarded(func(ctx context.Context, a *app) error {
			stats, err := a.records.Dashboard(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Students:   %d\n", stats.TotalStudents)
			fmt.Printf("Professors: %d\n", stats.TotalProfessors)
			fmt.Printf("Courses:    %d\n", stats.TotalCourses)
			fmt.Printf("Projects:   %d\n", stats.TotalProjects)
			return nil
		})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <student-id>",
	Short: "Show a student's integral report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("student id must be numeric: %q", args[0])
		}
		return guarded(func(ctx context.Context, a *app) error {
			report, err := a.records.StudentReport(ctx, id)
			if err != nil {
				return err
			}
			printStudentReport(report)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.acadconsole/acadconsole.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(studentsCmd())
	rootCmd.AddCommand(professorsCmd())
	rootCmd.AddCommand(coursesCmd())
	rootCmd.AddCommand(projectsCmd())
}

// withApp loads config, wires the app, runs fn, and closes the app so the
// backup snapshot is written.
func withApp(fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
