package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/csp"
	"github.com/campusforge/timetable/internal/domain"
	"github.com/campusforge/timetable/internal/loader"
	"github.com/campusforge/timetable/internal/normalizer"
	"github.com/campusforge/timetable/internal/sink"
	"github.com/campusforge/timetable/pkg/database"
	"github.com/campusforge/timetable/pkg/export"
)

var (
	inputPath string
	outFormat string
	outPath   string
	dbPath    string

	maxBacktracks  int
	maxAttempts    int
	printInterval  int
	dayCap         int
	labCourses     string
	orphanCourses  string
	instrPrefixes  string
	roomPromotionN int
	seed           int64
)

func main() {
	logr, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	root := &cobra.Command{
		Use:   "timetable-cli",
		Short: "CSP university timetable solver",
		Long:  "Loads course, instructor, room, section, and time slot data, solves for a conflict-free timetable, and exports the result.",
	}

	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "load, normalise, solve, and export a timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(logr)
		},
	}
	genCmd.Flags().StringVar(&inputPath, "input", "", "CSV directory or .xlsx workbook path (required)")
	genCmd.Flags().StringVar(&outFormat, "format", "tabular", "output format: tabular, csv, pdf, sqlite")
	genCmd.Flags().StringVar(&outPath, "out", "", "output file path (ignored for tabular, which writes to stdout)")
	genCmd.Flags().StringVar(&dbPath, "db", "./timetables.db", "sqlite export path, used when --format=sqlite")
	addSolverFlags(genCmd)
	_ = genCmd.MarkFlagRequired("input")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "build domains without solving and report sizes and empty-domain reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(logr)
		},
	}
	inspectCmd.Flags().StringVar(&inputPath, "input", "", "CSV directory or .xlsx workbook path (required)")
	addSolverFlags(inspectCmd)
	_ = inspectCmd.MarkFlagRequired("input")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "re-run the post-hoc evaluator over a previously exported sqlite file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(logr)
		},
	}
	reportCmd.Flags().StringVar(&inputPath, "input", "", "CSV directory or .xlsx workbook path the export was solved from (required)")
	reportCmd.Flags().StringVar(&dbPath, "db", "./timetables.db", "sqlite export path to read assignments from")
	_ = reportCmd.MarkFlagRequired("input")

	root.AddCommand(genCmd, inspectCmd, reportCmd)

	if err := root.Execute(); err != nil {
		logr.Sugar().Fatalw("command failed", "error", err)
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&maxBacktracks, "max-backtracks", 0, "backtrack budget (0 = reference default)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "restart budget (0 = reference default)")
	cmd.Flags().IntVar(&printInterval, "print-interval", 0, "progress emission interval (0 = reference default)")
	cmd.Flags().IntVar(&dayCap, "day-cap", 0, "per-day assignment cap (0 = reference default)")
	cmd.Flags().StringVar(&labCourses, "lab-courses", "", "comma-separated course ids requiring a Lab room")
	cmd.Flags().StringVar(&orphanCourses, "orphan-courses", "", "comma-separated course ids to force-qualify instructors for")
	cmd.Flags().StringVar(&instrPrefixes, "instructor-prefixes", "", "comma-separated instructor id prefixes eligible for orphan-course augmentation")
	cmd.Flags().IntVar(&roomPromotionN, "room-promotion-n", 0, "max lab rooms promoted to classroom (0 = reference default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "randomisation seed (0 = deterministic, single attempt)")
}

func loadDataset(path string) (loader.Dataset, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return loader.LoadXLSX(path)
	}
	return loader.LoadCSVDir(path)
}

func solverConfig() csp.Config {
	labs := make(map[string]bool)
	for _, id := range splitCSV(labCourses) {
		labs[id] = true
	}
	return csp.Config{
		MaxBacktracks:      maxBacktracks,
		MaxAttempts:        maxAttempts,
		PrintInterval:      printInterval,
		DayCap:             dayCap,
		LabCourses:         labs,
		OrphanCourses:      splitCSV(orphanCourses),
		InstructorPrefixes: splitCSV(instrPrefixes),
		RoomPromotionN:     roomPromotionN,
		Seed:               seed,
	}
}

func normalizerConfig() normalizer.Config {
	return normalizer.Config{
		RoomPromotionN:     roomPromotionN,
		OrphanCourses:      splitCSV(orphanCourses),
		InstructorPrefixes: splitCSV(instrPrefixes),
	}
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// entitiesFromDataset runs the Input Normaliser's two mutations over a
// loaded Dataset and freezes the mutable instructor/room builders into the
// csp.Entities shape the Domain Builder and Search Engine consume.
func entitiesFromDataset(ds loader.Dataset, log *zap.Logger) csp.Entities {
	normalizer.PromoteRooms(ds.Rooms, normalizerConfig(), log)
	normalizer.AugmentQualifications(ds.Instructors, normalizerConfig(), log)

	instructors := make([]*domain.Instructor, len(ds.Instructors))
	for i, raw := range ds.Instructors {
		instructors[i] = raw.Freeze()
	}
	rooms := make([]domain.Room, len(ds.Rooms))
	for i, raw := range ds.Rooms {
		rooms[i] = raw.Freeze()
	}

	return csp.Entities{
		Courses:     ds.Courses,
		Instructors: instructors,
		Rooms:       rooms,
		Sections:    ds.Sections,
		TimeSlots:   ds.TimeSlots,
	}
}

func runGenerate(log *zap.Logger) error {
	ds, err := loadDataset(inputPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	entities := entitiesFromDataset(ds, log)
	cfg := solverConfig()

	domains, reports := csp.BuildDomains(entities, cfg, log)
	tt, telemetry, err := csp.Solve(context.Background(), entities, domains, reports, cfg, log)
	if err != nil {
		return err
	}

	report := csp.Evaluate(tt, entities)
	log.Sugar().Infow("solved",
		"backtracks", telemetry.Backtracks,
		"assignments_tried", telemetry.AssignmentsTried,
		"attempts", telemetry.Attempts,
		"generation_ms", telemetry.GenerationTime.Milliseconds(),
		"success_rate", report.SuccessRate,
		"hard_violations", report.HardViolations,
		"soft_violations", report.SoftViolations,
	)

	return writeOutput(tt, report)
}

func runInspect(log *zap.Logger) error {
	ds, err := loadDataset(inputPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	entities := entitiesFromDataset(ds, log)
	cfg := solverConfig()
	domains, reports := csp.BuildDomains(entities, cfg, log)

	fmt.Printf("variables: %d\n", len(entities.Variables()))
	empty := 0
	for v, candidates := range domains {
		if len(candidates) == 0 {
			empty++
		}
		fmt.Printf("  %s/%s: %d candidates\n", v.SectionID, v.CourseID, len(candidates))
	}
	fmt.Printf("empty domains: %d\n", empty)
	for _, r := range reports {
		fmt.Printf("  %s/%s: %s\n", r.Variable.SectionID, r.Variable.CourseID, r.Reason)
	}
	return nil
}

func runReport(log *zap.Logger) error {
	ds, err := loadDataset(inputPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	entities := entitiesFromDataset(ds, log)

	db, err := database.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite export: %w", err)
	}
	defer db.Close()

	tt, err := sink.LoadSQLite(db)
	if err != nil {
		return fmt.Errorf("load assignments: %w", err)
	}

	report := csp.Evaluate(tt, entities)
	fmt.Printf("total_variables: %d\n", report.TotalVariables)
	fmt.Printf("total_assignments: %d\n", report.TotalAssignments)
	fmt.Printf("success_rate: %.4f\n", report.SuccessRate)
	fmt.Printf("hard_violations: %d\n", report.HardViolations)
	fmt.Printf("soft_violations: %d\n", report.SoftViolations)
	return nil
}

// writeOutput renders tt through the Result Sink collaborator matching
// --format, writing to --out when given and stdout otherwise.
func writeOutput(tt *domain.Timetable, report csp.Report) error {
	switch outFormat {
	case "tabular":
		return sink.WriteTabular(os.Stdout, tt)
	case "csv":
		data, err := export.NewCSVExporter().Render(sink.FlatDataset(tt))
		if err != nil {
			return fmt.Errorf("render csv: %w", err)
		}
		return writeBytes(data)
	case "pdf":
		data, err := export.NewPDFExporter().Render(sink.ReportDataset(report, tt), "Timetable Performance Report")
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
		return writeBytes(data)
	case "sqlite":
		db, err := database.NewSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("open sqlite export: %w", err)
		}
		defer db.Close()
		if err := sink.PersistSQLite(db, tt); err != nil {
			return fmt.Errorf("persist sqlite: %w", err)
		}
		fmt.Printf("wrote %d assignments to %s\n", len(tt.Assignments), dbPath)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", outFormat)
	}
}

func writeBytes(data []byte) error {
	if outPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
