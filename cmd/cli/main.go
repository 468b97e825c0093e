package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/examdesk/seatmap/internal/config"
	"github.com/examdesk/seatmap/pkg/core/services"
	"github.com/examdesk/seatmap/pkg/render"
	"github.com/examdesk/seatmap/pkg/server"
	"github.com/examdesk/seatmap/pkg/utils/logging"
	"github.com/examdesk/seatmap/pkg/workbook"
)

const dateFlagLayout = "2006-01-02"

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	ctx    context.Context
}

var (
	configPath string
	verbose    bool
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seatmap",
		Short: "Exam seat-map assistant - allocate students to exam rooms",
		Long: `A CLI tool that allocates two groups of students to exam room seats,
alternating groups by column so neighbours never share a group, and produces
per-room maps plus global, per-class and per-room rosters.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: seatmap_config.yaml in cwd or home)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")

	rootCmd.AddCommand(generateMapsCmd())
	rootCmd.AddCommand(listRoomsCmd())
	rootCmd.AddCommand(listStudentsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger and config
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	return nil
}

// Command definitions

func generateMapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateMaps <workbook.xlsx>",
		Short: "Generate seat maps and rosters from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateStr, _ := cmd.Flags().GetString("date")
			outDir, _ := cmd.Flags().GetString("out")
			showMaps, _ := cmd.Flags().GetBool("print-maps")

			examDate, err := time.Parse(dateFlagLayout, dateStr)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			result, err := services.GenerateMaps(app.ctx, wb, app.cfg, app.logger, services.GenerateMapsParams{
				ExamDate:  examDate,
				OutputDir: outDir,
			})
			if err != nil {
				return err
			}

			// Display results
			fmt.Printf("\nSeat maps generated (run %s)\n\n", result.RunID)
			fmt.Printf("Exam date:        %s\n", result.ExamDate.Format(dateFlagLayout))
			fmt.Printf("Group 1 students: %d\n", result.Group1Total)
			fmt.Printf("Group 2 students: %d\n", result.Group2Total)
			fmt.Printf("Seats filled:     %d\n\n", result.Allocation.FilledSeats())

			if result.Allocation.HasLeftovers() {
				fmt.Printf("Warning: %d group 1 and %d group 2 students were not seated - add rooms or unblock seats.\n\n",
					result.Allocation.LeftoverGroup1, result.Allocation.LeftoverGroup2)
			}

			if showMaps {
				for _, name := range result.Allocation.RoomOrder {
					fmt.Printf("--- %s ---\n", name)
					fmt.Println(render.RoomText(result.Allocation.Grids[name]))
				}
			}

			if len(result.ExportedFiles) > 0 {
				fmt.Printf("Exported files:\n")
				for _, path := range result.ExportedFiles {
					fmt.Printf("  %s\n", path)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("date", time.Now().Format(dateFlagLayout), "Exam date (YYYY-MM-DD)")
	cmd.Flags().String("out", "", "Directory for roster xlsx exports (no export when empty)")
	cmd.Flags().Bool("print-maps", false, "Print each room's seat map to the terminal")

	return cmd
}

func listRoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listRooms <workbook.xlsx>",
		Short: "List room capacities from a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			result, err := services.ListRooms(app.ctx, wb, app.cfg, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d rooms:\n\n", len(result.Rooms))
			for _, room := range result.Rooms {
				blockedInfo := ""
				if len(room.Blocked) > 0 {
					blockedInfo = fmt.Sprintf(" (%d blocked)", len(room.Blocked))
				}
				fmt.Printf("- %s: %d seats | %d rows x %d columns%s\n",
					room.Name, room.Rows*room.Columns, room.Rows, room.Columns, blockedInfo)
			}
			fmt.Printf("\nTotal capacity: %d of %d seats\n", result.TotalCapacity, result.TotalSeats)

			return nil
		},
	}
}

func listStudentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listStudents <workbook.xlsx>",
		Short: "Summarise the student tabs of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			result, err := services.ListStudents(app.ctx, wb, app.cfg, app.logger)
			if err != nil {
				return err
			}

			for _, group := range []services.GroupSummary{result.Group1, result.Group2} {
				fmt.Printf("\n%s: %d students, %d exempt, %d to seat\n", group.Tab, group.Total, group.Exempt, group.ToSeat)
			}
			fmt.Printf("\nTotal to allocate: %d\n", result.Group1.ToSeat+result.Group2.ToSeat)

			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <workbook.xlsx>",
		Short: "Generate seat maps and serve them over HTTP for preview and printing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateStr, _ := cmd.Flags().GetString("date")
			addr, _ := cmd.Flags().GetString("addr")

			examDate, err := time.Parse(dateFlagLayout, dateStr)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
			if addr == "" {
				addr = app.cfg.Server.Addr
			}

			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			result, err := services.GenerateMaps(app.ctx, wb, app.cfg, app.logger, services.GenerateMapsParams{
				ExamDate: examDate,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nServing seat maps on %s (refreshing the page never reshuffles)\n", addr)
			return server.New(result, app.logger).Start(addr)
		},
	}

	cmd.Flags().String("date", time.Now().Format(dateFlagLayout), "Exam date (YYYY-MM-DD)")
	cmd.Flags().String("addr", "", "Listen address (defaults to config server.addr)")

	return cmd
}
