package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/healthai/riskpanel/config"
	"github.com/healthai/riskpanel/database"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/web"
	"github.com/healthai/riskpanel/web/service"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func initLogger() error {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		return err
	}
	logger.InitLogger(level)
	return nil
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	server := web.NewServer(database.GetDB())
	if err = server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(database.GetDB())
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

// closeDB checkpoints and closes the process database, logging any failure.
func closeDB() {
	if err := database.CloseDB(); err != nil {
		logger.Warning("close db err:", err)
	}
}

func migrateDb() error {
	fmt.Println("Start migrating database...")
	if err := database.InitDB(config.GetDBPath()); err != nil {
		return err
	}
	fmt.Println("Migration done!")
	return database.CloseDB()
}

func withUserAdmin(fn func(ctx context.Context, s *service.UserAdminService) error) error {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		return err
	}
	defer closeDB()
	return fn(context.Background(), service.NewUserAdminService(service.NewUserService(database.GetDB())))
}

func listUsers(all bool) error {
	return withUserAdmin(func(ctx context.Context, s *service.UserAdminService) error {
		users, err := s.ListUsers(ctx, all)
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%d\t%s\t%s\t%s\t%s\n", u.Id, u.Username, u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		total, err := service.NewUserService(database.GetDB()).Count(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d shown, %d registered in total\n", len(users), total)
		return nil
	})
}

func deleteUser(id int) error {
	return withUserAdmin(func(ctx context.Context, s *service.UserAdminService) error {
		if err := s.DeleteUser(ctx, 0, id); err != nil {
			return err
		}
		fmt.Printf("user %d deleted\n", id)
		return nil
	})
}

// exportPredictions writes every prediction with its owner as JSON to out, or stdout for "-".
func exportPredictions(out string) error {
	if err := database.InitDB(config.GetDBPath()); err != nil {
		return err
	}
	defer closeDB()

	predictions, err := service.NewPredictionService(database.GetDB()).ListAll(context.Background())
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(predictions, "", "  ")
	if err != nil {
		return err
	}
	if out == "" || out == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return err
	}
	fmt.Printf("exported %d predictions to %s\n", len(predictions), out)
	return nil
}

func main() {
	var rootCmd = &cobra.Command{
		Use:           config.GetName(),
		Version:       config.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(".env"); err != nil {
				return err
			}
			return initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.CloseLogger()
		},
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and the default administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateDb()
		},
	}

	var usersCmd = &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return listUsers(all)
		},
	}
	usersCmd.Flags().Bool("all", false, "include administrators")

	var deleteUserCmd = &cobra.Command{
		Use:   "delete-user",
		Short: "Delete a user and their prediction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt("id")
			if id <= 0 {
				return fmt.Errorf("--id is required")
			}
			return deleteUser(id)
		},
	}
	deleteUserCmd.Flags().Int("id", 0, "id of the user to delete")

	var exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export all predictions as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return exportPredictions(out)
		},
	}
	exportCmd.Flags().String("out", "-", "output file, - for stdout")

	rootCmd.AddCommand(runCmd, migrateCmd, usersCmd, deleteUserCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
