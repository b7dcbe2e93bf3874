package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/ifsp/cadastro/config"
	"github.com/ifsp/cadastro/database"
	"github.com/ifsp/cadastro/database/repository"
	"github.com/ifsp/cadastro/logger"
	"github.com/ifsp/cadastro/web"
	"github.com/ifsp/cadastro/web/service"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

func loadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("load .env:", err)
	}
}

func initLogger() error {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		return err
	}
	logger.InitLogger(level)
	return nil
}

func runWebServer() error {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	if err := initLogger(); err != nil {
		return err
	}
	defer logger.CloseLogger()

	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := database.InitDB(&settings.Database); err != nil {
		return err
	}
	defer database.CloseDB()

	server := web.NewServer(settings)
	if err := server.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("reloading settings")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if reloaded, err := config.Load(configPath); err != nil {
				logger.Warning("reload settings failed, keeping the old ones:", err)
			} else {
				settings = reloaded
			}
			server = web.NewServer(settings)
			if err := server.Start(); err != nil {
				return err
			}
		default:
			logger.Info("shutting down")
			return server.Stop()
		}
	}
}

func openDB() (*config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := database.InitDB(&settings.Database); err != nil {
		return nil, err
	}
	return settings, nil
}

func migrateDb() error {
	settings, err := openDB()
	if err != nil {
		return err
	}
	defer database.CloseDB()
	fmt.Printf("Schema of %s database is up to date.\n", settings.Database.Type)
	return nil
}

type registrySnapshot struct {
	Index       *service.IndexView       `json:"index"`
	Disciplinas *service.DisciplinasView `json:"disciplinas"`
}

func showRegistry(w io.Writer, asJSON bool) error {
	if _, err := openDB(); err != nil {
		return err
	}
	defer database.CloseDB()

	ctx := context.Background()
	listing := service.NewListingService(repository.NewStore(database.GetDB()))
	var snap registrySnapshot
	var err error
	if snap.Index, err = listing.Index(ctx); err != nil {
		return err
	}
	if snap.Disciplinas, err = listing.Disciplinas(ctx); err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "roles (%d)\n", snap.Index.RoleCount)
	for _, r := range snap.Index.Roles {
		fmt.Fprintf(tw, "  %d\t%s\n", r.Id, r.Name)
	}
	fmt.Fprintf(tw, "users (%d)\n", snap.Index.UserCount)
	for _, u := range snap.Index.Users {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", u.Id, u.Username, u.Role.Name)
	}
	fmt.Fprintf(tw, "disciplinas (%d)\n", snap.Disciplinas.Count)
	for _, d := range snap.Disciplinas.Disciplinas {
		fmt.Fprintf(tw, "  %d\t%s\t%s\n", d.Id, d.Nome, d.Semestre.Label())
	}
	return tw.Flush()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           config.GetName(),
		Short:         "Registration web app for users, roles and disciplinas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnv()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./cadastro.{yaml,toml,json})")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebServer()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrateDb()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print registered roles, users and disciplinas",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return showRegistry(cmd.OutOrStdout(), asJSON)
		},
	}
	showCmd.Flags().Bool("json", false, "print as JSON")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.GetName(), config.GetVersion())
		},
	}

	rootCmd.AddCommand(runCmd, migrateCmd, showCmd, versionCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
