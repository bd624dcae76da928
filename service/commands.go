package service

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gazette/app/config"
	"gazette/app/repositories"
	"gazette/app/serializers"
	"gazette/app/services"
	"gazette/db/migrate"
	"gazette/db/migrations"
	"gazette/db/seeds"

	"github.com/spf13/cobra"
)

var (
	migrateStatus bool
	assumeYes     bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending sqlite migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Storage.Driver != config.DriverSQLite {
			cmd.Printf("Storage driver %s has no schema to migrate\n", cfg.Storage.Driver)
			return nil
		}

		db, err := repositories.ConnectSQLite(cmd.Context(), cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()

		if migrateStatus {
			status, err := migrate.Status(cmd.Context(), db, migrations.FS)
			if err != nil {
				return err
			}
			for _, m := range status {
				state := "pending"
				if m.Applied {
					state = "applied " + m.AppliedAt.Format(time.RFC3339)
				}
				cmd.Printf("%-40s %s\n", m.Name, state)
			}
			return nil
		}

		applied, err := migrate.Apply(cmd.Context(), db, migrations.FS, log)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			cmd.Println("Database schema is up to date")
			return nil
		}
		for _, name := range applied {
			cmd.Printf("Applied %s\n", name)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the two demo posts and their comments",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := seeds.Seed(cmd.Context(), store.Posts, store.Comments, log)
		if err != nil {
			return err
		}
		if result.Skipped {
			cmd.Println("Database already has posts, nothing seeded")
			return nil
		}
		cmd.Printf("Seeded %d posts and %d comments\n", len(result.Posts), len(result.Comments))
		return nil
	},
}

var serializeCmd = &cobra.Command{
	Use:   "serialize",
	Short: "Serialize the first two posts concurrently and report the elapsed time",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		serializer := serializers.NewPostSerializer(store.Comments,
			serializers.WithCommentsDelay(cfg.Serializer.CommentsDelay),
			serializers.WithLogger(log),
		)
		svc := services.NewPostService(store.Posts, store.Comments, serializer)

		result, err := svc.ConcurrentSerialization(cmd.Context())
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("%w (run 'gazette seed' first)", err)
			}
			return err
		}

		keys := make([]string, 0, len(result.Posts))
		for k := range result.Posts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			var doc interface{}
			if err := json.Unmarshal(result.Posts[k], &doc); err != nil {
				return err
			}
			pretty, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			cmd.Printf("%s:\n%s\n", k, pretty)
		}
		cmd.Printf("Serialized %d posts in %s (comments delay %s each)\n",
			len(result.Posts), result.Elapsed.Round(time.Millisecond), serializer.CommentsDelay())
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a backup of the badger database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := os.MkdirAll(cfg.Storage.BackupDir, 0o755); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		backupFile := filepath.Join(cfg.Storage.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
		f, err := os.Create(backupFile)
		if err != nil {
			return fmt.Errorf("create backup file: %w", err)
		}
		defer f.Close()

		if err := store.Backup(f); err != nil {
			_ = os.Remove(backupFile)
			return fmt.Errorf("backup database: %w", err)
		}

		cmd.Printf("Database backed up successfully to %s\n", backupFile)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace the badger database with a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backupFile := args[0]
		fi, err := os.Stat(backupFile)
		if err != nil {
			return fmt.Errorf("backup file %s: %w", backupFile, err)
		}
		if fi.Size() == 0 {
			return fmt.Errorf("backup file is empty: %s", backupFile)
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		if store.Driver != config.DriverBadger {
			return fmt.Errorf("restore: %w", repositories.ErrUnsupported)
		}

		existing, err := store.Posts.List(cmd.Context(), 1, 0)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			if !confirm(cmd, "Existing database found. Do you want to replace it?") {
				cmd.Println("Operation cancelled")
				return nil
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear database: %w", err)
			}
		}

		f, err := os.Open(backupFile)
		if err != nil {
			return fmt.Errorf("open backup file: %w", err)
		}
		defer f.Close()

		if err := store.Restore(f); err != nil {
			return fmt.Errorf("restore database: %w", err)
		}
		cmd.Println("Database restored successfully")
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete every post and comment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
			cmd.Println("Operation cancelled")
			return nil
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clean database: %w", err)
		}
		cmd.Println("Database cleaned successfully")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "list migrations instead of applying them")
	restoreCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	cleanCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serializeCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(cleanCmd)
}

// confirm asks a y/N question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	if assumeYes {
		return true
	}
	cmd.Printf("%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
