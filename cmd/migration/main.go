// Command migration applies the schema under db/migrations against the
// database named by DB_URL.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			usage()
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

var errUsage = errors.New("usage")

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}

	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("close migrator: source=%v db=%v", srcErr, dbErr)
		}
	}()

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "up":
		return runUp(m, dir)
	case "down":
		return runDown(m, args[1:])
	case "version":
		return runVersion(m)
	case "force":
		return runForce(m, args[1:])
	}
	return errUsage
}

func runUp(m *migrate.Migrate, dir string) error {
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Printf("no migration changes")
		return nil
	}
	log.Printf("migrations applied from %s", dir)
	return nil
}

func runDown(m *migrate.Migrate, args []string) error {
	steps := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid down steps %q: %w", args[0], err)
		}
		if n <= 0 {
			return errors.New("down steps must be > 0")
		}
		steps = n
	}

	if err := m.Steps(-steps); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Printf("no migration changes")
		return nil
	}
	log.Printf("rolled back %d migration(s)", steps)
	return nil
}

func runVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("version: none")
		fmt.Println("dirty: false")
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	}
	return nil
}

func runForce(m *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}

	value, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	if value < 0 {
		return errors.New("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return errors.New("version is too large for this platform")
	}

	if err := m.Force(int(value)); err != nil {
		return fmt.Errorf("force version %d: %w", value, err)
	}
	log.Printf("forced version to %d", value)
	return nil
}

// migrationsDir prefers MIGRATIONS_DIR, then the repo-relative and container
// layouts.
func migrationsDir() (string, error) {
	for _, candidate := range []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	} {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func usage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force> [args]\n", bin)
	fmt.Fprintf(os.Stderr, "  %s up\n", bin)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", bin)
	fmt.Fprintf(os.Stderr, "  %s version\n", bin)
	fmt.Fprintf(os.Stderr, "  %s force 20260301120000\n", bin)
}
