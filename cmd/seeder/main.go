package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/copypoint/cp-backend/internal/config"
	"github.com/copypoint/cp-backend/internal/database"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type SeedData struct {
	Users       []User       `yaml:"users"`
	Stores      []Store      `yaml:"stores"`
	Copypoints  []Copypoint  `yaml:"copypoints"`
	StoreAdmins []StoreAdmin `yaml:"store_admins"`
	Employees   []Employee   `yaml:"employees"`
}

type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Status   string `yaml:"status,omitempty"`
}

type Store struct {
	Name       string `yaml:"name"`
	OwnerEmail string `yaml:"owner_email"`
}

type Copypoint struct {
	StoreName string `yaml:"store_name"`
	Name      string `yaml:"name"`
}

type StoreAdmin struct {
	UserEmail string `yaml:"user_email"`
	StoreName string `yaml:"store_name"`
}

type Employee struct {
	UserEmail     string `yaml:"user_email"`
	StoreName     string `yaml:"store_name"`
	CopypointName string `yaml:"copypoint_name"`
	RoleName      string `yaml:"role_name"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return errors.New("command required")
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "migrate":
		return migrateCommand()
	case "seed":
		return seedCommand(args)
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Println("Usage: seeder <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate   Apply pending schema migrations")
	fmt.Println("  seed      Load YAML seed data (--file or --dir, --dry-run)")
	fmt.Println("  help      Show this message")
}

func migrateCommand() error {
	cfg := config.Load()
	ctx := context.Background()

	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	fmt.Println("migrations applied")
	return nil
}

func seedCommand(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	file := fs.String("file", "", "YAML file to seed from")
	dir := fs.String("dir", "", "Directory of YAML files to seed from")
	dryRun := fs.Bool("dry-run", false, "Validate files without making database changes")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	files, err := resolveFiles(*file, *dir)
	if err != nil {
		return err
	}

	seedData, err := loadSeedData(files)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	if err := validateSeedData(seedData); err != nil {
		return err
	}
	if *dryRun {
		fmt.Println("dry run: data validated")
		return nil
	}

	cfg := config.Load()
	ctx := context.Background()
	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	fmt.Printf("seeding database from %d file(s)\n", len(files))
	return applySeedData(ctx, db, seedData)
}

func resolveFiles(file, dir string) ([]string, error) {
	if file == "" && dir == "" {
		return nil, errors.New("must specify either --file or --dir")
	}
	if file != "" && dir != "" {
		return nil, errors.New("cannot specify both --file and --dir")
	}
	if file != "" {
		return []string{file}, nil
	}
	return findYAMLFiles(dir)
}

func findYAMLFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isYAMLFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML files found in directory: %s", dir)
	}
	return files, nil
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func loadSeedData(files []string) (*SeedData, error) {
	combined := &SeedData{}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		var fileData SeedData
		if err := yaml.Unmarshal(data, &fileData); err != nil {
			return nil, fmt.Errorf("failed to parse YAML in %s: %w", file, err)
		}

		combined.Users = append(combined.Users, fileData.Users...)
		combined.Stores = append(combined.Stores, fileData.Stores...)
		combined.Copypoints = append(combined.Copypoints, fileData.Copypoints...)
		combined.StoreAdmins = append(combined.StoreAdmins, fileData.StoreAdmins...)
		combined.Employees = append(combined.Employees, fileData.Employees...)
	}

	return combined, nil
}

func validateSeedData(data *SeedData) error {
	emails := make(map[string]bool)
	for _, u := range data.Users {
		if u.Email == "" || u.Password == "" {
			return fmt.Errorf("user missing email or password: %+v", u)
		}
		emails[u.Email] = true
	}

	storeNames := make(map[string]bool)
	for _, s := range data.Stores {
		if s.Name == "" {
			return errors.New("store missing name")
		}
		if !emails[s.OwnerEmail] {
			return fmt.Errorf("store %q owner %q not in seed users", s.Name, s.OwnerEmail)
		}
		storeNames[s.Name] = true
	}

	for _, cp := range data.Copypoints {
		if !storeNames[cp.StoreName] {
			return fmt.Errorf("copypoint %q references unknown store %q", cp.Name, cp.StoreName)
		}
	}
	for _, sa := range data.StoreAdmins {
		if !emails[sa.UserEmail] || !storeNames[sa.StoreName] {
			return fmt.Errorf("store admin %q on %q references unknown user or store", sa.UserEmail, sa.StoreName)
		}
	}
	for _, e := range data.Employees {
		if !emails[e.UserEmail] || !storeNames[e.StoreName] {
			return fmt.Errorf("employee %q on %q references unknown user or store", e.UserEmail, e.StoreName)
		}
		if e.RoleName == "" {
			return fmt.Errorf("employee %q missing role_name", e.UserEmail)
		}
	}
	return nil
}

func applySeedData(ctx context.Context, db *database.Database, data *SeedData) error {
	pool := db.Pool()

	userIDs := make(map[string]int64)
	for _, u := range data.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", u.Email, err)
		}
		status := u.Status
		if status == "" {
			status = "active"
		}

		var id int64
		err = pool.QueryRow(ctx,
			`INSERT INTO users (email, password_hash, status) VALUES ($1, $2, $3)
			 ON CONFLICT (email) DO UPDATE SET status = EXCLUDED.status
			 RETURNING id`,
			u.Email, string(hash), status,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
		userIDs[u.Email] = id
	}

	storeIDs := make(map[string]int64)
	for _, s := range data.Stores {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO stores (name, owner_id) VALUES ($1, $2) RETURNING id`,
			s.Name, userIDs[s.OwnerEmail],
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seeding store %s: %w", s.Name, err)
		}
		storeIDs[s.Name] = id
	}

	copypointIDs := make(map[string]int64)
	for _, cp := range data.Copypoints {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO copypoints (store_id, name) VALUES ($1, $2) RETURNING id`,
			storeIDs[cp.StoreName], cp.Name,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("seeding copypoint %s: %w", cp.Name, err)
		}
		copypointIDs[cp.StoreName+"/"+cp.Name] = id
	}

	for _, sa := range data.StoreAdmins {
		_, err := pool.Exec(ctx,
			`INSERT INTO store_administrators (user_id, store_id, role_id)
			 SELECT $1, $2, id FROM roles WHERE name = 'store_administrator'
			 ON CONFLICT (user_id, store_id) DO NOTHING`,
			userIDs[sa.UserEmail], storeIDs[sa.StoreName])
		if err != nil {
			return fmt.Errorf("seeding store admin %s: %w", sa.UserEmail, err)
		}
	}

	for _, e := range data.Employees {
		cpID, ok := copypointIDs[e.StoreName+"/"+e.CopypointName]
		if !ok {
			return fmt.Errorf("employee %s references unknown copypoint %s/%s", e.UserEmail, e.StoreName, e.CopypointName)
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO copypoint_employees (user_id, copypoint_id, role_id)
			 SELECT $1, $2, id FROM roles WHERE name = $3
			 ON CONFLICT (user_id, copypoint_id) DO NOTHING`,
			userIDs[e.UserEmail], cpID, e.RoleName)
		if err != nil {
			return fmt.Errorf("seeding employee %s: %w", e.UserEmail, err)
		}
	}

	fmt.Printf("seeded %d users, %d stores, %d copypoints, %d admins, %d employees\n",
		len(data.Users), len(data.Stores), len(data.Copypoints),
		len(data.StoreAdmins), len(data.Employees))
	return nil
}
