package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/config"
	"github.com/cmlabs-hris/house-services-backend/internal/domain/employee"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/database"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/house-services-backend/internal/repository/postgresql"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load employees from a YAML file",
	Long: `Upsert employees into the database. Employees are created out of band;
the API only reads them. Existing rows with the same id are overwritten.`,
	Example: `  housectl seed --file assets/employees.yaml`,
	RunE:    runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringP("file", "f", "assets/employees.yaml", "YAML file with an employees list")
}

type employeeFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Lastname    string `yaml:"lastname"`
	TypeService string `yaml:"typeService"`
	StartDate   string `yaml:"startDate"`
	Status      string `yaml:"status"`
}

type seedFile struct {
	Employees []employeeFixture `yaml:"employees"`
}

// loadEmployees decodes and validates the whole file before anything is written.
func loadEmployees(r io.Reader) ([]employee.Employee, error) {
	var file seedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	var errs validator.ValidationErrors
	employees := make([]employee.Employee, 0, len(file.Employees))
	seen := make(map[string]bool, len(file.Employees))

	for i, f := range file.Employees {
		field := func(name string) string { return fmt.Sprintf("employees[%d].%s", i, name) }

		id := strings.TrimSpace(f.ID)
		if id == "" {
			errs = append(errs, validator.ValidationError{Field: field("id"), Message: "is required"})
		} else if seen[id] {
			errs = append(errs, validator.ValidationError{Field: field("id"), Message: "is duplicated"})
		}
		seen[id] = true

		if validator.IsEmpty(f.Name) {
			errs = append(errs, validator.ValidationError{Field: field("name"), Message: "is required"})
		}
		if validator.IsEmpty(f.TypeService) {
			errs = append(errs, validator.ValidationError{Field: field("typeService"), Message: "is required"})
		}

		startDate, ok := validator.IsValidDate(f.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: field("startDate"), Message: "must be a YYYY-MM-DD date"})
		}

		status := employee.StatusActive
		if f.Status != "" {
			status = employee.Status(f.Status)
		}
		if !status.IsValid() {
			errs = append(errs, validator.ValidationError{Field: field("status"), Message: employee.ErrInvalidStatus.Error()})
		}

		employees = append(employees, employee.Employee{
			ID:          id,
			Name:        strings.TrimSpace(f.Name),
			Lastname:    strings.TrimSpace(f.Lastname),
			TypeService: strings.TrimSpace(f.TypeService),
			StartDate:   startDate,
			Status:      status,
		})
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return employees, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	employees, err := loadEmployees(f)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	repo := postgresql.NewEmployeeRepository(db)
	err = postgresql.NewTxManager(db).WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, emp := range employees {
			if err := repo.Upsert(txCtx, emp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("employees seeded", "count", len(employees), "file", path)
	return nil
}
