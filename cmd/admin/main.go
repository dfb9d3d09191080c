// admin 创建 staff 账号：
//
//	go run ./cmd/admin --username root --email root@example.com --password ... --first Root --last Admin
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aiqfome-api/internal/core/config"
	"aiqfome-api/internal/core/database"
	"aiqfome-api/internal/core/logger"
	"aiqfome-api/internal/domain"
	"aiqfome-api/internal/repo"
	"aiqfome-api/internal/service"
	"aiqfome-api/internal/transport/http/ez"
	"aiqfome-api/pkg/utils"
)

var errUsage = errors.New("username, email and password are required")

type options struct {
	ConfigPath string
	Input      service.CustomerInput
}

func parseFlags(args []string, getenv func(string) string) (options, *pflag.FlagSet, error) {
	var o options
	fs := pflag.NewFlagSet("admin", pflag.ContinueOnError)
	fs.StringVarP(&o.ConfigPath, "config", "c", getenv("CONFIG_PATH"), "config file path")
	fs.StringVarP(&o.Input.Username, "username", "u", "", "staff username")
	fs.StringVarP(&o.Input.Email, "email", "e", "", "staff email")
	fs.StringVarP(&o.Input.Password, "password", "p", getenv("ADMIN_PASSWORD"), "password (or ADMIN_PASSWORD)")
	fs.StringVar(&o.Input.FirstName, "first", "Admin", "first name")
	fs.StringVar(&o.Input.LastName, "last", "User", "last name")
	if err := fs.Parse(args); err != nil {
		return o, fs, err
	}
	if o.Input.Username == "" || o.Input.Email == "" || o.Input.Password == "" {
		return o, fs, errUsage
	}
	return o, fs, nil
}

// createStaff 校验、建表、写入；字段错误统一为 *domain.ValidationError
func createStaff(ctx context.Context, db *gorm.DB, in service.CustomerInput) (*domain.Customer, error) {
	in.IsStaff = utils.Ptr(true)
	if err := ez.Validate(&in); err != nil {
		var ae *ez.AErr
		if errors.As(err, &ae) && len(ae.Fields) > 0 {
			return nil, &domain.ValidationError{Fields: ae.Fields}
		}
		return nil, err
	}
	if err := repo.Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return service.NewCustomerService(repo.NewCustomerRepo(db)).Create(ctx, in)
}

func main() {
	_ = godotenv.Load()

	o, fs, err := parseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		os.Exit(2)
	}

	cfg := config.MustLoad(o.ConfigPath)
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	c, err := createStaff(ctx, mustOpenDB(cfg, log), o.Input)
	if err != nil {
		var v *domain.ValidationError
		if errors.As(err, &v) {
			fmt.Fprintln(os.Stderr, v.Error())
			os.Exit(1)
		}
		log.Fatal("create staff customer", zap.Error(err))
	}
	log.Info("staff customer created", zap.Uint("id", c.ID), zap.String("username", c.Username))
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
