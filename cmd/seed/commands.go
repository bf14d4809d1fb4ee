package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/utafrali/LocalBizGo/internal/app"
	"github.com/utafrali/LocalBizGo/internal/auth"
	"github.com/utafrali/LocalBizGo/internal/config"
	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/event"
	"github.com/utafrali/LocalBizGo/internal/repository/jsonstore"
	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/internal/store"
	"github.com/utafrali/LocalBizGo/internal/store/file"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
	"github.com/utafrali/LocalBizGo/pkg/logger"
)

// env is what every command works against.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
}

func openEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if d := c.String("store-driver"); d != "" {
		cfg.StoreDriver = d
	}
	if d := c.String("data-dir"); d != "" {
		cfg.DataDir = d
	}

	log := logger.NewWithWriter("localbiz-seed", c.String("log-level"), c.App.ErrWriter)
	s, err := app.OpenStore(c.Context, cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: log, store: s}, nil
}

func adminCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.store.Close()

	email := c.String("email")
	if email == "" {
		email = e.cfg.AdminEmail
	}
	password := c.String("password")
	if password == "" {
		password = e.cfg.AdminPassword
	}

	users := service.NewUserService(
		jsonstore.NewUserRepository(e.store),
		auth.NewJWTManager(e.cfg.JWTSecret, e.cfg.JWTExpiry),
		event.NewProducer(nil, e.logger),
		e.logger,
	)
	admin, created, err := users.SeedAdmin(c.Context, email, password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if created {
		fmt.Fprintf(c.App.Writer, "admin account created: %s (%s)\n", admin.Email, admin.ID)
	} else {
		fmt.Fprintf(c.App.Writer, "admin account already exists: %s (%s)\n", admin.Email, admin.ID)
	}
	return nil
}

type demoBusiness struct {
	name, location string
}

var demoData = []struct {
	category   string
	businesses []demoBusiness
}{
	{"Cafes", []demoBusiness{
		{"Bean There", "12 Main Street"},
		{"The Daily Grind", "4 Harbor Road"},
	}},
	{"Bakeries", []demoBusiness{
		{"Crust & Crumb", "88 Oak Avenue"},
	}},
	{"Restaurants", []demoBusiness{
		{"Olive Table", "3 Market Square"},
		{"Noodle Bar", "19 Station Street"},
	}},
	{"Fitness", []demoBusiness{
		{"Iron Yard Gym", "201 Mill Lane"},
	}},
}

func demoCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.store.Close()

	producer := event.NewProducer(nil, e.logger)
	categoryRepo := jsonstore.NewCategoryRepository(e.store)
	businessRepo := jsonstore.NewBusinessRepository(e.store)
	categories := service.NewCategoryService(categoryRepo, producer, e.logger)
	businesses := service.NewBusinessService(businessRepo, categoryRepo, producer, e.logger)

	existing, err := businesses.List(c.Context)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Fprintf(c.App.Writer, "store already holds %d businesses, skipping demo data\n", len(existing))
		return nil
	}

	var created int
	for _, group := range demoData {
		category, err := ensureCategory(c.Context, categories, categoryRepo, group.category)
		if err != nil {
			return err
		}
		for _, b := range group.businesses {
			if _, err := businesses.Create(c.Context, domain.CreateBusinessInput{
				Name:       b.name,
				Location:   b.location,
				CategoryID: category.ID,
			}); err != nil {
				return fmt.Errorf("create %s: %w", b.name, err)
			}
			created++
		}
	}

	fmt.Fprintf(c.App.Writer, "created %d demo businesses\n", created)
	return nil
}

func ensureCategory(ctx context.Context, svc *service.CategoryService, repo *jsonstore.CategoryRepository, name string) (*domain.Category, error) {
	category, err := svc.Create(ctx, name)
	if errors.Is(err, apperrors.ErrAlreadyExists) {
		return repo.GetByName(ctx, name)
	}
	return category, err
}

func exportCommand(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.store.Close()

	out := c.String("out")
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	backend, err := file.New(out)
	if err != nil {
		return err
	}
	target := store.New("file", backend, e.logger)
	defer target.Close()

	for _, name := range []string{store.Categories, store.Businesses, store.Reviews, store.Users} {
		records, err := store.Open[json.RawMessage](e.store, name).List(c.Context)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := store.Open[json.RawMessage](target, name).Replace(c.Context, records); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Fprintf(c.App.Writer, "exported %d %s to %s\n", len(records), name, backend.Path(name))
	}
	return nil
}
