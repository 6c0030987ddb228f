package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/workhive/backend/internal/config"
	"github.com/workhive/backend/internal/domain"
	"github.com/workhive/backend/internal/repository"
	"github.com/workhive/backend/internal/seed"
	"github.com/workhive/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var role string

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: seed sample marketplace data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&role, "role", "professional", "role for random users (professional, company, client)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not touch the database, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		userRole := domain.Role(role)
		if !userRole.IsValid() {
			slog.Error("invalid role", slog.String("role", role))
			return
		}
		if n <= 0 {
			slog.Error("invalid user count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(userRole, cfg.Seed.UserPassword, "example.com")
			if err != nil {
				slog.Error("unable to generate user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("unable to insert user", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("users inserted", slog.Int("count", n-cnt))
	case 2:
		seed.SeedSampleData(repo, cfg.Seed.UserPassword)
	default:
		slog.Error("unknown operation")
	}
}
