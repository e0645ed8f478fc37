package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"meetinggate/config"
	"meetinggate/internal/adapters/auth"
	"meetinggate/internal/domain"
	"meetinggate/internal/repository/postgres"
	"meetinggate/internal/services"

	"golang.org/x/crypto/bcrypt"
)

var errAddUserUsage = errors.New("usage: meetinggate adduser <username> [name] [email] < password")

func runAddUser(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string) error {
	if len(args) == 0 || len(args) > 3 {
		return errAddUserUsage
	}
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	svc := services.NewAuthService(postgres.NewUserRepository(db), auth.NewBcryptHasher(bcrypt.DefaultCost), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)
	user, err := registerUser(ctx, svc, args, os.Stdin)
	if err != nil {
		return err
	}
	logger.Info("user created", "user_id", user.ID, "username", user.Username)
	fmt.Fprintln(os.Stdout, user.ID)
	return nil
}

// registerUser reads the password from the first line of in and registers
// args[0] with the optional name and email that follow it.
func registerUser(ctx context.Context, svc domain.AuthService, args []string, in io.Reader) (*domain.User, error) {
	if len(args) == 0 || len(args) > 3 {
		return nil, errAddUserUsage
	}
	password, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read password: %w", err)
	}
	nu := domain.NewUser{Username: args[0], Password: strings.TrimRight(password, "\r\n")}
	if len(args) > 1 {
		nu.Name = args[1]
	}
	if len(args) > 2 {
		nu.Email = args[2]
	}
	return svc.Register(ctx, nu)
}
