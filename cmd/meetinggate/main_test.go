package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"meetinggate/config"
	"meetinggate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRun_UnknownEntryPoint(t *testing.T) {
	assert.Equal(t, 2, run([]string{"dance"}))
}

func TestEntryPoints(t *testing.T) {
	for _, name := range []string{"adduser", "join", "serve"} {
		ep, ok := entryPoints[name]
		if assert.True(t, ok, name) {
			assert.NotNil(t, ep.run)
			assert.Contains(t, ep.usage, name)
		}
	}
}

func TestRunServe_RequiresJWTSecret(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		err := runServe(context.Background(), &config.Config{Environment: env}, testLogger, nil)
		require.EqualError(t, err, "JWT_SECRET is required", env)
	}
}

func TestRunAddUser_Usage(t *testing.T) {
	err := runAddUser(context.Background(), &config.Config{}, testLogger, nil)
	require.ErrorIs(t, err, errAddUserUsage)
}

// recordingAuthService captures the registration it receives.
type recordingAuthService struct {
	got domain.NewUser
}

func (r *recordingAuthService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (r *recordingAuthService) Register(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	r.got = in
	return &domain.User{ID: "u1", Username: in.Username}, nil
}

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		input   string
		want    domain.NewUser
		wantErr error
	}{
		{name: "username only", args: []string{"alice"}, input: "s3cret-pass\n", want: domain.NewUser{Username: "alice", Password: "s3cret-pass"}},
		{name: "name and email", args: []string{"bob", "Bob B", "bob@example.com"}, input: "pw with spaces\r\n", want: domain.NewUser{Username: "bob", Name: "Bob B", Email: "bob@example.com", Password: "pw with spaces"}},
		{name: "password without newline", args: []string{"carol"}, input: "no-newline", want: domain.NewUser{Username: "carol", Password: "no-newline"}},
		{name: "no args", args: nil, wantErr: errAddUserUsage},
		{name: "too many args", args: []string{"a", "b", "c", "d"}, wantErr: errAddUserUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &recordingAuthService{}

			user, err := registerUser(context.Background(), svc, tt.args, strings.NewReader(tt.input))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.got)
			assert.Equal(t, "u1", user.ID)
		})
	}
}
