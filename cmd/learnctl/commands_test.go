package main

import (
	"bytes"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/learnpath/backend/libs/auth/service"
	"github.com/learnpath/backend/libs/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(out *bytes.Buffer) (*app, *bool) {
	connected := false
	return &app{
		loadConfig: func() (*config.Config, error) {
			cfg := &config.Config{}
			cfg.JWT.Secret = "test-secret"
			cfg.Logging.Level = "error"
			return cfg, nil
		},
		connectDB: func(dsn string) (*sql.DB, error) {
			connected = true
			return nil, errors.New("no database in tests")
		},
		out: out,
	}, &connected
}

func execute(a *app, args ...string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})
	return root.Execute()
}

func TestTokenCmd(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedError string
		expectedRole  int
	}{
		{
			name:         "student token",
			args:         []string{"token", "--user", "5"},
			expectedRole: service.RoleStudent,
		},
		{
			name:         "tutor token",
			args:         []string{"token", "--user", "5", "--role", "2", "--ttl", "10m"},
			expectedRole: service.RoleTutor,
		},
		{
			name:          "missing user",
			args:          []string{"token"},
			expectedError: "required flag",
		},
		{
			name:          "non-positive user",
			args:          []string{"token", "--user", "0"},
			expectedError: "--user must be a positive user ID",
		},
		{
			name:          "unknown role",
			args:          []string{"token", "--user", "5", "--role", "4"},
			expectedError: "--role must be between 1 and 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a, _ := testApp(&out)

			err := execute(a, tt.args...)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)

			claims, err := service.NewTokenValidator("test-secret").ValidateAccessToken(strings.TrimSpace(out.String()))
			require.NoError(t, err)
			assert.Equal(t, 5, claims.UserID)
			assert.Equal(t, tt.expectedRole, claims.Role)
		})
	}
}

func TestReconcileCmd_ValidatesUserBeforeConnecting(t *testing.T) {
	var out bytes.Buffer
	a, connected := testApp(&out)

	err := execute(a, "reconcile", "--user=-3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user must be a positive user ID")
	assert.False(t, *connected)
}

func TestMigrateCmd(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		expectedError   string
		expectedConnect bool
	}{
		{
			name:            "up reports connection failure",
			args:            []string{"migrate", "up"},
			expectedError:   "no database in tests",
			expectedConnect: true,
		},
		{
			name:          "negative steps",
			args:          []string{"migrate", "down", "--steps", "-1"},
			expectedError: "--steps must not be negative",
		},
		{
			name:          "unexpected argument",
			args:          []string{"migrate", "up", "now"},
			expectedError: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a, connected := testApp(&out)

			err := execute(a, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
			assert.Equal(t, tt.expectedConnect, *connected)
		})
	}
}
