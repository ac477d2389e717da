package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/healthai/riskpanel/config"
	"github.com/healthai/riskpanel/database"
	"github.com/healthai/riskpanel/database/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	users       *UserService
	auth        *AuthService
	predictions *PredictionService
	admin       *UserAdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := database.Open(&config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "panel.db"),
		BusyTimeout: 5000,
		WAL:         true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(conn) })

	users := NewUserService(conn)
	return &fixture{
		db:          conn,
		users:       users,
		auth:        NewAuthService(users),
		predictions: NewPredictionService(conn),
		admin:       NewUserAdminService(users),
	}
}

func (f *fixture) register(t *testing.T, login, password, email string) *model.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), login, password, email)
	require.NoError(t, err)
	return u
}

func ptr(f float64) *float64 { return &f }

// runConcurrently starts n goroutines running fn and waits for all of them.
func runConcurrently(n int, fn func(i int)) {
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
}
