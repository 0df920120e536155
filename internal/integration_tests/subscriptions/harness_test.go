//go:build integration

package subscriptions_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Veikkosuhonen/cloudcafe/internal/config"
	"github.com/Veikkosuhonen/cloudcafe/internal/startup"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage/postgres"
	"github.com/Veikkosuhonen/cloudcafe/internal/telemetry"
	"github.com/Veikkosuhonen/cloudcafe/pkg/testutil/containers"
)

var initLogging sync.Once

// setupLogging sends logs to stdout when TEST_LOG is set and discards them
// otherwise.
func setupLogging() {
	initLogging.Do(func() {
		var w io.Writer = io.Discard
		if _, ok := os.LookupEnv("TEST_LOG"); ok {
			w = os.Stdout
		}
		logger, err := telemetry.NewLogger(config.Development, w)
		if err != nil {
			panic(err)
		}
		telemetry.Init(logger)
	})
}

type testApp struct {
	address string
	pool    *pgxpool.Pool
	client  *http.Client
}

// spawnApp provisions a fresh, migrated database named by a random UUID and
// serves the application on an OS-assigned port.
func spawnApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	setupLogging()

	ctx := context.Background()
	pg := containers.GetPostgres(t)

	name := uuid.NewString()
	require.NoError(t, pg.CreateDatabase(ctx, name))
	dsn, err := config.DatabaseSettings{URL: pg.ConnString}.WithDatabase(name)
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool), "failed to migrate the test database")

	listener, err := startup.Listen(config.ApplicationSettings{Host: "127.0.0.1", Port: 0})
	require.NoError(t, err)

	router := startup.NewRouter(startup.Deps{
		Storage:        postgres.NewFromPool(pool),
		TracerProvider: noop.NewTracerProvider(),
	})
	server := startup.New(listener, router, config.ApplicationSettings{})
	go func() { _ = server.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	return &testApp{
		address: "http://" + server.Addr(),
		pool:    pool,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *testApp) postSubscriptions(t *testing.T, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.address+"/subscribe", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	require.NoError(t, err, "failed to execute request")
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (a *testApp) countSubscriptions(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, a.pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM subscriptions").Scan(&n))
	return n
}

// uniqueDatabaseName guards against the harness silently reusing a database.
func uniqueDatabaseName(t *testing.T, a *testApp) string {
	t.Helper()
	var name string
	require.NoError(t, a.pool.QueryRow(context.Background(), "SELECT current_database()").Scan(&name))
	_, err := uuid.Parse(name)
	require.NoError(t, err)
	slog.Debug("test database", slog.String("name", name))
	return name
}
