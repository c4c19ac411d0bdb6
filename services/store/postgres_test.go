package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/propertymonitor/internal/listing"
	perrors "sjsage522/propertymonitor/pkg/errors"
)

// fakeConn emulates the listings table with ON CONFLICT DO NOTHING semantics
type fakeConn struct {
	mu      sync.Mutex
	rows    map[string][]any
	execErr error
	queries []string
}

var _ pgxConn = (*fakeConn)(nil)

func newFakeConn() *fakeConn {
	return &fakeConn{rows: make(map[string][]any)}
}

func (f *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, sql)

	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if !strings.Contains(sql, "INSERT INTO listings") {
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}

	fingerprint := args[0].(string)
	if _, exists := f.rows[fingerprint]; exists {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	f.rows[fingerprint] = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeRow{n: int64(len(f.rows))}
}

type fakeRow struct {
	n int64
}

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.n
	return nil
}

func testListing(url string, price int) listing.Listing {
	return listing.New("Bilocale", price, "Torino", "", url, time.Now())
}

func TestPostgresStoreInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	conn := newFakeConn()
	s := newPostgresStore(conn, nil)

	require.NoError(t, s.migrate(ctx))
	assert.Contains(t, conn.queries[0], "CREATE TABLE IF NOT EXISTS listings")

	l := testListing("https://www.idealista.it/immobile/1/", 500)

	inserted, err := s.InsertIfAbsent(ctx, l)
	require.NoError(t, err)
	assert.True(t, inserted)

	for i := 0; i < 3; i++ {
		inserted, err = s.InsertIfAbsent(ctx, l)
		require.NoError(t, err)
		assert.False(t, inserted)
	}

	inserted, err = s.InsertIfAbsent(ctx, testListing("https://www.idealista.it/immobile/2/", 600))
	require.NoError(t, err)
	assert.True(t, inserted)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, s.Close())
}

func TestPostgresStoreConcurrentInsertsCountOnce(t *testing.T) {
	ctx := context.Background()
	s := newPostgresStore(newFakeConn(), nil)
	l := testListing("https://www.idealista.it/immobile/42/", 700)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inserted, err := s.InsertIfAbsent(ctx, l)
			assert.NoError(t, err)
			if inserted {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestPostgresStoreInsertError(t *testing.T) {
	conn := newFakeConn()
	conn.execErr = errors.New("connection reset by peer")
	s := newPostgresStore(conn, nil)

	inserted, err := s.InsertIfAbsent(context.Background(), testListing("https://www.idealista.it/immobile/1/", 500))
	assert.False(t, inserted)
	assert.True(t, perrors.IsType(err, perrors.ErrorTypeStore))
}

// This test requires a running PostgreSQL instance reachable through
// PROPERTYMONITOR_TEST_POSTGRES_DSN; it is skipped otherwise.
func TestPostgresStoreLive(t *testing.T) {
	dsn := os.Getenv("PROPERTYMONITOR_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PostgreSQL is not configured, skipping test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewPostgresStore(ctx, dsn, 2)
	if err != nil {
		t.Skipf("PostgreSQL is not available, skipping test: %v", err)
	}
	defer s.Close()

	l := testListing("https://www.idealista.it/immobile/test-"+time.Now().Format("150405.000000000")+"/", 500)

	inserted, err := s.InsertIfAbsent(ctx, l)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.InsertIfAbsent(ctx, l)
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
}
