package bookstore_test

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightsgoout/callauction/bookstore"
)

func TestFetchBookOrdersEachSideCorrectly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	askRows := sqlmock.NewRows([]string{"price", "volume"}).
		AddRow("50.00", int64(100)).
		AddRow("60.00", int64(100))
	mock.ExpectQuery(regexp.QuoteMeta("side = 'ask' ORDER BY price ASC")).
		WithArgs("SYM").
		WillReturnRows(askRows)

	bidRows := sqlmock.NewRows([]string{"price", "volume"}).
		AddRow("100.00", int64(100)).
		AddRow("90.00", int64(100))
	mock.ExpectQuery(regexp.QuoteMeta("side = 'bid' ORDER BY price DESC")).
		WithArgs("SYM").
		WillReturnRows(bidRows)

	asks, bids, err := bookstore.FetchBook(context.Background(), db, "SYM")
	require.NoError(t, err)
	require.Len(t, asks, 2)
	require.Len(t, bids, 2)
	assert.Equal(t, uint64(100), asks[0].Volume)
	assert.Equal(t, uint64(100), bids[0].Volume)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistRunNoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clearing_runs (symbol)")).
		WithArgs("SYM").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = bookstore.PersistRun(context.Background(), db, "SYM", bookstore.Outcome{Matched: false})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
