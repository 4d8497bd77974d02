package repository

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var screeningCols = []string{
	"ID", "Time", "MovieID", "CinemaID",
	"ID", "Title", "Runtime", "ReleaseDate", "PosterPath",
	"ID", "Name", "City",
}

var released = time.Date(2021, time.October, 1, 0, 0, 0, 0, time.UTC)

// screeningRow builds the values for one joined screening where the movie
// and cinema ids are taken from the screening's foreign keys.
func screeningRow(id int64, at string, movieID, cinemaID int64, title, cinema, city string) []driver.Value {
	return []driver.Value{
		id, []byte(at), movieID, cinemaID,
		movieID, title, int64(148), released, title + ".jpg",
		cinemaID, cinema, city,
	}
}
