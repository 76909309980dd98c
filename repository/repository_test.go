package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &repository{db: db}, mock
}

func TestOpen_NoDataSource(t *testing.T) {
	_, err := Open(RepositoryOptions{})
	assert.ErrorIs(t, err, ErrNoDataSource)
}

func TestInitDatabase(t *testing.T) {
	r, mock := newMockRepository(t)

	for _, stmt := range schema {
		mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, initDatabase(r.db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitDatabase_Error(t *testing.T) {
	r, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(schema[0])).WillReturnError(errors.New("permission denied"))

	err := initDatabase(r.db)
	assert.ErrorContains(t, err, "permission denied")
}

func TestSaveTags(t *testing.T) {
	t.Run("commits corpus and tags", func(t *testing.T) {
		r, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO corpora").
			WithArgs("sinica.txt", "zh-TW").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO corpus_tags").
			WithArgs("sinica.txt", "Na").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO corpus_tags").
			WithArgs("sinica.txt", "VJ").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, r.SaveTags("sinica.txt", "zh-TW", []string{"Na", "VJ"}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		r, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO corpora").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO corpus_tags").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := r.SaveTags("sinica.txt", "zh-TW", []string{"Na"})
		assert.ErrorContains(t, err, "save tag Na")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTags(t *testing.T) {
	r, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT tag FROM corpus_tags").
		WithArgs("sinica.txt").
		WillReturnRows(sqlmock.NewRows([]string{"tag"}).AddRow("Na").AddRow("VJ"))

	tags, err := r.GetTags("sinica.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Na", "VJ"}, tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddLexemes(t *testing.T) {
	t.Run("mismatched lengths", func(t *testing.T) {
		r, _ := newMockRepository(t)

		err := r.AddLexemes("lex", "en", []string{"a", "b"}, []int{1})
		assert.ErrorIs(t, err, errMismatchedFrequencies)
	})

	t.Run("upserts in one transaction", func(t *testing.T) {
		r, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO lexemes").
			WithArgs("lex", "en", "cat", 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO lexemes").
			WithArgs("lex", "en", "dog", 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, r.AddLexemes("lex", "en", []string{"cat", "dog"}, []int{2, 5}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddLexeme(t *testing.T) {
	r, mock := newMockRepository(t)

	mock.ExpectExec("INSERT INTO lexemes").
		WithArgs("lex", "en", "cat", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.AddLexeme("lex", "en", "cat", 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLexemes(t *testing.T) {
	r, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT lexeme, frequency FROM lexemes").
		WithArgs("lex", "en").
		WillReturnRows(sqlmock.NewRows([]string{"lexeme", "frequency"}).
			AddRow("cat", 2).
			AddRow("dog", 5))

	lexemes, frequencies, err := r.GetLexemes("lex", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, lexemes)
	assert.Equal(t, []int{2, 5}, frequencies)
	assert.NoError(t, mock.ExpectationsWereMet())
}
