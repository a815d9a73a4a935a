// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"database/sql"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrinter_AddPrinter(t *testing.T) {
	p := NewPrinters()
	p.AddPrinter(&PrinterToWriter{}).AddPrinter(&PrinterToWriter{})
	assert.Equal(t, 2, len(p.printers))
}

func TestPrinters_PrintContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	mockErr := errors.New("mock error")

	gomock.InOrder(
		first.EXPECT().Print().Return(mockErr),
		second.EXPECT().Print().Return(nil),
	)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)
	require.ErrorIs(t, p.Print(), mockErr)
}

func TestPrinters_CloseClosesAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	mockErr := errors.New("mock error")

	first.EXPECT().Close().Return(mockErr)
	second.EXPECT().Close().Return(nil)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)
	require.ErrorIs(t, p.Close(), mockErr)
}

func TestPrinters_AddPrinterToConsole(t *testing.T) {
	p := NewPrinters().AddPrinterToConsole(false, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))

	p = NewPrinters().AddPrinterToConsole(true, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinters_AddPrinterToFile(t *testing.T) {
	p := NewPrinters().AddPrinterToFile("test.txt", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))

	p = NewPrinters().AddPrinterToFile("", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinterToWriter_NewPrinterToConsole(t *testing.T) {
	p := NewPrinterToConsole(func() string {
		return "Hello, World!"
	})
	assert.Equal(t, reflect.ValueOf(os.Stdout).Pointer(), reflect.ValueOf(p.w).Pointer())
	assert.NoError(t, p.Close())
}

func TestPrinterToFile_PrintAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	p := NewPrinterToFile(path, func() string {
		return "line\n"
	})
	require.NoError(t, p.Print())
	require.NoError(t, p.Print())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nline\n", string(data))
}

func TestPrinterToFile_PrintFailsOnMissingDirectory(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "test.txt"), func() string {
		return ""
	})
	require.ErrorContains(t, p.Print(), "unable to print to file")
}

func TestPrinterToDb_Print(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	const insert = "INSERT INTO windows"
	p := &PrinterToDb{
		db:     db,
		insert: insert,
		f: func() [][]any {
			return [][]any{{1, 0.5}}
		},
	}

	// case success
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare(insert).WillBeClosed()
	mockDb.ExpectExec(insert).WithArgs(1, 0.5).WillReturnResult(sqlmock.NewResult(1, 1))
	mockDb.ExpectCommit()
	assert.NoError(t, p.Print())

	// case Begin error
	mockErr := errors.New("mock error")
	mockDb.ExpectBegin().WillReturnError(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Prepare error
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare(insert).WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Exec error
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare(insert).WillBeClosed()
	mockDb.ExpectExec(insert).WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Commit error
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare(insert).WillBeClosed()
	mockDb.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(1, 1))
	mockDb.ExpectCommit().WillReturnError(mockErr)
	assert.ErrorIs(t, p.Print(), mockErr)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_Close(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)

	p := &PrinterToDb{db: db}
	mockDb.ExpectClose()
	assert.NoError(t, p.Close())
	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_NewPrinterToSqlite3(t *testing.T) {
	p, err := NewPrinterToSqlite3(":memory:", "CREATE TABLE t (v INTEGER)", "INSERT INTO t VALUES (?)", func() [][]any {
		return [][]any{{1}, {2}}
	})
	require.NoError(t, err)
	require.NoError(t, p.Print())

	var count int
	require.NoError(t, p.db.QueryRow("SELECT COUNT(*) FROM t").Scan(&count))
	assert.Equal(t, 2, count)
	assert.NoError(t, p.Close())

	p, err = NewPrinterToSqlite3(":memory:", "asfd;asdf", "", func() [][]any {
		return [][]any{}
	})
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestPrinterToBuffer_FlushesWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockFlusher := NewMockPrinter(ctrl)
	p := &PrinterToBuffer{
		capacity: 2,
		f: func() [][]any {
			return [][]any{{"Hello", "World"}}
		},
		flusher: mockFlusher,
	}

	require.NoError(t, p.Print())
	assert.Equal(t, 1, p.Length())

	mockFlusher.EXPECT().Print().Return(nil)
	require.NoError(t, p.Print())
	assert.NoError(t, p.Close())
}

func TestPrinterToBuffer_Reset(t *testing.T) {
	p := &PrinterToBuffer{buffer: make([][]any, 10)}
	assert.Equal(t, 10, p.Length())
	p.Reset()
	assert.Equal(t, 0, p.Length())
}

func TestFlusher_WritesBufferedRowsOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.db")
	row := 0
	p, err := NewPrinterToSqlite3(path, "CREATE TABLE t (v INTEGER)", "INSERT INTO t VALUES (?)", func() [][]any {
		row++
		return [][]any{{row}}
	})
	require.NoError(t, err)

	buffer, flusher := p.Bufferize(3)
	for i := 0; i < 4; i++ {
		require.NoError(t, buffer.Print())
	}
	assert.Equal(t, 1, buffer.Length())
	require.NoError(t, flusher.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM t").Scan(&count))
	assert.Equal(t, 4, count)
}

func TestFlusher_EmptyBufferSkipsDatabase(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f := &Flusher{
		og: &PrinterToDb{db: db},
		bf: &PrinterToBuffer{},
	}
	assert.NoError(t, f.Print())
	assert.NoError(t, mockDb.ExpectationsWereMet())
}
