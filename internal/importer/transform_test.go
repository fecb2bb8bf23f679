package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"native float", 1234.56, 1234.56},
		{"native int", 42, 42},
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"plain decimal", "1234.56", 1234.56},
		{"plain integer string", "1500", 1500},
		{"brazilian thousands", "1.234,56", 1234.56},
		{"brazilian millions", "1.234.567,89", 1234567.89},
		{"brazilian currency", "R$ 1.234,56", 1234.56},
		{"negative brazilian", "-1.234,56", -1234.56},
		{"us thousands", "1,234.56", 1234.56},
		{"us currency", "$1,234.56", 1234.56},
		{"comma decimal without thousands", "1234,5", 1234.5},
		{"comma decimal small", "89,90", 89.9},
		{"not a number", "indisponível", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseNumber(tt.raw), 0.0001)
		})
	}
}

func TestParseInteger(t *testing.T) {
	assert.Equal(t, int64(12345), ParseInteger("12.345 km"))
	assert.Equal(t, int64(42), ParseInteger(" 42 "))
	assert.Equal(t, int64(7), ParseInteger(7.9))
	assert.Equal(t, int64(0), ParseInteger(nil))
	assert.Equal(t, int64(0), ParseInteger("sem registro"))
}

func TestParseDate(t *testing.T) {
	t.Run("brazilian day first", func(t *testing.T) {
		got := ParseDate("15/03/2026")
		require.NotNil(t, got)
		assert.Equal(t, "2026-03-15", *got)
	})

	t.Run("ambiguous defaults to day first", func(t *testing.T) {
		got := ParseDate("05/03/2026")
		require.NotNil(t, got)
		assert.Equal(t, "2026-03-05", *got)
	})

	t.Run("month first when day cannot be a month", func(t *testing.T) {
		got := ParseDate("12/31/2025")
		require.NotNil(t, got)
		assert.Equal(t, "2025-12-31", *got)
	})

	t.Run("two digit year", func(t *testing.T) {
		got := ParseDate("01/02/26")
		require.NotNil(t, got)
		assert.Equal(t, "2026-02-01", *got)

		got = ParseDate("01/02/96")
		require.NotNil(t, got)
		assert.Equal(t, "1996-02-01", *got)
	})

	t.Run("iso passthrough", func(t *testing.T) {
		got := ParseDate("2026-08-31")
		require.NotNil(t, got)
		assert.Equal(t, "2026-08-31", *got)
	})

	t.Run("excel serial", func(t *testing.T) {
		got := ParseDate(float64(25569))
		require.NotNil(t, got)
		assert.Equal(t, "1970-01-01", *got)

		got = ParseDate(float64(45000))
		require.NotNil(t, got)
		assert.Equal(t, "2023-03-15", *got)
	})

	t.Run("native time", func(t *testing.T) {
		got := ParseDate(time.Date(2026, time.July, 9, 10, 30, 0, 0, time.UTC))
		require.NotNil(t, got)
		assert.Equal(t, "2026-07-09", *got)
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		assert.Nil(t, ParseDate("31/02/2026"))
		assert.Nil(t, ParseDate("00/01/2026"))
		assert.Nil(t, ParseDate("15/13/2026"))
	})

	t.Run("rejects out of range years", func(t *testing.T) {
		assert.Nil(t, ParseDate(float64(100000)))
		assert.Nil(t, ParseDate(float64(-5)))
		assert.Nil(t, ParseDate("01/01/2150"))
	})

	t.Run("rejects identifiers", func(t *testing.T) {
		// RENAVAM and serial numbers look numeric but are not dates.
		assert.Nil(t, ParseDate("12345678901"))
		assert.Nil(t, ParseDate("contrato de prestação de serviços nº 42"))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		assert.Nil(t, ParseDate(nil))
		assert.Nil(t, ParseDate(""))
		assert.Nil(t, ParseDate("em análise"))
	})
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"abbreviated month", "jan/26", "2026-01-01"},
		{"full month name", "janeiro/2026", "2026-01-01"},
		{"accented month", "março/2026", "2026-03-01"},
		{"dash separator", "dez-25", "2025-12-01"},
		{"numeric month year", "03/2026", "2026-03-01"},
		{"full date truncates to month", "15/03/2026", "2026-03-01"},
		{"serial truncates to month", float64(45000), "2023-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMonth(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	t.Run("rejects unknown month names", func(t *testing.T) {
		assert.Nil(t, ParseMonth("mês/2026"))
		assert.Nil(t, ParseMonth(nil))
	})
}

func TestParseDateTime(t *testing.T) {
	t.Run("brazilian with time", func(t *testing.T) {
		got := ParseDateTime("15/03/2026 14:30")
		require.NotNil(t, got)
		assert.Equal(t, "2026-03-15T14:30:00", *got)
	})

	t.Run("brazilian date only", func(t *testing.T) {
		got := ParseDateTime("15/03/2026")
		require.NotNil(t, got)
		assert.Equal(t, "2026-03-15T00:00:00", *got)
	})

	t.Run("iso layouts", func(t *testing.T) {
		got := ParseDateTime("2026-03-15 14:30:45")
		require.NotNil(t, got)
		assert.Equal(t, "2026-03-15T14:30:45", *got)
	})

	t.Run("fractional excel serial keeps the time", func(t *testing.T) {
		got := ParseDateTime(float64(45000.5))
		require.NotNil(t, got)
		assert.Equal(t, "2023-03-15T12:00:00", *got)
	})

	t.Run("rejects invalid times", func(t *testing.T) {
		assert.Nil(t, ParseDateTime("15/03/2026 25:00"))
		assert.Nil(t, ParseDateTime("texto livre"))
		assert.Nil(t, ParseDateTime(nil))
	})
}

func TestParseString(t *testing.T) {
	assert.Equal(t, "ABC-1234", ParseString("  ABC-1234  "))
	assert.Equal(t, "", ParseString(nil))
	assert.Equal(t, "42", ParseString(42))
}
