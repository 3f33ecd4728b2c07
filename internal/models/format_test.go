package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name     string
		dob      string
		expected int
	}{
		{"empty dob", "", 0},
		{"unparseable dob", "not-a-date", 0},
		{"birthday already passed", "2008-08-31", 18},
		{"birthday is today", "2008-09-01", 18},
		{"birthday tomorrow", "2008-09-02", 17},
		{"toddler", "2024-01-15", 2},
		{"rfc3339 timestamp", "2008-08-31T00:00:00Z", 18},
		{"future dob", "2030-01-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AgeAt(tt.dob, testNow))
		})
	}
}

func TestGradeAt(t *testing.T) {
	tests := []struct {
		name     string
		dob      string
		expected string
	}{
		{"toddler", "2024-06-01", "Toddler"},
		{"preschool", "2022-06-01", "Preschool"},
		{"primary class", "2018-06-01", "Class 3"},
		{"secondary class", "2014-06-01", "Class 7 (Secondary)"},
		{"adult", "1990-06-01", "Graduate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GradeAt(tt.dob, testNow))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹450", FormatCurrency(450))
	// Indian digit grouping: last three digits, then pairs
	assert.Equal(t, "₹12,34,567", FormatCurrency(1234567))
}

func TestLoanIsOverdue(t *testing.T) {
	returned := testNow.Add(-5 * 24 * time.Hour)

	tests := []struct {
		name     string
		loan     Loan
		expected bool
	}{
		{
			name:     "31 days out, unreturned",
			loan:     Loan{LoanDate: testNow.Add(-31 * 24 * time.Hour)},
			expected: true,
		},
		{
			name:     "29 days out, unreturned",
			loan:     Loan{LoanDate: testNow.Add(-29 * 24 * time.Hour)},
			expected: false,
		},
		{
			name:     "exactly 30 days out",
			loan:     Loan{LoanDate: testNow.Add(-30 * 24 * time.Hour)},
			expected: false,
		},
		{
			name:     "31 days out but returned",
			loan:     Loan{LoanDate: testNow.Add(-31 * 24 * time.Hour), ReturnDate: &returned},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loan.IsOverdue(testNow))
		})
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 9)
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}

func TestStarterBooksGetFreshIDs(t *testing.T) {
	a := StarterBooks()
	b := StarterBooks()
	assert.Equal(t, len(a), len(b))
	for i := range a {
		assert.NotEmpty(t, a[i].ID)
		assert.NotEqual(t, a[i].ID, b[i].ID)
		assert.Equal(t, StatusUnread, a[i].Status)
	}
}

func TestInitialState(t *testing.T) {
	st := InitialState()
	assert.False(t, st.IsSetupComplete)
	assert.True(t, st.IsDemoMode)
	assert.NotEmpty(t, st.Books)
	assert.Empty(t, st.Users)
	assert.Equal(t, "gemini", st.AISettings.Provider)
	assert.Equal(t, "sqlite", st.DBSettings.Type)
	assert.Equal(t, "weekly", st.BackupSettings.Frequency)
	assert.True(t, st.QOLSettings.ShowValue)
}
