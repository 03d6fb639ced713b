package domain

import (
	"errors"
	"testing"
	"time"
)

// ========================================
// Percentage
// ========================================

func TestNewPercentage_RoundsToTwoDecimals(t *testing.T) {
	tests := []struct {
		num, den int64
		want     string
	}{
		{1, 3, "33.33"},
		{2, 3, "66.67"},
		{0, 10, "0.00"},
		{10, 10, "100.00"},
		{7, 400, "1.75"},
	}

	for _, tt := range tests {
		p, err := NewPercentage(tt.num, tt.den)
		if err != nil {
			t.Fatalf("NewPercentage(%d, %d): %v", tt.num, tt.den, err)
		}
		if p.String() != tt.want {
			t.Errorf("NewPercentage(%d, %d) = %s, want %s", tt.num, tt.den, p, tt.want)
		}
	}
}

func TestNewPercentage_Rejects(t *testing.T) {
	if _, err := NewPercentage(5, 0); !errors.Is(err, ErrZeroDenominator) {
		t.Errorf("zero denominator: got %v", err)
	}
	if _, err := NewPercentage(-1, 10); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("negative numerator: got %v", err)
	}
}

func TestNewPercentage_WithinBounds(t *testing.T) {
	for den := int64(1); den <= 50; den++ {
		for num := int64(0); num <= den; num++ {
			p, err := NewPercentage(num, den)
			if err != nil {
				t.Fatal(err)
			}
			if v := p.Float64(); v < 0 || v > 100 {
				t.Fatalf("%d/%d = %v out of [0,100]", num, den, v)
			}
		}
	}
}

func BenchmarkNewPercentage(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = NewPercentage(int64(i%997), 1000)
	}
}

// ========================================
// Month / Count
// ========================================

func TestMonth(t *testing.T) {
	m, err := NewMonth(2024, 3)
	if err != nil {
		t.Fatal(err)
	}
	if m.Label() != "2024-03" {
		t.Errorf("label = %s", m.Label())
	}
	if !m.Time().Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("time = %v", m.Time())
	}

	next, _ := NewMonth(2024, 4)
	prevYear, _ := NewMonth(2023, 12)
	if !m.Before(next) || next.Before(m) || !prevYear.Before(m) {
		t.Error("unexpected chronological order")
	}

	for _, bad := range [][2]int{{2024, 0}, {2024, 13}, {0, 5}} {
		if _, err := NewMonth(bad[0], bad[1]); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("NewMonth(%d, %d): expected ErrInvalidMonth, got %v", bad[0], bad[1], err)
		}
	}
}

func TestCount_PercentOf(t *testing.T) {
	if _, err := NewCount(-3); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("expected ErrNegativeCount, got %v", err)
	}

	p, err := MustNewCount(1).PercentOf(MustNewCount(8))
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "12.50" {
		t.Errorf("1/8 = %s", p)
	}
	if _, err := MustNewCount(1).PercentOf(MustNewCount(0)); !errors.Is(err, ErrZeroDenominator) {
		t.Errorf("expected ErrZeroDenominator, got %v", err)
	}
}

// ========================================
// Table
// ========================================

func TestTable_AppendRowValidatesTypes(t *testing.T) {
	tbl := NewTable(
		Column{Name: "airline_name", Type: ColumnText},
		Column{Name: "flights", Type: ColumnInteger},
		Column{Name: "rate", Type: ColumnFloat},
	)

	if err := tbl.AppendRow("Qantas", 120, 1.5); err != nil {
		t.Fatalf("valid row rejected: %v", err)
	}
	if err := tbl.AppendRow("Jetstar", nil, int64(2)); err != nil {
		t.Fatalf("NULL or widened value rejected: %v", err)
	}

	if err := tbl.AppendRow("Rex", "many", 1.0); !errors.Is(err, ErrColumnTypeMismatch) {
		t.Errorf("text in integer column: got %v", err)
	}
	if err := tbl.AppendRow(42, 1, 1.0); !errors.Is(err, ErrColumnTypeMismatch) {
		t.Errorf("integer in text column: got %v", err)
	}
	if err := tbl.AppendRow("Rex", 1); !errors.Is(err, ErrRowWidth) {
		t.Errorf("short row: got %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("rejected rows must not be appended, len = %d", tbl.Len())
	}
	if v, ok := tbl.Rows()[0][1].(int64); !ok || v != 120 {
		t.Errorf("integer not normalized to int64: %#v", tbl.Rows()[0][1])
	}
	if v, ok := tbl.Rows()[1][2].(float64); !ok || v != 2 {
		t.Errorf("integer not widened to float64: %#v", tbl.Rows()[1][2])
	}
}

func TestTable_Summarize(t *testing.T) {
	tbl := NewTable(Column{Name: "label", Type: ColumnText}, Column{Name: "value", Type: ColumnInteger})
	for i, v := range []int{10, 1, 5} {
		if err := tbl.AppendRow(string(rune('a'+i)), v); err != nil {
			t.Fatal(err)
		}
	}

	s, err := tbl.Summarize(1)
	if err != nil {
		t.Fatal(err)
	}
	if s.Min != 1 || s.Median != 5 || s.Max != 10 {
		t.Errorf("summary = %+v", s)
	}

	if _, err := tbl.Summarize(0); !errors.Is(err, ErrColumnTypeMismatch) {
		t.Errorf("text column summary: got %v", err)
	}

	empty := NewTable(Column{Name: "v", Type: ColumnFloat})
	if _, err := empty.Summarize(0); !errors.Is(err, ErrNoData) {
		t.Errorf("empty summary: got %v", err)
	}
}
