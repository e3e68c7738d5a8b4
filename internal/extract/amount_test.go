package extract

import "testing"

func TestAmountMissingVersusZero(t *testing.T) {
	if _, ok := Amount(map[string]any{}, PeriodCurrent); ok {
		t.Fatalf("expected absent for empty record")
	}
	if _, ok := Amount(map[string]any{"note": "no figures here"}, PeriodCurrent); ok {
		t.Fatalf("expected absent when no amount field exists")
	}
	v, ok := Amount(map[string]any{"amount": 0.0}, PeriodCurrent)
	if !ok {
		t.Fatalf("present zero field must report present")
	}
	if v != 0 {
		t.Fatalf("expected 0 got %.2f", v)
	}
}

func TestAmountFirstNonZeroWins(t *testing.T) {
	record := map[string]any{"amount": 0.0, "value": 250.0}
	v, ok := Amount(record, PeriodCurrent)
	if !ok || v != 250 {
		t.Fatalf("expected fallthrough to value=250 got (%.2f, %v)", v, ok)
	}
}

func TestAmountPreviousPeriod(t *testing.T) {
	record := map[string]any{"amount": 100.0, "previousYearAmount": 80.0}
	v, ok := Amount(record, PeriodPrevious)
	if !ok || v != 80 {
		t.Fatalf("expected previous year 80 got (%.2f, %v)", v, ok)
	}
}

func TestAmountContainerDescent(t *testing.T) {
	record := map[string]any{
		"amounts": map[string]any{"amount": 100.0, "previousYearAmount": 50.0},
	}
	if v, ok := Amount(record, PeriodCurrent); !ok || v != 100 {
		t.Fatalf("expected current 100 via container got (%.2f, %v)", v, ok)
	}
	if v, ok := Amount(record, PeriodPrevious); !ok || v != 50 {
		t.Fatalf("expected previous 50 via container got (%.2f, %v)", v, ok)
	}

	positional := map[string]any{"values": []any{10.0, 20.0}}
	if v, ok := Amount(positional, PeriodCurrent); !ok || v != 10 {
		t.Fatalf("expected positional current 10 got (%.2f, %v)", v, ok)
	}
	if v, ok := Amount(positional, PeriodPrevious); !ok || v != 20 {
		t.Fatalf("expected positional previous 20 got (%.2f, %v)", v, ok)
	}
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{1234.5, 1234.5},
		{int(42), 42},
		{int64(7), 7},
		{"(1,234)", -1234},
		{"AED 1,500.50", 1500.5},
		{"2 345", 2345},
		{"", 0},
		{"n/a", 0},
		{true, 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := Coerce(tc.in); got != tc.want {
			t.Fatalf("Coerce(%v) = %.2f want %.2f", tc.in, got, tc.want)
		}
	}
}

func TestDescription(t *testing.T) {
	if got := Description(map[string]any{"label": "  Revenue  "}); got != "Revenue" {
		t.Fatalf("expected trimmed label got %q", got)
	}
	if got := Description(map[string]any{"particulars": "Bank charges"}); got != "Bank charges" {
		t.Fatalf("expected particulars got %q", got)
	}
	if got := Description(map[string]any{"amount": 5.0}); got != "" {
		t.Fatalf("expected empty description got %q", got)
	}
}
