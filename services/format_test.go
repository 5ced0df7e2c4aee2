package services

import "testing"

func TestFormatRupiah_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "Rp 0"},
		{"small integer", 5, "Rp 5"},
		{"hundreds", 999, "Rp 999"},
		{"thousands", 1234, "Rp 1.234"},
		{"ten thousands", 12345, "Rp 12.345"},
		{"hundred thousands", 123456, "Rp 123.456"},
		{"millions", 1234567, "Rp 1.234.567"},
		{"rounds decimals away", 11200.4, "Rp 11.200"},
		{"half rounds to even", 11200.5, "Rp 11.200"},
		{"negative", -250000, "-Rp 250.000"},
		{"exact thousand boundary", 1000, "Rp 1.000"},
		{"exact million boundary", 1000000, "Rp 1.000.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRupiah(tt.input)
			if got != tt.expect {
				t.Errorf("FormatRupiah(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatRupiahDecimals(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		places int
		expect string
	}{
		{"two decimals", 1234.5, 2, "Rp 1.234,50"},
		{"grouping with decimals", 1234567.89, 2, "Rp 1.234.567,89"},
		{"zero places equals FormatRupiah", 1234, 0, "Rp 1.234"},
		{"negative with decimals", -99.95, 2, "-Rp 99,95"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRupiahDecimals(tt.input, tt.places)
			if got != tt.expect {
				t.Errorf("FormatRupiahDecimals(%v, %d) = %q, want %q", tt.input, tt.places, got, tt.expect)
			}
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"5", "5"},
		{"42", "42"},
		{"999", "999"},
		{"1234", "1.234"},
		{"12345", "12.345"},
		{"123456", "123.456"},
		{"1234567", "1.234.567"},
		{"1234567890", "1.234.567.890"},
	}

	for _, tt := range tests {
		if got := groupThousands(tt.input); got != tt.expect {
			t.Errorf("groupThousands(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name        string
		value       float64
		places      int
		includeSign bool
		expect      string
	}{
		{"one decimal", 40, 1, false, "40.0%"},
		{"two decimals", 28.571, 2, false, "28.57%"},
		{"positive with sign", 2.5, 1, true, "+2.5%"},
		{"negative keeps own sign", -3, 1, true, "-3.0%"},
		{"zero with sign flag", 0, 1, true, "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPercent(tt.value, tt.places, tt.includeSign)
			if got != tt.expect {
				t.Errorf("FormatPercent(%v, %d, %v) = %q, want %q",
					tt.value, tt.places, tt.includeSign, got, tt.expect)
			}
		})
	}
}

func TestFormatGap(t *testing.T) {
	tests := []struct {
		input  float64
		expect string
	}{
		{2.5, "+2.5 pp"},
		{-3, "-3.0 pp"},
		{0, "0 pp"},
		{0.04, "+0.0 pp"},
	}

	for _, tt := range tests {
		if got := FormatGap(tt.input); got != tt.expect {
			t.Errorf("FormatGap(%v) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestParseRupiah(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect float64
	}{
		{"formatted currency", "Rp 1.234.567", 1234567},
		{"grouping only", "1.234.567", 1234567},
		{"plain number", "1234567", 1234567},
		{"no space after symbol", "Rp1234567", 1234567},
		{"single grouping dot", "1.234", 1234},
		{"decimal point", "8.5", 8.5},
		{"fractional with three decimals", "0.125", 0.125},
		{"fractional half", "0.500", 0.5},
		{"bare fraction", ".500", 0.5},
		{"comma decimal", "1.234,56", 1234.56},
		{"negative", "-Rp 1.000", -1000},
		{"empty", "", 0},
		{"garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRupiah(tt.input)
			if got != tt.expect {
				t.Errorf("ParseRupiah(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	if got := formatQty(10); got != "10" {
		t.Errorf("formatQty(10) = %q, want 10", got)
	}
	if got := formatQty(2.5); got != "2.50" {
		t.Errorf("formatQty(2.5) = %q, want 2.50", got)
	}
}
