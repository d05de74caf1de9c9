package bankcsv

import (
	"os"
	"testing"
	"time"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

const sampleCSV = `Date,Description,Amount,Payment Method,Category
15-01-2024,Grocery Store,120.50,Credit Card,Food
01-01-2024,Company Salary Credit,"3,500.00",Bank Transfer,Salary
20-01-2024,"Dinner, with friends",45.00,Cash,Food`

func TestParse(t *testing.T) {
	p := NewParser()
	records := p.Parse(sampleCSV)

	if len(records) != 3 {
		t.Fatalf("Parse() returned %d records, want 3", len(records))
	}

	first := records[0]
	if first.Description != "Grocery Store" {
		t.Errorf("Description = %q, want %q", first.Description, "Grocery Store")
	}
	if first.Amount != 120.50 {
		t.Errorf("Amount = %v, want 120.50", first.Amount)
	}
	if first.Category != "Food" {
		t.Errorf("Category = %q, want %q", first.Category, "Food")
	}
	if first.PaymentMethod != "Credit Card" {
		t.Errorf("PaymentMethod = %q, want %q", first.PaymentMethod, "Credit Card")
	}
	wantDate := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", first.Date, wantDate)
	}

	// Grouping commas inside quotes are stripped from amounts.
	if records[1].Amount != 3500.00 {
		t.Errorf("quoted amount = %v, want 3500.00", records[1].Amount)
	}

	// Quoted commas in descriptions are literal text.
	if records[2].Description != "Dinner, with friends" {
		t.Errorf("quoted description = %q, want %q", records[2].Description, "Dinner, with friends")
	}
}

func TestParse_PreservesRowOrder(t *testing.T) {
	// Output order follows input order, not chronological order.
	raw := `Date,Description,Amount,Payment Method,Category
20-01-2024,Later,10.00,Cash,Misc
05-01-2024,Earlier,20.00,Cash,Misc`

	records := NewParser().Parse(raw)
	if len(records) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(records))
	}
	if records[0].Description != "Later" || records[1].Description != "Earlier" {
		t.Errorf("row order not preserved: got %q, %q", records[0].Description, records[1].Description)
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := NewParser()
	a := p.Parse(sampleCSV)
	b := p.Parse(sampleCSV)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		// IDs carry a per-batch random component and are expected to differ.
		if a[i].ID == b[i].ID {
			t.Errorf("row %d: IDs should differ between batches, both %q", i, a[i].ID)
		}
		a[i].ID, b[i].ID = "", ""
		if a[i] != b[i] {
			t.Errorf("row %d differs between identical parses:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestParse_EmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"whitespace only", "  \n  "},
		{"header only", "Date,Description,Amount,Payment Method,Category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewParser().Parse(tt.raw); len(got) != 0 {
				t.Errorf("Parse(%q) = %d records, want 0", tt.raw, len(got))
			}
		})
	}
}

func TestParse_DropsMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"too few fields", "15-01-2024,Groceries,10.00,Cash"},
		{"zero amount", "15-01-2024,Groceries,0,Cash,Food"},
		{"negative amount", "15-01-2024,Groceries,-5.00,Cash,Food"},
		{"non numeric amount", "15-01-2024,Groceries,abc,Cash,Food"},
		{"NaN amount", "15-01-2024,Groceries,NaN,Cash,Food"},
		{"trailing garbage amount", "15-01-2024,Groceries,12abc,Cash,Food"},
		{"bad date format", "2024-01-15,Groceries,10.00,Cash,Food"},
		{"rollover date", "32-01-2024,Groceries,10.00,Cash,Food"},
		{"month out of range", "15-13-2024,Groceries,10.00,Cash,Food"},
	}

	header := "Date,Description,Amount,Payment Method,Category\n"
	valid := "10-01-2024,Keep Me,1.00,Cash,Misc"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := NewParser().Parse(header + tt.row + "\n" + valid)
			if len(records) != 1 {
				t.Fatalf("Parse() kept %d records, want 1", len(records))
			}
			if records[0].Description != "Keep Me" {
				t.Errorf("survivor = %q, want %q", records[0].Description, "Keep Me")
			}
		})
	}
}

func TestParse_ExtraFieldsIgnored(t *testing.T) {
	raw := "Date,Description,Amount,Payment Method,Category\n" +
		"15-01-2024,Groceries,10.00,Cash,Food,extra,columns"

	records := NewParser().Parse(raw)
	if len(records) != 1 {
		t.Fatalf("Parse() returned %d records, want 1", len(records))
	}
	if records[0].Category != "Food" {
		t.Errorf("Category = %q, want %q", records[0].Category, "Food")
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields trimmed",
			line: "a, b ,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted comma kept",
			line: `a,"b,c",d`,
			want: []string{"a", "b,c", "d"},
		},
		{
			name: "quotes consumed mid field",
			line: `a,b"x,y"z,c`,
			want: []string{"a", "bx,yz", "c"},
		},
		{
			name: "unterminated quote swallows rest",
			line: `a,"b,c`,
			want: []string{"a", "b,c"},
		},
		{
			name: "empty fields preserved",
			line: "a,,c",
			want: []string{"a", "", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitFields(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("splitFields(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"120.50", 120.50, false},
		{"1,234.50", 1234.50, false},
		{" 3 500.00 ", 3500.00, false},
		{"0", 0, true},
		{"-10", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"nan", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
