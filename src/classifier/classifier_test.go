package classifier

import "testing"

func TestIsIncome(t *testing.T) {
	tests := []struct {
		description string
		want        bool
	}{
		{"Company Salary Credit", true},
		{"Monthly Salary", true},
		{"SALARY PAYMENT", true},
		{"Freelance Income", true},
		{"Tax Refund", true},
		{"refund from store", true},
		{"Acme Company salary transfer", true},
		{"Grocery Store", false},
		{"Company Lunch", false}, // company alone is not income
		{"Electric Bill", false},
		{"", false},
		{"Salaries paid out", true}, // substring match, acknowledged fragility
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := IsIncome(tt.description); got != tt.want {
				t.Errorf("IsIncome(%q) = %v, want %v", tt.description, got, tt.want)
			}
		})
	}
}
