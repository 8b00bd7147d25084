package score

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		price Amount
		term  TermDays
		want  float64
		valid bool
	}{
		{"price 10 term 30", NewAmount(10.0), NewTermDays(30), 10.0333, true},
		{"price 10 term 1", NewAmount(10.0), NewTermDays(1), 11.0, true},
		{"equal price longer term wins", NewAmount(10.0), NewTermDays(90), 10.0111, true},
		{"zero term", NewAmount(10.0), NewTermDays(0), 0, false},
		{"absent price", Amount{}, NewTermDays(30), 0, false},
		{"absent term", NewAmount(10.0), TermDays{}, 0, false},
		{"both absent", Amount{}, TermDays{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.price, tt.term, DefaultDecimals)
			if got.Valid != tt.valid {
				t.Fatalf("Score() valid = %v, want %v", got.Valid, tt.valid)
			}
			if tt.valid && got.Value != tt.want {
				t.Errorf("Score() = %v, want %v", got.Value, tt.want)
			}
		})
	}
}

// At equal price, the vendor allowing more days to pay must score lower
// (better).
func TestScoreFavorsLongerTerms(t *testing.T) {
	price := NewAmount(25.0)
	short := Score(price, NewTermDays(15), DefaultDecimals)
	long := Score(price, NewTermDays(60), DefaultDecimals)

	if !short.Valid || !long.Valid {
		t.Fatal("both scores should be defined")
	}
	if long.Value >= short.Value {
		t.Errorf("60-day score %v should beat 15-day score %v", long.Value, short.Value)
	}
}

func TestTotalCost(t *testing.T) {
	price := NewAmount(12.5)

	for _, qty := range []int{1, 2, 7, 100} {
		got := TotalCost(price, qty)
		if !got.Valid {
			t.Fatalf("TotalCost(%v, %d) should be defined", price.Value, qty)
		}
		if want := price.Value * float64(qty); got.Value != want {
			t.Errorf("TotalCost(%v, %d) = %v, want %v", price.Value, qty, got.Value, want)
		}
	}

	if got := TotalCost(Amount{}, 10); got.Valid {
		t.Error("absent price should propagate to absent total cost")
	}
	if got := TotalCost(price, 0); got.Valid {
		t.Error("non-positive quantity should yield absent total cost")
	}
}
