package biquad

import "testing"

func TestNewBankValidation(t *testing.T) {
	if _, err := NewBank(0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}

func TestBankSetActiveClamps(t *testing.T) {
	b, err := NewBank(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		in, want int
	}{
		{0, 1},
		{4, 4},
		{16, 16},
		{40, 16},
	}

	for _, tt := range tests {
		b.SetActive(tt.in)
		if b.Active() != tt.want {
			t.Fatalf("SetActive(%d): Active() = %d, want %d", tt.in, b.Active(), tt.want)
		}
	}
}

func TestBankInactiveSectionsUntouched(t *testing.T) {
	b, err := NewBank(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	old := Coefficients{B0: 0.9}
	for i := range 4 {
		b.SetSection(i, old)
	}

	b.SetActive(2)
	fresh := Coefficients{B0: 0.5, B1: 0.5}
	b.SetCoefficients(fresh)

	for i := range 2 {
		if b.Section(i).Coefficients != fresh {
			t.Fatalf("section %d not updated", i)
		}
	}
	for i := 2; i < 4; i++ {
		if b.Section(i).Coefficients != old {
			t.Fatalf("inactive section %d modified", i)
		}
	}
}

func TestBankProcessesOnlyActive(t *testing.T) {
	b, err := NewBank(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.SetActive(3)
	b.SetCoefficients(Coefficients{B0: 0.5})
	b.SetActive(1)

	buf := []float64{1, 1}
	b.ProcessBlock(buf)
	for i, v := range buf {
		if v != 0.5 {
			t.Fatalf("buf[%d] = %v, want 0.5", i, v)
		}
	}

	if y := b.ProcessSample(1); y != 0.5 {
		t.Fatalf("ProcessSample = %v, want 0.5", y)
	}
}
