package helpers

import "testing"

func TestHashPinRoundTrip(t *testing.T) {
	hash, err := HashPin("4321")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "4321" {
		t.Fatal("pin must not be stored in the clear")
	}
	if !VerifyPin(hash, "4321") {
		t.Error("correct pin should verify")
	}
	if VerifyPin(hash, "1234") {
		t.Error("wrong pin should not verify")
	}
}

func TestHashPinRejectsBadFormats(t *testing.T) {
	for _, pin := range []string{"", "12", "1234567", "12a4", "abcd"} {
		if _, err := HashPin(pin); err == nil {
			t.Errorf("pin %q should be rejected", pin)
		}
	}
}

func TestHashPinSalted(t *testing.T) {
	a, _ := HashPin("123456")
	b, _ := HashPin("123456")
	if a == b {
		t.Error("two hashes of the same pin should differ")
	}
}
