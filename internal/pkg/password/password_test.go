package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !Verify("correct horse battery staple", hash) {
		t.Error("correct password should verify")
	}
	if Verify("wrong password", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestHashToken(t *testing.T) {
	first := HashToken("some-refresh-token")
	second := HashToken("some-refresh-token")
	other := HashToken("another-token")

	if first != second {
		t.Error("token hashing must be deterministic")
	}
	if first == other {
		t.Error("different tokens must hash differently")
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}

func TestValidate(t *testing.T) {
	if Validate("short") {
		t.Error("passwords under 8 characters should be rejected")
	}
	if !Validate("12345678") {
		t.Error("8-character passwords should be accepted")
	}
}
