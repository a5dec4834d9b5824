package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("pw123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw123456" {
		t.Fatal("hash equals plaintext")
	}
	if err := Compare(hash, "pw123456"); err != nil {
		t.Errorf("compare with original plaintext failed: %v", err)
	}
	if err := Compare(hash, "pw1234567"); err == nil {
		t.Error("compare with wrong plaintext succeeded")
	}
}

func TestHashNotDeterministic(t *testing.T) {
	h1, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same input are identical, salt missing")
	}
}

func TestCompareMalformedHash(t *testing.T) {
	if err := Compare("not-a-bcrypt-hash", "whatever"); err == nil {
		t.Error("compare accepted a malformed hash")
	}
}
