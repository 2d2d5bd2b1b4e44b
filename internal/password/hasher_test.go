package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "123456" || !strings.HasPrefix(digest, "$2") {
		t.Fatalf("digest does not look like bcrypt: %q", digest)
	}
	if !h.Verify("123456", digest) {
		t.Error("Verify(correct) = false")
	}
	if h.Verify("654321", digest) {
		t.Error("Verify(wrong) = true")
	}
}

func TestBcrypt_Salted(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestBcrypt_CostIsUsed(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost + 1)

	digest, _ := h.Hash("x")
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != bcrypt.MinCost+1 {
		t.Errorf("cost = %d, want %d", cost, bcrypt.MinCost+1)
	}
}

func TestNewBcrypt_InvalidCostFallsBack(t *testing.T) {
	digest, err := NewBcrypt(0).Hash("x")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if got, _ := bcrypt.Cost([]byte(digest)); got != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", got, bcrypt.DefaultCost)
	}
}

func TestBcrypt_TooLongIsValidation(t *testing.T) {
	_, err := NewBcrypt(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	if !httperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestBcrypt_VerifyGarbageDigest(t *testing.T) {
	if NewBcrypt(bcrypt.MinCost).Verify("x", "not-a-hash") {
		t.Error("Verify with malformed digest should be false")
	}
}
