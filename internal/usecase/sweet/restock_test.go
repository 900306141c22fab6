package sweet

import (
	"context"
	"testing"

	"github.com/sweetworks/sweetshop-api/internal/audit"
	"github.com/sweetworks/sweetshop-api/internal/httperr"
)

func TestRestock_Success(t *testing.T) {
	repo := newStubRepo()
	seeded := seedSweet(repo, "2.50", 4)
	auditor := &stubAuditor{}
	uc := NewRestockSweet(repo, auditor)

	shopID := uint(1)
	result, err := uc.Execute(context.Background(), RestockInput{
		SweetID:  seeded.ID,
		Quantity: 10,
		ShopID:   &shopID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.PreviousQuantity != 4 {
		t.Errorf("previousQuantity = %d, want 4", result.PreviousQuantity)
	}
	if result.NewQuantity != 14 {
		t.Errorf("newQuantity = %d, want 14", result.NewQuantity)
	}
	if result.RestockedAmount != 10 {
		t.Errorf("restockedAmount = %d, want 10", result.RestockedAmount)
	}

	stored, _ := repo.GetByID(context.Background(), seeded.ID)
	if stored.Quantity != 14 {
		t.Errorf("stored quantity = %d, want 14", stored.Quantity)
	}
	if auditor.count(audit.ActionSweetRestocked) != 1 {
		t.Error("expected one restock audit event")
	}
}

func TestRestock_RejectsNonPositiveQuantity(t *testing.T) {
	repo := newStubRepo()
	seeded := seedSweet(repo, "2.50", 4)
	uc := NewRestockSweet(repo, &stubAuditor{})

	for _, qty := range []int{0, -1} {
		_, err := uc.Execute(context.Background(), RestockInput{SweetID: seeded.ID, Quantity: qty})
		if !httperr.IsBusiness(err, httperr.CodeInvalidQuantity) {
			t.Errorf("quantity %d: expected %s, got %v", qty, httperr.CodeInvalidQuantity, err)
		}
	}

	stored, _ := repo.GetByID(context.Background(), seeded.ID)
	if stored.Quantity != 4 {
		t.Errorf("rejected restock must not touch stock, got %d", stored.Quantity)
	}
}

func TestRestock_NotFound(t *testing.T) {
	uc := NewRestockSweet(newStubRepo(), &stubAuditor{})

	_, err := uc.Execute(context.Background(), RestockInput{SweetID: 99, Quantity: 5})
	if !httperr.IsBusiness(err, httperr.CodeSweetNotFound) {
		t.Fatalf("expected %s, got %v", httperr.CodeSweetNotFound, err)
	}
}

func TestRestock_NoUpperBound(t *testing.T) {
	repo := newStubRepo()
	seeded := seedSweet(repo, "2.50", 1_000_000)
	uc := NewRestockSweet(repo, &stubAuditor{})

	result, err := uc.Execute(context.Background(), RestockInput{SweetID: seeded.ID, Quantity: 1_000_000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NewQuantity != 2_000_000 {
		t.Errorf("newQuantity = %d, want 2000000", result.NewQuantity)
	}
}
