package sweet

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sweetworks/sweetshop-api/internal/httperr"
)

func validAddInput() AddSweetInput {
	return AddSweetInput{
		ShopID:   1,
		Name:     "Gulab Jamun",
		Category: "indian",
		Price:    decimal.RequireFromString("3.25"),
		Quantity: 20,
		Image:    strings.NewReader("fake image bytes"),
	}
}

func TestAddSweet_Success(t *testing.T) {
	repo := newStubRepo()
	images := &stubImageStore{}
	uc := NewAddSweet(repo, images, &stubAuditor{}, discardLog)

	created, err := uc.Execute(context.Background(), validAddInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == 0 {
		t.Error("created sweet must have an id")
	}
	if created.Image != "https://img.test/sweets/1.webp" {
		t.Errorf("image = %q, want relay URL", created.Image)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("sweet not stored: %v", err)
	}
	if stored.Name != "Gulab Jamun" || stored.Category != "indian" || stored.Quantity != 20 {
		t.Errorf("stored sweet mismatch: %+v", stored)
	}
	if !stored.Price.Equal(decimal.RequireFromString("3.25")) {
		t.Errorf("stored price = %s, want 3.25", stored.Price)
	}
}

func TestAddSweet_UploadFailureAbortsWithoutPersisting(t *testing.T) {
	repo := newStubRepo()
	images := &stubImageStore{uploadErr: errors.New("relay down")}
	uc := NewAddSweet(repo, images, &stubAuditor{}, discardLog)

	_, err := uc.Execute(context.Background(), validAddInput())
	if !httperr.IsBusiness(err, httperr.CodeUploadFailed) {
		t.Fatalf("expected %s, got %v", httperr.CodeUploadFailed, err)
	}

	if len(repo.sweets) != 0 {
		t.Errorf("no sweet may be persisted after a failed upload, found %d", len(repo.sweets))
	}
}

func TestAddSweet_Validation(t *testing.T) {
	repo := newStubRepo()
	uc := NewAddSweet(repo, &stubImageStore{}, &stubAuditor{}, discardLog)

	cases := []struct {
		name   string
		mutate func(*AddSweetInput)
		want   string
	}{
		{"empty name", func(in *AddSweetInput) { in.Name = "   " }, httperr.CodeInvalidSweet},
		{"empty category", func(in *AddSweetInput) { in.Category = "" }, httperr.CodeInvalidSweet},
		{"negative price", func(in *AddSweetInput) { in.Price = decimal.RequireFromString("-1") }, httperr.CodeInvalidPrice},
		{"negative quantity", func(in *AddSweetInput) { in.Quantity = -5 }, httperr.CodeInvalidQuantity},
		{"missing image", func(in *AddSweetInput) { in.Image = nil }, httperr.CodeImageRequired},
	}

	for _, tc := range cases {
		in := validAddInput()
		tc.mutate(&in)

		_, err := uc.Execute(context.Background(), in)
		if !httperr.IsBusiness(err, tc.want) {
			t.Errorf("%s: expected %s, got %v", tc.name, tc.want, err)
		}
	}

	if len(repo.sweets) != 0 {
		t.Errorf("invalid input must never persist, found %d sweets", len(repo.sweets))
	}
}

func TestAddSweet_ZeroPriceAndQuantityAllowed(t *testing.T) {
	uc := NewAddSweet(newStubRepo(), &stubImageStore{}, &stubAuditor{}, discardLog)

	in := validAddInput()
	in.Price = decimal.Zero
	in.Quantity = 0

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("zero price/quantity must be accepted, got %v", err)
	}
}
