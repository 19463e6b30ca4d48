package checkout

import (
	"strings"
	"testing"

	"github.com/indian-sparrow/storefront/internal/domain/cart"
)

func validAddress() Address {
	return Address{
		FullName:     "Asha Kulkarni",
		Phone:        "9800000000",
		AddressLine1: "14 MG Road",
		City:         "Pune",
		PinCode:      "411001",
	}
}

func TestAddressValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		a := validAddress()
		if err := a.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		t.Parallel()
		a := validAddress()
		a.AddressLine2 = ""
		a.State = ""
		a.Country = ""
		if err := a.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		t.Parallel()
		a := Address{}
		err := a.Validate()
		if err == nil {
			t.Fatal("Validate() = nil for empty address")
		}
		for _, want := range []string{"full name", "phone", "address line 1", "city", "PIN code"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %q", err, want)
			}
		}
	})
}

func TestAddressNormalize(t *testing.T) {
	t.Parallel()

	a := validAddress()
	a.Normalize()
	if a.Country != DefaultCountry {
		t.Errorf("Country = %q, want %q", a.Country, DefaultCountry)
	}

	a.Country = "Nepal"
	a.Normalize()
	if a.Country != "Nepal" {
		t.Errorf("Country = %q, explicit value must be kept", a.Country)
	}
}

func TestLineItemsFromCart(t *testing.T) {
	t.Parallel()

	lines := []cart.Line{
		{ProductID: "p1", Size: "M", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}

	items := LineItemsFromCart(lines)

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].CatalogItemID != "p1" || items[0].Quantity != 2 {
		t.Errorf("items[0] = %+v, want p1 x2", items[0])
	}
	if items[1].CatalogItemID != "p2" || items[1].Quantity != 1 {
		t.Errorf("items[1] = %+v, want p2 x1", items[1])
	}
}
