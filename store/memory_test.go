package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/hybridrec/core"
)

func TestMemoryStoreSeedAndFetch(t *testing.T) {
	s := NewMemoryStore()
	s.Seed(
		[]core.Product{
			{ProductID: "p1", Name: "Headphones"},
			{ID: "oid-2", ProductID: "p2", Name: "Speaker"},
		},
		[]core.Interaction{
			{UserID: "u1", ProductID: "p1", Value: 5},
		},
	)

	products, err := s.FetchAllProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchAllProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	// ID 缺省时回落到 ProductID
	if products[0].ID != "p1" {
		t.Errorf("products[0].ID = %q, want fallback p1", products[0].ID)
	}
	if products[1].ID != "oid-2" {
		t.Errorf("products[1].ID = %q, want oid-2", products[1].ID)
	}

	interactions, err := s.FetchAllInteractions(context.Background())
	if err != nil {
		t.Fatalf("FetchAllInteractions: %v", err)
	}
	if len(interactions) != 1 || interactions[0].UserID != "u1" {
		t.Errorf("interactions = %v, want single u1 row", interactions)
	}

	// 返回的是副本，调用方改动不影响存储
	products[0].Name = "mutated"
	again, _ := s.FetchAllProducts(context.Background())
	if again[0].Name != "Headphones" {
		t.Error("FetchAllProducts must return a copy")
	}
}

func TestMemoryStoreLoadJSONL(t *testing.T) {
	dir := t.TempDir()

	productsPath := filepath.Join(dir, "products.jsonl")
	productLines := `{"id":"oid-1","product_id":"p1","name":"Headphones","category":"audio","price":199.0,"description":"wireless headphones","features":["bluetooth","noise-cancelling"],"rating":4.7,"reviews_count":120}

{"product_id":"p2","name":"Speaker","description":"portable speaker","rating":4.1,"reviews_count":30}
`
	if err := os.WriteFile(productsPath, []byte(productLines), 0o600); err != nil {
		t.Fatal(err)
	}

	interactionsPath := filepath.Join(dir, "interactions.jsonl")
	interactionLines := `{"user_id":"u1","product_id":"oid-1","action_type":"rating","value":5}
{"user_id":"u2","product_id":"p2","value":3.5}
`
	if err := os.WriteFile(interactionsPath, []byte(interactionLines), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewMemoryStore()
	n, err := s.LoadProductsJSONL(productsPath)
	if err != nil {
		t.Fatalf("LoadProductsJSONL: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d products, want 2 (blank lines skipped)", n)
	}

	n, err = s.LoadInteractionsJSONL(interactionsPath)
	if err != nil {
		t.Fatalf("LoadInteractionsJSONL: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d interactions, want 2", n)
	}

	products, _ := s.FetchAllProducts(context.Background())
	if products[0].ID != "oid-1" || len(products[0].Features) != 2 {
		t.Errorf("products[0] = %+v, want oid-1 with 2 features", products[0])
	}
	if products[1].ID != "p2" {
		t.Errorf("products[1].ID = %q, want ProductID fallback", products[1].ID)
	}

	interactions, _ := s.FetchAllInteractions(context.Background())
	if interactions[0].Action != core.ActionRating {
		t.Errorf("interactions[0].Action = %q, want rating", interactions[0].Action)
	}
}

func TestMemoryStoreLoadJSONLErrors(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.LoadProductsJSONL(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}

	badPath := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(badPath, []byte("{not json}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadProductsJSONL(badPath); err == nil {
		t.Error("expected error for malformed line")
	}
}
