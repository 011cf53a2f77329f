package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/card-collection-api/internal/model"
)

// fixedClock always returns the same instant.
func fixedClock() func() time.Time {
	t := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func TestSeededRepository(t *testing.T) {
	repo := NewCardRepository(WithSeedCards(SeedCards()), WithClock(fixedClock()))

	if repo.Count() != 4 {
		t.Fatalf("expected 4 seed cards, got %d", repo.Count())
	}

	all := repo.GetAll()
	if all[0].ID != 171836785992 || all[3].ID != 171836785995 {
		t.Fatalf("expected seed cards in insertion order, got %d..%d", all[0].ID, all[3].ID)
	}
	if all[0].CreatedAt.IsZero() || !all[0].CreatedAt.Equal(all[0].UpdatedAt) {
		t.Fatalf("expected seed cards to be stamped, got %+v", all[0])
	}

	card := repo.Insert(model.CardFields{Suit: "hearts", Value: "10", Collection: "classic"})
	if card.ID != 171836785996 {
		t.Fatalf("expected next id 171836785996, got %d", card.ID)
	}
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	repo := NewCardRepository()

	first := repo.Insert(model.CardFields{Suit: "hearts", Value: "2", Collection: "classic"})
	second := repo.Insert(model.CardFields{Suit: "clubs", Value: "3", Collection: "classic"})

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Fatal("expected createdAt and updatedAt to match on insert")
	}

	got, ok := repo.GetByID(second.ID)
	if !ok || got != second {
		t.Fatalf("expected to fetch the inserted card, got %+v (ok=%v)", got, ok)
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	repo := NewCardRepository()

	card := repo.Insert(model.CardFields{Suit: "hearts", Value: "2", Collection: "classic"})
	if !repo.Delete(card.ID) {
		t.Fatal("expected delete to succeed")
	}

	next := repo.Insert(model.CardFields{Suit: "hearts", Value: "2", Collection: "classic"})
	if next.ID <= card.ID {
		t.Fatalf("expected a fresh id above %d, got %d", card.ID, next.ID)
	}
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	repo := NewCardRepository(WithClock(fixedClock()))
	card := repo.Insert(model.CardFields{Suit: "hearts", Value: "2", Collection: "classic"})

	updated, ok := repo.Update(card.ID, model.CardPatch{Value: strPtr("ace")})
	if !ok {
		t.Fatal("expected update to find the card")
	}

	if updated.Value != "ace" {
		t.Errorf("expected value ace, got %q", updated.Value)
	}
	if updated.Suit != "hearts" || updated.Collection != "classic" {
		t.Errorf("expected other fields untouched, got %+v", updated)
	}
	if updated.ID != card.ID || !updated.CreatedAt.Equal(card.CreatedAt) {
		t.Errorf("expected id and createdAt preserved, got %+v", updated)
	}
	// The clock is frozen, the store still has to move updatedAt forward.
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("expected updatedAt %v after createdAt %v", updated.UpdatedAt, updated.CreatedAt)
	}

	again, _ := repo.Update(card.ID, model.CardPatch{})
	if !again.UpdatedAt.After(updated.UpdatedAt) {
		t.Error("expected every update to advance updatedAt")
	}

	stored, _ := repo.GetByID(card.ID)
	if stored != again {
		t.Errorf("expected stored card to match last update, got %+v", stored)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	repo := NewCardRepository()

	if _, ok := repo.Update(42, model.CardPatch{Suit: strPtr("hearts")}); ok {
		t.Error("expected update of a missing card to report false")
	}
	if repo.Delete(42) {
		t.Error("expected delete of a missing card to report false")
	}
	if _, ok := repo.GetByID(42); ok {
		t.Error("expected lookup of a missing card to report false")
	}
}

func TestDeleteRemovesAndKeepsOrder(t *testing.T) {
	repo := NewCardRepository(WithSeedCards(SeedCards()))

	if !repo.Delete(171836785993) {
		t.Fatal("expected delete to succeed")
	}
	if repo.Delete(171836785993) {
		t.Fatal("expected second delete to report false")
	}

	all := repo.GetAll()
	want := []int64{171836785992, 171836785994, 171836785995}
	if len(all) != len(want) {
		t.Fatalf("expected %d cards, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, all[i].ID)
		}
	}
}

func TestGetAllReturnsCopy(t *testing.T) {
	repo := NewCardRepository(WithSeedCards(SeedCards()))

	snapshot := repo.GetAll()
	snapshot[0].Suit = "mutated"

	card, _ := repo.GetByID(snapshot[0].ID)
	if card.Suit == "mutated" {
		t.Fatal("expected store to be isolated from snapshot mutation")
	}
}

func TestConcurrentInsertsKeepIDsUnique(t *testing.T) {
	repo := NewCardRepository()

	const workers = 50
	ids := make(chan int64, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- repo.Insert(model.CardFields{Suit: "hearts", Value: "2", Collection: "classic"}).ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if repo.Count() != workers {
		t.Fatalf("expected %d cards, got %d", workers, repo.Count())
	}
}
