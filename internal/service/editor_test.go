package service

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
)

func TestInsertFront_NewestFirst(t *testing.T) {
	a := domain.Comment{ID: primitive.NewObjectID(), Text: "A"}
	b := domain.Comment{ID: primitive.NewObjectID(), Text: "B"}

	list := insertFront(nil, a)
	list = insertFront(list, b)

	if len(list) != 2 || list[0].Text != "B" || list[1].Text != "A" {
		t.Fatalf("order = %v, want [B A]", []string{list[0].Text, list[1].Text})
	}
}

func TestRemoveByID_ExactEntryOrderPreserved(t *testing.T) {
	a := domain.Comment{ID: primitive.NewObjectID(), Text: "A"}
	b := domain.Comment{ID: primitive.NewObjectID(), Text: "B"}
	c := domain.Comment{ID: primitive.NewObjectID(), Text: "C"}
	list := []domain.Comment{c, b, a}

	out, removed := removeByID(list, b.ID)
	if !removed {
		t.Fatal("expected removal")
	}
	if len(out) != 2 || out[0].Text != "C" || out[1].Text != "A" {
		t.Fatalf("order after removal = %v, want [C A]", out)
	}
	// input slice untouched
	if len(list) != 3 {
		t.Fatalf("input mutated: %v", list)
	}
}

func TestRemoveByID_Absent(t *testing.T) {
	list := []domain.Comment{{ID: primitive.NewObjectID()}}
	out, removed := removeByID(list, primitive.NewObjectID())
	if removed {
		t.Fatal("removed an entry that does not exist")
	}
	if len(out) != 1 {
		t.Fatalf("list changed: %v", out)
	}
}

func TestRemoveMatch_FirstMatchOnly(t *testing.T) {
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()
	list := []domain.Like{{UserID: u2}, {UserID: u1}}

	out, removed := removeMatch(list, func(l domain.Like) bool { return l.UserID == u1 })
	if !removed || len(out) != 1 || out[0].UserID != u2 {
		t.Fatalf("out = %v removed=%v", out, removed)
	}
}

func TestContainsMatch(t *testing.T) {
	u1 := primitive.NewObjectID()
	list := []domain.Like{{UserID: u1}}
	if !containsMatch(list, func(l domain.Like) bool { return l.UserID == u1 }) {
		t.Fatal("expected match")
	}
	if containsMatch(list, func(l domain.Like) bool { return l.UserID == primitive.NewObjectID() }) {
		t.Fatal("unexpected match")
	}
}
