package order

import (
	"testing"

	"github.com/micron/skirmish/internal/geom"
)

func TestPurgeKeepsRelativeOrder(t *testing.T) {
	a := New(Move, geom.V(1, 0), NoTarget)
	b := New(Move, geom.V(2, 0), NoTarget)
	c := New(Move, geom.V(3, 0), NoTarget)
	d := New(Move, geom.V(4, 0), NoTarget)
	a.MarkCompleted()
	c.MarkCompleted()

	q := Purge([]*Order{a, b, c, d})
	if len(q) != 2 || q[0] != b || q[1] != d {
		t.Fatalf("Expected [b d], got %v", q)
	}
	for _, o := range q {
		if o.Completed {
			t.Errorf("completed order %v left in queue", o.MoveTarget)
		}
	}
}

func TestPurgeEmpty(t *testing.T) {
	if q := Purge(nil); len(q) != 0 {
		t.Errorf("Expected empty queue, got %d orders", len(q))
	}
	if Front(nil) != nil {
		t.Error("Expected nil front for empty queue")
	}
}

func TestPrepend(t *testing.T) {
	a := New(Move, geom.V(1, 0), NoTarget)
	b := New(Move, geom.V(2, 0), NoTarget)
	atk := New(Attack, geom.V(9, 9), EntTarget{ID: 7, Rect: &geom.Rect{}})

	q := Prepend([]*Order{a, b}, atk)
	if len(q) != 3 || q[0] != atk || q[1] != a || q[2] != b {
		t.Fatalf("Expected [atk a b], got %v", q)
	}
	if Front(q) != atk {
		t.Error("Expected prepended order at front")
	}
	q = Prepend(nil, a)
	if len(q) != 1 || q[0] != a {
		t.Errorf("Expected [a], got %v", q)
	}
}

func TestEntTarget(t *testing.T) {
	tests := []struct {
		name     string
		target   EntTarget
		wantNone bool
		wantGone bool
	}{
		{"positional", NoTarget, true, true},
		{"live target", EntTarget{ID: 3, Rect: &geom.Rect{}}, false, false},
		{"dead target", EntTarget{ID: 3}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.None(); got != tt.wantNone {
				t.Errorf("None() = %v, want %v", got, tt.wantNone)
			}
			if got := tt.target.Gone(); got != tt.wantGone {
				t.Errorf("Gone() = %v, want %v", got, tt.wantGone)
			}
		})
	}
}

func TestKindClassification(t *testing.T) {
	for _, k := range []Kind{Attack, LazyAttack, Mine, Collect} {
		if !k.IsInteraction() {
			t.Errorf("Expected %s to be an interaction order", k)
		}
	}
	for _, k := range []Kind{Move, ActionMove, Follow, HoldPosition} {
		if k.IsInteraction() {
			t.Errorf("Expected %s not to be an interaction order", k)
		}
	}
	if !Move.IsMove() || !ActionMove.IsMove() || Follow.IsMove() {
		t.Error("unexpected IsMove classification")
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("Expected Unknown, got %s", Kind(99))
	}
}
