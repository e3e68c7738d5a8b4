package reconcile

import "testing"

func TestTriangulateDerivesRevenue(t *testing.T) {
	revenue, cost, gross := Triangulate(0, -40, 60)
	if revenue != 100 {
		t.Fatalf("expected revenue 100 got %.2f", revenue)
	}
	if cost != -40 || gross != 60 {
		t.Fatalf("cost/gross must be untouched, got %.2f %.2f", cost, gross)
	}
}

func TestTriangulateDerivesCost(t *testing.T) {
	_, cost, _ := Triangulate(100, 0, 60)
	if cost != -40 {
		t.Fatalf("expected cost -40 got %.2f", cost)
	}
}

func TestTriangulateDerivesGross(t *testing.T) {
	_, _, gross := Triangulate(100, -40, 0)
	if gross != 60 {
		t.Fatalf("expected gross 60 got %.2f", gross)
	}
	// Positive cost figures carry the same magnitude.
	_, _, gross = Triangulate(100, 40, 0)
	if gross != 60 {
		t.Fatalf("expected gross 60 for positive cost got %.2f", gross)
	}
}

func TestTriangulateConsistentTripleUnchanged(t *testing.T) {
	revenue, cost, gross := Triangulate(100, -40, 60)
	if revenue != 100 || cost != -40 || gross != 60 {
		t.Fatalf("consistent triple must pass through, got %.2f %.2f %.2f", revenue, cost, gross)
	}
}

func TestTriangulateTolerance(t *testing.T) {
	// Within 2% of the reference: accepted as-is.
	revenue, _, _ := Triangulate(101.5, -40, 60)
	if revenue != 101.5 {
		t.Fatalf("expected in-tolerance revenue kept, got %.2f", revenue)
	}
	// Small figures fall back to the one-unit floor.
	revenue, _, _ = Triangulate(10.8, -4, 6)
	if revenue != 10.8 {
		t.Fatalf("expected one-unit floor to accept 10.8, got %.2f", revenue)
	}
	// Outside tolerance: recomputed from the other two.
	revenue, _, _ = Triangulate(110, -40, 60)
	if revenue != 100 {
		t.Fatalf("expected out-of-tolerance revenue replaced with 100, got %.2f", revenue)
	}
}
