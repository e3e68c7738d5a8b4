package statement

import "testing"

func TestTemplateReturnsCopy(t *testing.T) {
	first := Template(KindProfitLoss)
	first[1].Label = "mutated"
	second := Template(KindProfitLoss)
	if second[1].Label == "mutated" {
		t.Fatalf("template must not share backing storage with callers")
	}
}

func TestTemplateOrdering(t *testing.T) {
	items := Template(KindProfitLoss)
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}
	if index[IDGrossProfit] < index[IDCostOfRevenue] {
		t.Fatalf("gross profit must follow cost of revenue")
	}
	if index[IDTotalComprehensiveIncome] != len(items)-1 {
		t.Fatalf("total comprehensive income must close the statement")
	}
}

func TestInsertAfter(t *testing.T) {
	items := Template(KindProfitLoss)
	items = InsertAfter(items, IDOtherIncome, LineItem{ID: "grant_income", Label: "Grant Income"})

	var pos, anchor int
	for i, item := range items {
		switch item.ID {
		case "grant_income":
			pos = i
			if item.Type != TypeItem || !item.Editable {
				t.Fatalf("inserted line must be an editable item, got %+v", item)
			}
		case IDOtherIncome:
			anchor = i
		}
	}
	if pos != anchor+1 {
		t.Fatalf("expected insertion directly after anchor, got %d and %d", pos, anchor)
	}
}

func TestInsertAfterUnknownAnchorAppends(t *testing.T) {
	items := Template(KindBalanceSheet)
	items = InsertAfter(items, "no_such_anchor", LineItem{ID: "custom", Label: "Custom"})
	if items[len(items)-1].ID != "custom" {
		t.Fatalf("unknown anchor must append at the end")
	}
}
