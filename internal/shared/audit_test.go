package shared

import (
	"context"
	"testing"
)

func TestAuditRecordRequiresInitialisedLogger(t *testing.T) {
	var l *AuditLogger
	if err := l.Record(context.Background(), AuditLog{Action: "x", Entity: "y", EntityID: "z"}); err == nil {
		t.Fatal("nil logger must refuse to record")
	}
	if err := NewAuditLogger(nil).Record(context.Background(), AuditLog{Action: "x", Entity: "y", EntityID: "z"}); err == nil {
		t.Fatal("logger without a pool must refuse to record")
	}
}

func TestAuditRecordValidatesFields(t *testing.T) {
	l := NewAuditLogger(nil)
	cases := []AuditLog{
		{Entity: "workflow", EntityID: "1"},
		{Action: "workflow.create", EntityID: "1"},
		{Action: "workflow.create", Entity: "workflow"},
	}
	for _, log := range cases {
		if err := l.Record(context.Background(), log); err == nil {
			t.Fatalf("incomplete log %+v must be rejected", log)
		}
	}
}
