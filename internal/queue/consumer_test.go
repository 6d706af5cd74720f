package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func sampleEvent() ReservationEvent {
	return ReservationEvent{
		Type:          EventStatusChanged,
		ReservationID: 5,
		UserID:        3,
		Email:         "ana@x.com",
		Date:          "2025-03-01",
		Time:          "19:00",
		Status:        "accepted",
		OccurredAt:    time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC),
	}
}

func TestFormatAuditLine(t *testing.T) {
	got := FormatAuditLine(sampleEvent())
	want := `[2025-02-28T10:00:00Z] reservation.status_changed | reservation_id=5 | user_id=3 | email="ana@x.com" | date="2025-03-01" | time="19:00" | status=accepted` + "\n"
	if got != want {
		t.Errorf("FormatAuditLine =\n%s\nwant\n%s", got, want)
	}
}

func TestAuditConsumer_Handle_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reservations.log")
	c := &AuditConsumer{LogPath: path, Log: zap.NewNop()}

	body, err := json.Marshal(sampleEvent())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := c.handle(body); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("log has %d lines, want 2", n)
	}
}

func TestAuditConsumer_Handle_RejectsGarbage(t *testing.T) {
	c := &AuditConsumer{LogPath: filepath.Join(t.TempDir(), "audit.log"), Log: zap.NewNop()}
	if err := c.handle([]byte("{not json")); err == nil {
		t.Error("handle accepted invalid JSON")
	}
}
