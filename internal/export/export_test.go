package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func sampleLedger() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Description: "salary", Amount: decimal.NewFromInt(1000), Date: core.NewDate(2024, 1, 5), Category: "Salary"},
		{ID: 2, Description: "weekly, \"big\" shop", Amount: decimal.RequireFromString("-50.25"), Date: core.NewDate(2024, 1, 10), Category: "Groceries", Note: "paid by card"},
	}
}

func assertLedgersEqual(t *testing.T, got, want []core.Transaction) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID || g.Description != w.Description || g.Category != w.Category || g.Note != w.Note {
			t.Fatalf("record %d mismatch: %+v vs %+v", i, g, w)
		}
		if !g.Amount.Equal(w.Amount) || !g.Date.Equal(w.Date.Time) {
			t.Fatalf("record %d amount/date mismatch: %+v vs %+v", i, g, w)
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	want := sampleLedger()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "id,description,amount,date,category,note\n") {
		t.Fatalf("missing header: %q", buf.String())
	}
	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertLedgersEqual(t, got, want)
}

func TestJSONRoundTrip(t *testing.T) {
	want := sampleLedger()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	assertLedgersEqual(t, got, want)
}

func TestReadJSONRejectsInvalidRecords(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero amount", `[{"id":1,"description":"x","amount":"0","date":"2024-01-01","category":"Other"}]`},
		{"blank description", `[{"id":1,"description":" ","amount":"5","date":"2024-01-01","category":"Other"}]`},
		{"duplicate ids", `[{"id":1,"description":"a","amount":"5","date":"2024-01-01","category":"Other"},{"id":1,"description":"b","amount":"6","date":"2024-01-02","category":"Other"}]`},
		{"bad date", `[{"id":1,"description":"x","amount":"5","date":"01/01/2024","category":"Other"}]`},
		{"not json", `{broken`},
	}
	for _, tc := range cases {
		if _, err := ReadJSON(strings.NewReader(tc.body)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestWriteJSONEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}
