package storage

import (
	"context"
	"testing"
	"time"

	"github.com/thedittmer/article-report/internal/presenter"
)

func TestSheetValues(t *testing.T) {
	rows := []*presenter.Row{
		{Section: "World news", PrimaryLocation: "Cairo, Egypt", Date: "2016-03-03", URL: "https://example.com/1"},
		{Section: "4.7", LocationOffset: "5km N of", PrimaryLocation: "Lima, Peru", Date: "2016-03-04", Time: "4:30 PM", URL: "https://example.com/2"},
	}
	exportedAt := time.Date(2016, 3, 5, 8, 0, 0, 0, time.UTC)

	values := sheetValues(rows, exportedAt)
	if len(values) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(values))
	}
	if values[0][0] != "Section" || len(values[0]) != len(values[1]) {
		t.Errorf("unexpected header %v", values[0])
	}
	want := []interface{}{"4.7", "5km N of", "Lima, Peru", "2016-03-04", "4:30 PM", "https://example.com/2", "2016-03-05 08:00:00"}
	for i, v := range want {
		if values[2][i] != v {
			t.Errorf("column %d = %v, want %v", i, values[2][i], v)
		}
	}
}

func TestServiceAccountEmail(t *testing.T) {
	if got := serviceAccountEmail([]byte(`{"client_email":"bot@project.iam.gserviceaccount.com"}`)); got != "bot@project.iam.gserviceaccount.com" {
		t.Errorf("serviceAccountEmail() = %q", got)
	}
	if got := serviceAccountEmail([]byte(`nope`)); got != "unknown" {
		t.Errorf("serviceAccountEmail(invalid) = %q, want unknown", got)
	}
}

func TestSpreadsheetIDRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.LoadSpreadsheetID()
	if err != nil || id != "" {
		t.Fatalf("LoadSpreadsheetID() before save = %q, %v", id, err)
	}
	if err := s.SaveSpreadsheetID("abc123"); err != nil {
		t.Fatalf("SaveSpreadsheetID: %v", err)
	}
	if id, err = s.LoadSpreadsheetID(); err != nil || id != "abc123" {
		t.Fatalf("LoadSpreadsheetID() = %q, %v", id, err)
	}
}

func TestExportToSheetsWithoutCredentials(t *testing.T) {
	s := newTestStorage(t)
	res := s.ExportToSheets(context.Background(), nil, "", "")
	if res.Error == nil {
		t.Fatal("expected error when credentials.json is missing")
	}
}
