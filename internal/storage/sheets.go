package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/thedittmer/article-report/internal/presenter"
)

const (
	credentialsFile = "credentials.json"
	spreadsheetFile = "spreadsheet.json"
	sheetTitle      = "Articles"
	sheetTimeLayout = "2006-01-02 15:04:05"
)

var sheetHeader = []interface{}{
	"Section", "Location Offset", "Location", "Date", "Time", "URL", "Exported Date",
}

type ExportResult struct {
	SpreadsheetID string
	URL           string
	Error         error
}

// sheetValues lays out rendered rows under a header row.
func sheetValues(rows []*presenter.Row, exportedAt time.Time) [][]interface{} {
	exported := exportedAt.Format(sheetTimeLayout)

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, sheetHeader)
	for _, row := range rows {
		values = append(values, []interface{}{
			row.Section,
			row.LocationOffset,
			row.PrimaryLocation,
			row.Date,
			row.Time,
			row.URL,
			exported,
		})
	}
	return values
}

// serviceAccountEmail reads client_email from the credentials file.
func serviceAccountEmail(credentials []byte) string {
	var creds struct {
		ClientEmail string `json:"client_email"`
	}
	if err := json.Unmarshal(credentials, &creds); err != nil || creds.ClientEmail == "" {
		return "unknown"
	}
	return creds.ClientEmail
}

func (s *Storage) createSpreadsheet(ctx context.Context, sheetsService *sheets.Service, driveService *drive.Service, folderID, account string) (string, error) {
	if folderID != "" {
		if _, err := driveService.Files.Get(folderID).Fields("id").SupportsAllDrives(true).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("service account %s cannot access folder %s (share it with that account as Content Manager): %w", account, folderID, err)
		}
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: fmt.Sprintf("Article Report - %s", time.Now().Format("2006-01-02-15-04-05")),
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: sheetTitle}},
		},
	}

	spreadsheet, err := sheetsService.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	if folderID != "" {
		_, err = driveService.Files.Update(spreadsheet.SpreadsheetId, nil).
			AddParents(folderID).
			Fields("id, parents").
			SupportsAllDrives(true).
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("unable to move spreadsheet to folder: %w", err)
		}
	}

	s.log.Info("spreadsheet created", zap.String("id", spreadsheet.SpreadsheetId), zap.String("folder", folderID))
	return spreadsheet.SpreadsheetId, nil
}

// ExportToSheets writes rows to the spreadsheet spreadsheetID, creating a new
// spreadsheet (inside folderID when set) when the id is empty. Credentials
// are read from credentials.json in the data directory.
func (s *Storage) ExportToSheets(ctx context.Context, rows []*presenter.Row, spreadsheetID, folderID string) ExportResult {
	credentials, err := os.ReadFile(filepath.Join(s.dataDir, credentialsFile))
	if err != nil {
		return ExportResult{Error: fmt.Errorf("unable to read credentials file: %w", err)}
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials,
		sheets.SpreadsheetsScope,
		drive.DriveFileScope,
	)
	if err != nil {
		return ExportResult{Error: fmt.Errorf("unable to parse credentials: %w", err)}
	}

	client := jwtConfig.Client(ctx)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return ExportResult{Error: fmt.Errorf("unable to create sheets client: %w", err)}
	}
	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return ExportResult{Error: fmt.Errorf("unable to create drive client: %w", err)}
	}

	if spreadsheetID == "" {
		spreadsheetID, err = s.createSpreadsheet(ctx, sheetsService, driveService, folderID, serviceAccountEmail(credentials))
		if err != nil {
			return ExportResult{Error: err}
		}
		if err := s.SaveSpreadsheetID(spreadsheetID); err != nil {
			return ExportResult{Error: fmt.Errorf("failed to save spreadsheet ID: %w", err)}
		}
	}

	spreadsheet, err := sheetsService.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return ExportResult{Error: fmt.Errorf("unable to get spreadsheet: %w", err)}
	}
	if len(spreadsheet.Sheets) == 0 {
		return ExportResult{Error: errors.New("spreadsheet has no sheets")}
	}
	sheet := spreadsheet.Sheets[0].Properties

	values := sheetValues(rows, time.Now())
	writeRange := fmt.Sprintf("'%s'!A1:G%d", sheet.Title, len(values))

	_, err = sheetsService.Spreadsheets.Values.Clear(spreadsheetID, fmt.Sprintf("'%s'", sheet.Title), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return ExportResult{Error: fmt.Errorf("unable to clear spreadsheet: %w", err)}
	}

	_, err = sheetsService.Spreadsheets.Values.Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return ExportResult{Error: fmt.Errorf("unable to update spreadsheet: %w", err)}
	}

	freeze := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:        sheet.SheetId,
						GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		},
	}
	if _, err := sheetsService.Spreadsheets.BatchUpdate(spreadsheetID, freeze).Context(ctx).Do(); err != nil {
		return ExportResult{Error: fmt.Errorf("unable to freeze first row: %w", err)}
	}

	s.log.Info("rows exported", zap.String("spreadsheet", spreadsheetID), zap.Int("rows", len(rows)))
	return ExportResult{
		SpreadsheetID: spreadsheetID,
		URL:           fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheetID),
	}
}

func (s *Storage) SaveSpreadsheetID(id string) error {
	data, err := json.MarshalIndent(map[string]string{"id": id}, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling spreadsheet ID: %w", err)
	}
	if err := writeAtomic(filepath.Join(s.dataDir, spreadsheetFile), data); err != nil {
		return fmt.Errorf("error saving spreadsheet ID: %w", err)
	}
	return nil
}

// LoadSpreadsheetID returns the id of the last created spreadsheet, or ""
// when none has been created yet.
func (s *Storage) LoadSpreadsheetID() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, spreadsheetFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("error reading spreadsheet ID: %w", err)
	}

	var stored map[string]string
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("error parsing spreadsheet ID: %w", err)
	}
	return stored["id"], nil
}
