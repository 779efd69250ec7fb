package sheets

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Table is one tab of the spreadsheet. Row 1 holds the header.
type Table struct {
	c     *Client
	sheet string
}

func (t *Table) Name() string { return t.sheet }

// Exists reports whether the tab exists and has at least its header row.
func (t *Table) Exists() (bool, error) {
	values, err := t.c.readAll(t.sheet)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(values) > 0, nil
}

// Create adds the tab when missing and writes the header into row 1.
func (t *Table) Create(header []string) error {
	_, err := t.c.readAll(t.sheet)
	if errors.Is(err, fs.ErrNotExist) {
		if err := t.c.addSheet(t.sheet); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return t.c.updateRange(t.sheet, "A1", [][]string{header})
}

func (t *Table) ReadAll() ([][]string, error) {
	values, err := t.c.readAll(t.sheet)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		blank := true
		for i := range row {
			cells[i] = get(row, i)
			if cells[i] != "" {
				blank = false
			}
		}
		if blank {
			// rows blanked by Rewrite read back as empty
			cells = nil
		}
		out = append(out, cells)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (t *Table) Append(row []string) error {
	return t.c.appendRow(t.sheet, toCells(row))
}

// Rewrite replaces the tab in a single values update. Rows that the new
// contents no longer reach are written as blanks in the same request, so a
// failed call leaves the tab as it was.
func (t *Table) Rewrite(rows [][]string) error {
	current, err := t.c.readAll(t.sheet)
	if err != nil {
		return err
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	for _, r := range current {
		width = max(width, len(r))
	}
	if width == 0 {
		return nil
	}

	padded := make([][]string, max(len(rows), len(current)))
	for i := range padded {
		p := make([]string, width)
		if i < len(rows) {
			copy(p, rows[i])
		}
		padded[i] = p
	}
	return t.c.updateRange(t.sheet, "A1", padded)
}

func (c *Client) readAll(sheet string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, sheet+"!A:Z").Do()
	if err != nil {
		if isMissingSheet(err) {
			return nil, fmt.Errorf("sheet %s: %w", sheet, fs.ErrNotExist)
		}
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(sheet string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, sheet+"!A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Do()
	return err
}

func (c *Client) updateRange(sheet, a1 string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		values[i] = toCells(r)
	}
	vr := &sheetsv4.ValueRange{Values: values}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!"+a1, vr).
		ValueInputOption("RAW").
		Do()
	return err
}

func (c *Client) addSheet(title string) error {
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{Title: title},
			},
		}},
	}
	_, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Do()
	return err
}

// The API answers 400 "Unable to parse range" for a tab that does not exist.
func isMissingSheet(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range")
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
