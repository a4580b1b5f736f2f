package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/hfcharts"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// batchSize is the maximum number of worksheets read in a single batchGet call.
const batchSize = 50

// Google reads a spreadsheet with the Google Sheets API.
type Google struct {
	srv *sheetsv4.Service
	id  string
}

// NewGoogle returns a Source for the spreadsheet id, authenticated with the service account
// key file cfg.Credentials.
func NewGoogle(ctx context.Context, id string, cfg Config) (*Google, error) {
	data, err := os.ReadFile(cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read credentials %q: %w", hfcharts.ErrAuthentication, cfg.Credentials, err)
	}
	email, err := inspectCredentials(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials %q: %w", hfcharts.ErrAuthentication, cfg.Credentials, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheetsv4.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials %q: %w", hfcharts.ErrAuthentication, cfg.Credentials, err)
	}
	log.Printf("reading spreadsheet %s as %s", id, email)

	base := http.DefaultTransport
	if cfg.Cache {
		base = &diskCache{base: base}
	}
	client := &http.Client{Transport: &oauth2.Transport{Source: creds.TokenSource, Base: base}}

	srv, err := sheetsv4.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot create sheets client: %w", hfcharts.ErrNetwork, err)
	}
	return NewGoogleFromService(srv, id), nil
}

// NewGoogleFromService returns a Source for the spreadsheet id using an existing service.
func NewGoogleFromService(srv *sheetsv4.Service, id string) *Google {
	return &Google{srv: srv, id: id}
}

// Fetch reads all the worksheets of the spreadsheet, in tab order.
//
// Numbers are read unformatted, dates as displayed.
func (g *Google) Fetch(ctx context.Context) (*hfcharts.Workbook, error) {
	ss, err := g.srv.Spreadsheets.Get(g.id).Fields("spreadsheetId,sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, classify(err, "cannot open spreadsheet %q", g.id)
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}

	wb := &hfcharts.Workbook{ID: g.id}
	for start := 0; start < len(titles); start += batchSize {
		chunk := titles[start:min(start+batchSize, len(titles))]
		ranges := make([]string, len(chunk))
		for i, title := range chunk {
			ranges[i] = quoteSheetName(title)
		}

		resp, err := g.srv.Spreadsheets.Values.BatchGet(g.id).
			Ranges(ranges...).
			MajorDimension("ROWS").
			ValueRenderOption("UNFORMATTED_VALUE").
			DateTimeRenderOption("FORMATTED_STRING").
			Context(ctx).Do()
		if err != nil {
			return nil, classify(err, "cannot read worksheets of %q", g.id)
		}
		if len(resp.ValueRanges) != len(chunk) {
			return nil, fmt.Errorf("%w: spreadsheet %q: got %d worksheets, want %d", hfcharts.ErrNetwork, g.id, len(resp.ValueRanges), len(chunk))
		}
		for i, vr := range resp.ValueRanges {
			log.Printf("Processing worksheet: %s", chunk[i])
			wb.Sheets = append(wb.Sheets, hfcharts.Sheet{Title: chunk[i], Rows: toRows(vr.Values)})
		}
	}
	return wb, nil
}

// quoteSheetName returns the A1 notation range covering the whole sheet.
func quoteSheetName(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// toRows converts API values to string cells.
func toRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = formatCell(v)
		}
	}
	return rows
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// classify wraps an API error with the matching error kind.
func classify(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w: %s: %w", hfcharts.ErrAuthentication, msg, err)
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s: %w", hfcharts.ErrAuthentication, msg, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s: %w", hfcharts.ErrNotFound, msg, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", hfcharts.ErrNetwork, msg, err)
}
