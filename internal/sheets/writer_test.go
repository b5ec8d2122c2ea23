package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func snapshot() engine.State {
	return engine.State{
		User: model.User{ID: 1, FullName: "Asha Rao"},
		Transactions: []model.Transaction{
			{ID: 1, Title: "Salary", Amount: decimal.NewFromInt(5000), Category: "Salary", Type: model.TypeIncome, Date: "2024-01-01"},
			{ID: 2, Title: "Rent", Amount: decimal.NewFromInt(1500), Category: "Housing", Type: model.TypeExpense, Date: "2024-01-03"},
			{ID: 3, Title: "Coffee", Amount: decimal.RequireFromString("4.50"), Category: "Food", Type: model.TypeExpense, Date: "2024-01-02"},
		},
		Financials: model.Financials{
			Income:     decimal.NewFromInt(5000),
			Expense:    decimal.RequireFromString("1504.50"),
			Balance:    decimal.RequireFromString("3495.50"),
			MonthSpent: decimal.RequireFromString("1504.50"),
		},
		Chart: model.ChartData{
			Labels: []string{"Food", "Housing"},
			Values: []decimal.Decimal{decimal.NewFromInt(500), decimal.NewFromInt(1500)},
		},
		Loaded: true,
	}
}

func TestNewReport(t *testing.T) {
	now := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	r := NewReport(snapshot(), "Rs", now)

	assert.Equal(t, "Asha Rao", r.Owner)
	assert.Equal(t, "Rs", r.Currency)
	assert.Equal(t, now, r.GeneratedAt)

	require.Len(t, r.Categories, 2)
	assert.Equal(t, "Housing", r.Categories[0].Name)
	assert.InDelta(t, 75.0, r.Categories[0].Share, 0.001)
	assert.Equal(t, "Food", r.Categories[1].Name)
	assert.InDelta(t, 25.0, r.Categories[1].Share, 0.001)

	require.Len(t, r.Transactions, 3)
	assert.Equal(t, "Rent", r.Transactions[0].Title)
	assert.Equal(t, "Coffee", r.Transactions[1].Title)
	assert.Equal(t, "Salary", r.Transactions[2].Title)
}

func TestNewReport_DoesNotReorderSnapshot(t *testing.T) {
	snap := snapshot()
	NewReport(snap, "Rs", time.Now())
	assert.Equal(t, "Salary", snap.Transactions[0].Title)
}

func TestNewReport_EmptyChart(t *testing.T) {
	snap := snapshot()
	snap.Chart = model.ChartData{Labels: []string{"Food"}}

	r := NewReport(snap, "Rs", time.Now())
	assert.Empty(t, r.Categories)
}

func findRow(values [][]any, heading string) int {
	for i, row := range values {
		if len(row) > 0 && row[0] == heading {
			return i
		}
	}
	return -1
}

func TestWriter_prepareReportData(t *testing.T) {
	w := &Writer{config: DefaultConfig(), logger: testLogger()}
	values := w.prepareReportData(NewReport(snapshot(), "Rs", time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, "Tally Report", values[0][0])
	assert.Equal(t, "Asha Rao", values[0][1])
	assert.Equal(t, "Jan 31, 2024 09:00", values[0][2])

	summary := findRow(values, headingSummary)
	require.NotEqual(t, -1, summary)
	assert.Equal(t, []any{"Income", 5000.0}, values[summary+1])
	assert.Equal(t, []any{"Balance", 3495.5}, values[summary+3])
	assert.Equal(t, []any{"Standing", "You are in good standing"}, values[summary+5])

	categories := findRow(values, headingCategories)
	require.NotEqual(t, -1, categories)
	assert.Equal(t, []any{"Housing", 1500.0, 75.0}, values[categories+2])

	details := findRow(values, headingTransactions)
	require.NotEqual(t, -1, details)
	assert.Equal(t, []any{"2024-01-03", "Rent", "Housing", "expense", -1500.0}, values[details+2])
	assert.Equal(t, []any{"2024-01-01", "Salary", "Salary", "income", 5000.0}, values[details+4])
	assert.Len(t, values, details+5)
}

func TestWriter_prepareReportData_Overspent(t *testing.T) {
	snap := snapshot()
	snap.Financials.Balance = decimal.NewFromInt(-10)

	w := &Writer{config: DefaultConfig(), logger: testLogger()}
	values := w.prepareReportData(NewReport(snap, "Rs", time.Now()))

	summary := findRow(values, headingSummary)
	assert.Equal(t, []any{"Standing", "You have overspent this month"}, values[summary+5])
}

// fakeSheets records the calls the writer makes against a stand-in Sheets endpoint.
type fakeSheets struct {
	mutex      sync.Mutex
	calls      []string
	rowsPerPut []int
	getStatus  int
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/v4/spreadsheets"):
		f.calls = append(f.calls, "create")
		_, _ = io.WriteString(w, `{"spreadsheetId":"new-sheet","spreadsheetUrl":"https://example.test/new-sheet"}`)
	case r.Method == http.MethodGet:
		f.calls = append(f.calls, "get")
		if f.getStatus != 0 {
			w.WriteHeader(f.getStatus)
			_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, f.getStatus, http.StatusText(f.getStatus))
			return
		}
		_, _ = io.WriteString(w, `{"spreadsheetId":"existing"}`)
	case strings.HasSuffix(path, ":clear"):
		f.calls = append(f.calls, "clear")
		_, _ = io.WriteString(w, `{}`)
	case strings.HasSuffix(path, ":batchUpdate"):
		f.calls = append(f.calls, "format")
		_, _ = io.WriteString(w, `{}`)
	case r.Method == http.MethodPut:
		var body sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.calls = append(f.calls, "update")
		f.rowsPerPut = append(f.rowsPerPut, len(body.Values))
		_, _ = io.WriteString(w, `{}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestWriter(t *testing.T, fake *fakeSheets, cfg Config) *Writer {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return newWriter(svc, cfg, testLogger())
}

func TestWriter_Write_CreatesSpreadsheet(t *testing.T) {
	fake := &fakeSheets{}
	cfg := DefaultConfig()
	cfg.BatchSize = 10
	w := newTestWriter(t, fake, cfg)

	url, err := w.Write(context.Background(), NewReport(snapshot(), "Rs", time.Now()))
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/new-sheet", url)
	assert.Equal(t, []string{"create", "clear", "update", "update", "format"}, fake.calls)
	assert.Equal(t, []int{10, 9}, fake.rowsPerPut)
}

func TestWriter_Write_ExistingSpreadsheet(t *testing.T) {
	fake := &fakeSheets{}
	cfg := DefaultConfig()
	cfg.SpreadsheetID = "existing"
	cfg.EnableFormatting = false
	w := newTestWriter(t, fake, cfg)

	url, err := w.Write(context.Background(), NewReport(snapshot(), "Rs", time.Now()))
	require.NoError(t, err)

	assert.Equal(t, SpreadsheetURL("existing"), url)
	assert.Equal(t, []string{"get", "clear", "update"}, fake.calls)
}

func TestWriter_Write_ClientErrorIsNotRetried(t *testing.T) {
	fake := &fakeSheets{getStatus: http.StatusNotFound}
	cfg := DefaultConfig()
	cfg.SpreadsheetID = "missing"
	cfg.RetryDelay = time.Millisecond
	w := newTestWriter(t, fake, cfg)

	_, err := w.Write(context.Background(), NewReport(snapshot(), "Rs", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to access spreadsheet missing")
	assert.Equal(t, []string{"get"}, fake.calls)
}

func TestWriter_Write_ServerErrorIsRetried(t *testing.T) {
	fake := &fakeSheets{getStatus: http.StatusServiceUnavailable}
	cfg := DefaultConfig()
	cfg.SpreadsheetID = "flaky"
	cfg.RetryAttempts = 2
	cfg.RetryDelay = time.Millisecond
	w := newTestWriter(t, fake, cfg)

	_, err := w.Write(context.Background(), NewReport(snapshot(), "Rs", time.Now()))
	require.Error(t, err)
	assert.Equal(t, []string{"get", "get"}, fake.calls)
}
