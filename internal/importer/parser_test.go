package importer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseText_HeadersAndRows(t *testing.T) {
	text := "Date,Amount,Memo\n2024-01-05,-42.50,Coffee\n2024-01-06,1000.00,Paycheck"

	headers, rows, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}

	wantHeaders := []string{"Date", "Amount", "Memo"}
	if !reflect.DeepEqual(headers, wantHeaders) {
		t.Errorf("headers = %v, want %v", headers, wantHeaders)
	}

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0]["Memo"] != "Coffee" {
		t.Errorf(`rows[0]["Memo"] = %q, want "Coffee"`, rows[0]["Memo"])
	}
	if rows[1]["Amount"] != "1000.00" {
		t.Errorf(`rows[1]["Amount"] = %q, want "1000.00"`, rows[1]["Amount"])
	}
}

func TestParseText_EveryRowHasAllHeaders(t *testing.T) {
	// Short lines map missing trailing headers to "".
	text := "a,b,c\n1,2\n1"

	headers, rows, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}

	for i, row := range rows {
		if len(row) != len(headers) {
			t.Errorf("row %d has %d entries, want %d", i, len(row), len(headers))
		}
	}
	if rows[0]["c"] != "" {
		t.Errorf(`rows[0]["c"] = %q, want ""`, rows[0]["c"])
	}
	if rows[1]["b"] != "" || rows[1]["c"] != "" {
		t.Errorf("rows[1] trailing cells = %q/%q, want empty", rows[1]["b"], rows[1]["c"])
	}
}

func TestParseText_QuoteStrippingAndTrimming(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"enclosing quotes", "h\n\"value\"", "value"},
		{"whitespace", "h\n  value  ", "value"},
		{"quotes then whitespace", "h\n \" value \" ", "value"},
		{"inner quote kept", "h\nit\"s", "it\"s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rows, err := ParseText(tt.text)
			if err != nil {
				t.Fatalf("ParseText() error = %v", err)
			}
			if got := rows[0]["h"]; got != tt.want {
				t.Errorf("cell = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseText_SkipsEmptyLines(t *testing.T) {
	text := "\n\nDate,Amount\n\n2024-01-05,10\n\n\n2024-01-06,20\n"

	headers, rows, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if len(headers) != 2 {
		t.Errorf("len(headers) = %d, want 2", len(headers))
	}
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(rows))
	}
}

func TestParseText_CRLF(t *testing.T) {
	text := "Date,Amount\r\n2024-01-05,10\r\n"

	headers, rows, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if headers[1] != "Amount" {
		t.Errorf("headers[1] = %q, want %q", headers[1], "Amount")
	}
	if rows[0]["Amount"] != "10" {
		t.Errorf(`rows[0]["Amount"] = %q, want "10"`, rows[0]["Amount"])
	}
}

func TestParseText_EmptyFile(t *testing.T) {
	for _, text := range []string{"", "\n\n\n", "   \n\t\n"} {
		_, _, err := ParseText(text)
		if !errors.Is(err, ErrEmptyFile) {
			t.Errorf("ParseText(%q) error = %v, want ErrEmptyFile", text, err)
		}
	}
}

func TestParseText_Idempotent(t *testing.T) {
	text := "Date,Amount,Memo\n2024-01-05,-42.50,Coffee\n2024-01-06,1000.00,Paycheck"

	h1, r1, err1 := ParseText(text)
	h2, r2, err2 := ParseText(text)
	if err1 != nil || err2 != nil {
		t.Fatalf("ParseText() errors = %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(h1, h2) || !reflect.DeepEqual(r1, r2) {
		t.Error("parsing the same text twice produced different results")
	}
}

func TestParse_SizeLimit(t *testing.T) {
	text := "Date,Amount\n2024-01-05,10\n"

	_, _, err := Parse(strings.NewReader(text), 4)
	if !errors.Is(err, ErrUnreadableFile) {
		t.Errorf("Parse() error = %v, want ErrUnreadableFile", err)
	}

	headers, _, err := Parse(strings.NewReader(text), 1<<20)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(headers) != 2 {
		t.Errorf("len(headers) = %d, want 2", len(headers))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParse_ReadError(t *testing.T) {
	_, _, err := Parse(failingReader{}, 1<<20)
	if !errors.Is(err, ErrUnreadableFile) {
		t.Errorf("Parse() error = %v, want ErrUnreadableFile", err)
	}
}
