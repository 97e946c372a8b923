package services

import (
	"reflect"
	"testing"
)

func TestParseDelimitedComma(t *testing.T) {
	text := "Name,Capacity,Remarks\r\nSECI,\"1,200\",\"Lowest tariff, full award\"\n\nGUVNL,500,\"He said \"\"go\"\"\"\n"
	headers, rows := parseDelimited(text)

	wantHeaders := []string{"Name", "Capacity", "Remarks"}
	if !reflect.DeepEqual(headers, wantHeaders) {
		t.Fatalf("headers = %v, want %v", headers, wantHeaders)
	}
	if len(rows) != 2 {
		t.Fatalf("rows length = %d, want 2", len(rows))
	}
	if rows[0][1] != "1,200" {
		t.Fatalf("quoted field = %q, want %q", rows[0][1], "1,200")
	}
	if rows[0][2] != "Lowest tariff, full award" {
		t.Fatalf("quoted field = %q, want %q", rows[0][2], "Lowest tariff, full award")
	}
	if rows[1][2] != `He said "go"` {
		t.Fatalf("escaped quote field = %q, want %q", rows[1][2], `He said "go"`)
	}
}

func TestParseDelimitedTab(t *testing.T) {
	text := "Name\tCapacity\tRemarks\nSECI\t1200\tok, fine\n"
	headers, rows := parseDelimited(text)

	if len(headers) != 3 {
		t.Fatalf("headers length = %d, want 3", len(headers))
	}
	if len(rows) != 1 {
		t.Fatalf("rows length = %d, want 1", len(rows))
	}
	if rows[0][2] != "ok, fine" {
		t.Fatalf("field = %q, want %q", rows[0][2], "ok, fine")
	}
}

func TestParseDelimitedCommaOnTie(t *testing.T) {
	headers, _ := parseDelimited("a,b\tc")

	if len(headers) != 2 {
		t.Fatalf("headers length = %d, want 2", len(headers))
	}
	if headers[0] != "a" || headers[1] != "b\tc" {
		t.Fatalf("headers = %q, want a and b\\tc", headers)
	}
}

func TestParseDelimitedBlankInput(t *testing.T) {
	headers, rows := parseDelimited("\n   \n\r\n")

	if headers != nil {
		t.Fatalf("headers = %v, want nil", headers)
	}
	if rows != nil {
		t.Fatalf("rows = %v, want nil", rows)
	}
}

func TestSplitFieldsTrims(t *testing.T) {
	fields := splitFields(` a , " b " ,c `, ',')

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("fields = %q, want %q", fields, want)
	}
}
