package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"elden-ring", "3 profiles"},
		{"sekiro", "1 profile"},
	}
	got := Format(rows, nil)
	want := []string{
		"elden-ring  3 profiles",
		"sekiro      1 profile",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatRightAlignment(t *testing.T) {
	rows := [][]string{
		{"a", "10"},
		{"bb", "5"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"a   10",
		"bb   5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil for no rows, got %q", got)
	}
}
