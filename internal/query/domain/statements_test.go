package domain

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{"empty", "", []string{}},
		{"blank statements dropped", " ; \n;;", []string{}},
		{"two statements", "SELECT 1;\n\n  SELECT 2 ;", []string{"SELECT 1", "SELECT 2"}},
		{"no trailing semicolon", "SELECT 1;SELECT 2", []string{"SELECT 1", "SELECT 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitStatements(tt.script); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	for total, want := range map[int][2]int{0: {0, 0}, 7: {7, 0}, 10: {10, 0}, 25: {10, 15}} {
		shown, hidden := Preview(total)
		if shown != want[0] || hidden != want[1] {
			t.Errorf("Preview(%d) = %d, %d; want %v", total, shown, hidden, want)
		}
	}
}
