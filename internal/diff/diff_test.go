package diff

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name                   string
		old, new               []string
		want                   string
		removed, added, common int
	}{
		{
			name:   "identical",
			old:    []string{"a:x", "a:y"},
			new:    []string{"a:x", "a:y"},
			want:   "  a:x\n  a:y\n",
			common: 2,
		},
		{
			name: "both empty",
		},
		{
			name:    "everything removed",
			old:     []string{"a:x", "a:y"},
			want:    "- a:x\n- a:y\n",
			removed: 2,
		},
		{
			name:  "everything added",
			new:   []string{"a:x"},
			want:  "+ a:x\n",
			added: 1,
		},
		{
			name:    "one swapped",
			old:     []string{"a:x", "a:y", "a:z"},
			new:     []string{"a:x", "a:z", "b:w"},
			want:    "  a:x\n- a:y\n  a:z\n+ b:w\n",
			removed: 1,
			added:   1,
			common:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "q1", "q2")
			if r.Diff != tt.want {
				t.Errorf("Diff = %q, want %q", r.Diff, tt.want)
			}
			if r.Removed != tt.removed || r.Added != tt.added || r.Common != tt.common {
				t.Errorf("counts = -%d +%d =%d, want -%d +%d =%d",
					r.Removed, r.Added, r.Common, tt.removed, tt.added, tt.common)
			}
			if r.Equal() != (tt.removed == 0 && tt.added == 0) {
				t.Errorf("Equal() = %v", r.Equal())
			}
		})
	}
}

func TestCompute_CollapsesLongEqualRuns(t *testing.T) {
	var ids []string
	for i := range 10 {
		ids = append(ids, fmt.Sprintf("a:%d", i))
	}
	r := Compute(ids, append(append([]string{}, ids...), "a:new"), "q1", "q2")

	want := "  a:0\n  a:1\n  a:2\n  ...\n  a:7\n  a:8\n  a:9\n+ a:new\n"
	if r.Diff != want {
		t.Errorf("Diff = %q, want %q", r.Diff, want)
	}
	if r.Common != 10 || r.Added != 1 {
		t.Errorf("counts = +%d =%d, want +1 =10", r.Added, r.Common)
	}
}

func TestFormat(t *testing.T) {
	r := Compute([]string{"a:x"}, []string{"a:y"}, "@a", "@a -x")

	plain := r.Format(false)
	if !strings.HasPrefix(plain, "--- @a\n+++ @a -x\n") {
		t.Errorf("missing header: %q", plain)
	}
	if !strings.HasSuffix(plain, "1 removed, 1 added, 0 common\n") {
		t.Errorf("missing summary: %q", plain)
	}
	if strings.Contains(plain, "\033[") {
		t.Error("plain output contains ANSI codes")
	}

	coloured := r.Format(true)
	if !strings.Contains(coloured, "\033[31m- a:x\033[0m") {
		t.Errorf("removed line not red: %q", coloured)
	}
	if !strings.Contains(coloured, "\033[32m+ a:y\033[0m") {
		t.Errorf("added line not green: %q", coloured)
	}
}

type fakeDiffer struct{ err error }

func (f fakeDiffer) Diff(_ context.Context, q1, q2 string) (Result, error) {
	if f.err != nil {
		return Result{}, f.err
	}
	return Compute([]string{"a:x"}, []string{"a:x"}, q1, q2), nil
}

func TestRun(t *testing.T) {
	var b strings.Builder
	r, err := Run(context.Background(), &b, fakeDiffer{}, "q1", "q2", false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !r.Equal() {
		t.Error("expected equal result")
	}
	if !strings.Contains(b.String(), "  a:x\n") {
		t.Errorf("output = %q", b.String())
	}

	b.Reset()
	if _, err := Run(context.Background(), &b, fakeDiffer{err: fmt.Errorf("boom")}, "q1", "q2", false); err == nil {
		t.Error("expected error")
	}
	if b.Len() != 0 {
		t.Errorf("wrote output on error: %q", b.String())
	}
}
