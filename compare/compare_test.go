package compare

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/rtfdelta/model"
)

// makeTable builds a table from alternating name/values pairs.
func makeTable(t *testing.T, cols ...model.Column) *model.Table {
	t.Helper()
	return model.New(cols)
}

func aeTable(t *testing.T) *model.Table {
	t.Helper()
	return makeTable(t,
		model.Column{Name: "Category", Values: []model.Value{
			model.Text("Participants in population"),
			model.Text("With any adverse event"),
			model.Text("Who died"),
		}},
		model.Column{Name: "Placebo (N=60) | n", Values: []model.Value{
			model.Int(60), model.Int(28), model.Int(0),
		}},
		model.Column{Name: "Placebo (N=60) | (%)", Values: []model.Value{
			model.Null(), model.Text("(46.7)"), model.Text("(0.0)"),
		}},
	)
}

func TestTablesIdentical(t *testing.T) {
	result, err := Tables(aeTable(t), aeTable(t), Options{})
	if err != nil {
		t.Fatalf("comparing identical tables: %v", err)
	}
	if result.Category != Identical {
		t.Errorf("expected Identical, got %v: %s", result.Category, result.Summary)
	}
	if !strings.Contains(result.Summary, "identical") {
		t.Errorf("summary should state the tables are identical: %q", result.Summary)
	}
}

func TestTablesColumnOrderMatters(t *testing.T) {
	left := makeTable(t,
		model.Column{Name: "a", Values: []model.Value{model.Int(1)}},
		model.Column{Name: "b", Values: []model.Value{model.Int(2)}},
	)
	right := makeTable(t,
		model.Column{Name: "b", Values: []model.Value{model.Int(2)}},
		model.Column{Name: "a", Values: []model.Value{model.Int(1)}},
	)

	result, err := Tables(left, right, Options{})
	if err != nil {
		t.Fatalf("comparing reordered tables: %v", err)
	}
	if result.Category != StructureDifferences {
		t.Error("reordered columns must classify as structure differences")
	}
	if !strings.Contains(result.Summary, "column names/order") {
		t.Errorf("summary should name the column mismatch: %q", result.Summary)
	}
}

func TestTablesRowCountMismatch(t *testing.T) {
	left := makeTable(t,
		model.Column{Name: "a", Values: []model.Value{model.Int(1), model.Int(2)}},
	)
	right := makeTable(t,
		model.Column{Name: "a", Values: []model.Value{model.Int(1)}},
	)

	result, err := Tables(left, right, Options{})
	if err != nil {
		t.Fatalf("comparing tables: %v", err)
	}
	if result.Category != StructureDifferences {
		t.Error("differing row counts must classify as structure differences")
	}
	if !strings.Contains(result.Summary, "row count mismatch") {
		t.Errorf("summary should name the row count mismatch: %q", result.Summary)
	}
}

func TestTablesNumericTolerance(t *testing.T) {
	left := makeTable(t,
		model.Column{Name: "mean", Values: []model.Value{model.Float(46.700)}},
	)
	right := makeTable(t,
		model.Column{Name: "mean", Values: []model.Value{model.Float(46.705)}},
	)

	loose, err := Tables(left, right, Options{AbsTol: 0.01})
	if err != nil {
		t.Fatalf("comparing with loose tolerance: %v", err)
	}
	if loose.Category != Identical {
		t.Errorf("0.005 difference within abs_tol=0.01 must be identical: %s", loose.Summary)
	}

	tight, err := Tables(left, right, Options{AbsTol: 0.001})
	if err != nil {
		t.Fatalf("comparing with tight tolerance: %v", err)
	}
	if tight.Category != StructureDifferences {
		t.Error("0.005 difference outside abs_tol=0.001 must differ")
	}
	if !strings.Contains(tight.Summary, `column "mean" at row 0`) {
		t.Errorf("summary should locate the first mismatch: %q", tight.Summary)
	}
}

func TestTablesRelativeTolerance(t *testing.T) {
	left := makeTable(t,
		model.Column{Name: "mean", Values: []model.Value{model.Float(100.0)}},
	)
	right := makeTable(t,
		model.Column{Name: "mean", Values: []model.Value{model.Float(100.4)}},
	)

	loose, err := Tables(left, right, Options{RelTol: 0.01})
	if err != nil {
		t.Fatalf("comparing with loose relative tolerance: %v", err)
	}
	if loose.Category != Identical {
		t.Errorf("0.4%% difference within rel_tol=0.01 must be identical: %s", loose.Summary)
	}

	tight, err := Tables(left, right, Options{RelTol: 0.001})
	if err != nil {
		t.Fatalf("comparing with tight relative tolerance: %v", err)
	}
	if tight.Category != StructureDifferences {
		t.Error("0.4% difference outside rel_tol=0.001 must differ")
	}
}

func TestTablesIntFloatCrossKind(t *testing.T) {
	left := makeTable(t,
		model.Column{Name: "n", Values: []model.Value{model.Int(60)}},
	)
	right := makeTable(t,
		model.Column{Name: "n", Values: []model.Value{model.Float(60.0)}},
	)

	result, err := Tables(left, right, Options{})
	if err != nil {
		t.Fatalf("comparing tables: %v", err)
	}
	if result.Category != Identical {
		t.Errorf("integer 60 and float 60.0 must compare equal numerically: %s", result.Summary)
	}
}

func TestTablesTextNormalization(t *testing.T) {
	left := makeTable(t,
		model.Column{Name: "severity", Values: []model.Value{model.Text("Grade 3")}},
	)
	right := makeTable(t,
		model.Column{Name: "severity", Values: []model.Value{model.Text("grade    3")}},
	)

	strict, err := Tables(left, right, Options{})
	if err != nil {
		t.Fatalf("strict comparison: %v", err)
	}
	if strict.Category != StructureDifferences {
		t.Error("case and spacing differences must register without the ignore flags")
	}

	relaxed, err := Tables(left, right, Options{IgnoreCase: true, IgnoreSpaces: true})
	if err != nil {
		t.Fatalf("relaxed comparison: %v", err)
	}
	if relaxed.Category != Identical {
		t.Errorf("ignore flags must neutralize case and spacing: %s", relaxed.Summary)
	}
}

func TestTablesNullSemantics(t *testing.T) {
	left := makeTable(t,
		model.Column{Name: "pct", Values: []model.Value{model.Null()}},
	)
	right := makeTable(t,
		model.Column{Name: "pct", Values: []model.Value{model.Text("")}},
	)

	result, err := Tables(left, right, Options{})
	if err != nil {
		t.Fatalf("comparing tables: %v", err)
	}
	if result.Category != StructureDifferences {
		t.Error("null must only equal null, never a present value")
	}

	bothNull, err := Tables(left, left, Options{})
	if err != nil {
		t.Fatalf("comparing null tables: %v", err)
	}
	if bothNull.Category != Identical {
		t.Error("null must equal null")
	}
}

func TestTablesNaNEqualsNaN(t *testing.T) {
	nan := makeTable(t,
		model.Column{Name: "x", Values: []model.Value{model.Float(math.NaN())}},
	)
	result, err := Tables(nan, nan, Options{})
	if err != nil {
		t.Fatalf("comparing NaN tables: %v", err)
	}
	if result.Category != Identical {
		t.Errorf("NaN must equal NaN: %s", result.Summary)
	}
}

func TestTablesInconsistentShapeIsError(t *testing.T) {
	broken := makeTable(t,
		model.Column{Name: "a", Values: []model.Value{model.Int(1), model.Int(2)}},
		model.Column{Name: "b", Values: []model.Value{model.Int(1)}},
	)
	_, err := Tables(broken, broken, Options{})
	if !errors.Is(err, model.ErrInconsistentShape) {
		t.Fatalf("expected ErrInconsistentShape, got %v", err)
	}
}

func TestJoinColumns(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr error
	}{
		{
			"single stub",
			[]string{"Category", "A | n", "A | (%)"},
			[]string{"Category"}, nil,
		},
		{
			"double stub",
			[]string{"Class", "Term", "A | n"},
			[]string{"Class", "Term"}, nil,
		},
		{
			"composite first still yields one key",
			[]string{"A | n", "A | (%)"},
			[]string{"A | n"}, nil,
		},
		{
			"no composite",
			[]string{"Category", "Count"},
			[]string{"Category"}, nil,
		},
		{
			"empty schema",
			nil, nil, ErrMissingJoinKey,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := JoinColumns(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("JoinColumns(%q) error = %v, want %v", tc.in, err, tc.wantErr)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("JoinColumns(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFilesLoadError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.rtf")
	_, err := Files(missing, missing, Options{})
	if err == nil {
		t.Fatal("expected an error loading a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a wrapped os.ErrNotExist, got %v", err)
	}
}
