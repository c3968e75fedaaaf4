package analysis

import (
	"encoding/json"
	"testing"
)

func TestExportShape(t *testing.T) {
	s := fittedSession(t)

	report, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if len(report.ModelComparison) != 4 {
		t.Errorf("comparison has %d entries, want 4", len(report.ModelComparison))
	}
	if len(report.Models) != 4 {
		t.Fatalf("report covers %d models, want 4", len(report.Models))
	}

	for _, name := range []string{ModelLinear, ModelRidge, ModelLasso, ModelElasticNet} {
		section, ok := report.Models[name]
		if !ok {
			t.Errorf("report missing section for %q", name)
			continue
		}
		if section.Metrics == nil {
			t.Errorf("%s section has no metrics", name)
		}
		if len(section.Diagnostics) == 0 {
			t.Errorf("%s section has no diagnostics", name)
		}
		if len(section.FeatureImportance) == 0 {
			t.Errorf("%s section has no importance ranking", name)
		}
		if section.ImportancePlot == "" {
			t.Errorf("%s section has no importance plot", name)
		}
	}
}

func TestExportMetricsMatchTable(t *testing.T) {
	s := fittedSession(t)

	report, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// Metrics are computed once at fit time; exporting must not recompute
	// them.
	for name, section := range report.Models {
		if section.Metrics != s.table[name] {
			t.Errorf("%s metrics are not the cached fit-time set", name)
		}
	}
}

func TestReportJSONRoundTrip(t *testing.T) {
	s := fittedSession(t)

	report, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		ModelComparison []struct {
			Model  string  `json:"model"`
			TestR2 float64 `json:"test_r2"`
		} `json:"model_comparison"`
		Models map[string]json.RawMessage `json:"models"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(decoded.ModelComparison) != 4 {
		t.Errorf("decoded comparison has %d entries, want 4", len(decoded.ModelComparison))
	}
	for _, entry := range decoded.ModelComparison {
		if entry.Model == "" {
			t.Error("decoded comparison entry has empty model name")
		}
	}
	if len(decoded.Models) != 4 {
		t.Errorf("decoded report covers %d models, want 4", len(decoded.Models))
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	X, y := testData(100, 3, 0.5, 42)

	report, err := Analyze(X, y)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(report.Models) != 4 {
		t.Fatalf("Analyze() produced %d model sections, want 4", len(report.Models))
	}

	best := report.ModelComparison[0]
	if best.TestR2 < 0.9 {
		t.Errorf("best test R² = %v, want > 0.9 on nearly linear data", best.TestR2)
	}
	for _, entry := range report.ModelComparison {
		if entry.TestR2 > best.TestR2 {
			t.Errorf("%s outranks the reported best", entry.Name)
		}
	}
}

func TestAnalyzeWithOptions(t *testing.T) {
	X, y := testData(100, 3, 0.5, 42)

	s, err := NewSession(X, y, WithTestSize(0.5), WithSeed(7))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	trainRows, _ := s.TrainShape()
	testRows, _ := s.TestShape()
	if trainRows != 50 || testRows != 50 {
		t.Errorf("split rows = (%d, %d), want (50, 50)", trainRows, testRows)
	}
}
