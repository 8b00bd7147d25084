package cmd

import (
	"strings"
	"testing"

	"github.com/winbio/vendorscore/internal/testutil"
)

func writeSampleDataset(t *testing.T) string {
	t.Helper()
	return testutil.WriteTempCSV(t, testutil.SampleCSV)
}

func TestScoreCommand(t *testing.T) {
	path := writeSampleDataset(t)

	out, _, err := execute(t, "score", "--data", path, "--as-of", "2024-05-01", "--qty", "10", "--no-color")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	expected := []string{
		"Vendor Pricing, Terms & Score",
		"As of 2024-05-01, order quantity 10",
		"Widget",
		"Gadget",
		// CRUX wins Widget: 9.50 + 1/30.
		"9.5333",
		"Best: CRUX",
		"6 vendors, 4 scored, 2 products",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	// Unscored rows still appear, with dashes for the derived cells.
	if !strings.Contains(out, "DENT") {
		t.Errorf("unscored vendors should still be listed:\n%s", out)
	}
}

func TestScoreCommandProductFilter(t *testing.T) {
	path := writeSampleDataset(t)

	out, _, err := execute(t, "score", "--data", path, "--as-of", "2024-05-01", "--product", "Gadget", "--no-color")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	if !strings.Contains(out, "FLUX") {
		t.Errorf("expected Gadget vendors in output:\n%s", out)
	}
	if strings.Contains(out, "ACME") {
		t.Errorf("Widget vendors should be filtered out:\n%s", out)
	}

	_, _, err = execute(t, "score", "--data", path, "--product", "Doohickey")
	if err == nil {
		t.Fatal("expected an error for an unknown product")
	}
}

func TestScoreCommandRankOrder(t *testing.T) {
	path := writeSampleDataset(t)

	out, _, err := execute(t, "score", "--data", path, "--as-of", "2024-05-01", "--no-color")
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}

	// Within the Widget table the winner is listed before the runner-up.
	crux := strings.Index(out, "CRUX")
	acme := strings.Index(out, "ACME")
	bolt := strings.Index(out, "BOLT")
	if crux == -1 || acme == -1 || bolt == -1 {
		t.Fatalf("missing vendors in output:\n%s", out)
	}
	if !(crux < acme && acme < bolt) {
		t.Errorf("display order should follow rank, got CRUX@%d ACME@%d BOLT@%d", crux, acme, bolt)
	}
}

func TestChartCommand(t *testing.T) {
	path := writeSampleDataset(t)

	out, _, err := execute(t, "chart", "--data", path, "--as-of", "2024-05-01", "--metric", "price", "--no-color")
	if err != nil {
		t.Fatalf("chart failed: %v", err)
	}

	if !strings.Contains(out, "Vendor price comparison") {
		t.Errorf("expected chart header:\n%s", out)
	}
	if !strings.Contains(out, "█") {
		t.Errorf("expected bars in output:\n%s", out)
	}
	// DENT has no price: dash instead of a bar.
	if !strings.Contains(out, "—") {
		t.Errorf("expected a dash for absent values:\n%s", out)
	}
}

func TestChartCommandUnknownMetric(t *testing.T) {
	path := writeSampleDataset(t)

	_, _, err := execute(t, "chart", "--data", path, "--metric", "vibes")
	if err == nil {
		t.Fatal("expected an error for an unknown metric")
	}
	if !strings.Contains(err.Error(), "vibes") {
		t.Errorf("error should name the metric, got %v", err)
	}
}
