package catalog_test

import (
	"testing"

	"tidy/internal/catalog"
	"tidy/internal/config"
)

func newCatalog(t *testing.T, mutate func(*config.Config)) *catalog.Catalog {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	cat, err := catalog.FromConfig(&cfg)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	return cat
}

func TestRegistryNumbersFollowOrder(t *testing.T) {
	reg, err := catalog.NewRegistry([]string{"Documents", "Images", "Code"})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	cats := reg.Categories()
	if len(cats) != 4 {
		t.Fatalf("expected 3 categories plus Unsorted, got %d", len(cats))
	}
	if cats[0].FolderName() != "01_Documents" {
		t.Fatalf("unexpected first folder: %q", cats[0].FolderName())
	}
	if cats[2].FolderName() != "03_Code" {
		t.Fatalf("unexpected third folder: %q", cats[2].FolderName())
	}
	last := cats[len(cats)-1]
	if last.Name != catalog.UnsortedCategory || last.FolderName() != "99_Unsorted" {
		t.Fatalf("expected Unsorted pinned at 99, got %+v", last)
	}
}

func TestRegistryRejectsReservedAndDuplicateNames(t *testing.T) {
	if _, err := catalog.NewRegistry([]string{"Documents", "unsorted"}); err == nil {
		t.Fatal("expected reserved name error")
	}
	if _, err := catalog.NewRegistry([]string{"Documents", "documents"}); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestRegistryAddRemoveMoveRenumber(t *testing.T) {
	reg, err := catalog.NewRegistry([]string{"Documents", "Images", "Code"})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	added, err := reg.Add("Videos", 2)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if added.Number != 2 {
		t.Fatalf("expected position 2, got %d", added.Number)
	}
	if cat, _ := reg.Lookup("Images"); cat.Number != 3 {
		t.Fatalf("expected Images renumbered to 3, got %d", cat.Number)
	}

	if err := reg.Remove("Documents"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if cat, _ := reg.Lookup("Videos"); cat.Number != 1 {
		t.Fatalf("expected Videos renumbered to 1, got %d", cat.Number)
	}

	if err := reg.Move("Code", 1); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	if cat, _ := reg.Lookup("Code"); cat.Number != 1 {
		t.Fatalf("expected Code moved to 1, got %d", cat.Number)
	}

	if err := reg.Remove(catalog.UnsortedCategory); err == nil {
		t.Fatal("expected Unsorted removal to fail")
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	reg, err := catalog.NewRegistry([]string{"Documents"})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	if _, ok := reg.Lookup("dOcUmEnTs"); !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	folder, err := reg.FolderName("unsorted")
	if err != nil {
		t.Fatalf("FolderName returned error: %v", err)
	}
	if folder != "99_Unsorted" {
		t.Fatalf("unexpected folder: %q", folder)
	}
}

func TestRuleMatchesExtension(t *testing.T) {
	rule := catalog.Rule{Name: "Disk Images", Parent: "Installers", Extensions: []string{"dmg", "iso"}}
	if !rule.Matches("ubuntu.iso", "iso", "") {
		t.Fatal("expected extension match")
	}
	if rule.Matches("notes.txt", "txt", "") {
		t.Fatal("unexpected match")
	}
}

func TestRuleMatchesGlobPattern(t *testing.T) {
	rule := catalog.Rule{Name: "Acme", Parent: "Documents", Patterns: []string{"acme_*"}}
	if !rule.Matches("ACME_report.pdf", "pdf", "") {
		t.Fatal("expected case-insensitive glob match")
	}
	if rule.Matches("report_acme.pdf", "pdf", "") {
		t.Fatal("glob should anchor to the whole filename")
	}
}

func TestRuleKeywordThreshold(t *testing.T) {
	rule := catalog.Rule{
		Name:              "Invoices",
		Parent:            "Documents",
		Keywords:          []string{"invoice", "amount due", "total"},
		MinKeywordMatches: 2,
	}
	if rule.Matches("scan001.pdf", "pdf", "invoice from acme") {
		t.Fatal("one keyword should not satisfy a threshold of two")
	}
	if !rule.Matches("scan001.pdf", "pdf", "Invoice #42 Total: $10") {
		t.Fatal("expected two keyword hits to match")
	}
	if !rule.Matches("invoice_total.pdf", "pdf", "") {
		t.Fatal("expected keywords in the filename to count")
	}
}

func TestResolveSubcategoryFirstMatchWinsWithinParent(t *testing.T) {
	rules := catalog.NewRuleSet([]catalog.Rule{
		{Name: "Receipts", Parent: "Documents", Keywords: []string{"receipt"}},
		{Name: "Invoices", Parent: "Documents", Keywords: []string{"invoice"}},
		{Name: "Wallpapers", Parent: "Images", Keywords: []string{"invoice"}},
	})

	name, ok := rules.ResolveSubcategory("Documents", "invoice_receipt.pdf", "pdf", "")
	if !ok || name != "Receipts" {
		t.Fatalf("expected first declared match, got %q ok=%v", name, ok)
	}

	// A rule under another parent never applies, even when its clauses match.
	if name, ok := rules.ResolveSubcategory("Documents", "x.pdf", "pdf", "invoice"); !ok || name != "Invoices" {
		t.Fatalf("expected Invoices, got %q ok=%v", name, ok)
	}
	if _, ok := rules.ResolveSubcategory("Videos", "invoice.mp4", "mp4", ""); ok {
		t.Fatal("expected no match outside the parent branch")
	}
}

func TestRoutingDetectorScopedOutranksGlobal(t *testing.T) {
	table := catalog.NewRoutingTable([]catalog.RoutingRule{
		{From: "Documents", To: "Data"},
		{From: "Documents", To: "Books", Detector: "book"},
	})

	if to, ok := table.Remap("book", "Documents"); !ok || to != "Books" {
		t.Fatalf("expected detector rule to win, got %q ok=%v", to, ok)
	}
	if to, ok := table.Remap("extension", "Documents"); !ok || to != "Data" {
		t.Fatalf("expected global rule, got %q ok=%v", to, ok)
	}
	if to, ok := table.Remap("extension", "Videos"); ok || to != "Videos" {
		t.Fatalf("expected identity for unrouted category, got %q ok=%v", to, ok)
	}
}

func TestCatalogApplyRoutesAndDropsSubcategory(t *testing.T) {
	cat := newCatalog(t, func(cfg *config.Config) {
		cfg.Subcategories = []config.Subcategory{
			{Name: "Invoices", Parent: "Documents", Keywords: []string{"invoice"}},
		}
		cfg.Routing = []config.Routing{
			{From: "Documents", To: "Books", Detector: "book"},
		}
	})

	p := cat.Apply("content", "Documents", "invoice_42.pdf", "pdf", "invoice")
	if p.Category != "Documents" || p.Subcategory != "Invoices" || p.Routed {
		t.Fatalf("unexpected placement: %+v", p)
	}

	p = cat.Apply("book", "Documents", "invoice_42.pdf", "pdf", "invoice")
	if p.Category != "Books" || p.Subcategory != "" || !p.Routed {
		t.Fatalf("expected route to clear subcategory, got %+v", p)
	}
}

func TestCatalogApplyIgnoresUnknownRouteTarget(t *testing.T) {
	cat := newCatalog(t, func(cfg *config.Config) {
		cfg.Routing = []config.Routing{{From: "Documents", To: "Nowhere"}}
	})

	p := cat.Apply("extension", "Documents", "a.pdf", "pdf", "")
	if p.Category != "Documents" || p.Routed {
		t.Fatalf("expected unknown target to be a no-op, got %+v", p)
	}
}

func TestFromConfigRejectsUnknownSubcategoryParent(t *testing.T) {
	cfg := config.Default()
	cfg.Subcategories = []config.Subcategory{
		{Name: "Orphans", Parent: "Nowhere", Keywords: []string{"x"}},
	}
	if _, err := catalog.FromConfig(&cfg); err == nil {
		t.Fatal("expected unknown parent error")
	}
}
