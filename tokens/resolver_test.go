package tokens_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/goliatone/go-multisite/pkg/testsupport"
	"github.com/goliatone/go-multisite/tokens"
)

func TestResolveNestedPath(t *testing.T) {
	out := tokens.Resolve("[[address.city]]", map[string]any{
		"address": map[string]any{"city": "Austin"},
	})
	if out != "Austin" {
		t.Fatalf("expected Austin got %v", out)
	}
}

func TestResolveMultipleMarkers(t *testing.T) {
	out := tokens.Resolve("[[a]] and [[b]]", map[string]any{"a": "X", "b": "Y"})
	if out != "X and Y" {
		t.Fatalf("expected %q got %v", "X and Y", out)
	}
}

func TestResolveFailOpenLeavesMarkerVerbatim(t *testing.T) {
	in := "Hello [[missing.path]]"
	out := tokens.Resolve(in, map[string]any{})
	if out != in {
		t.Fatalf("expected unresolved marker to survive, got %v", out)
	}
}

func TestResolveNilContextReturnsInput(t *testing.T) {
	in := map[string]any{"title": "[[name]]"}
	out := tokens.Resolve(in, nil)
	if reflect.ValueOf(out).Pointer() != reflect.ValueOf(in).Pointer() {
		t.Fatal("expected identical reference when context is nil")
	}
}

func TestResolveNonMappingIntermediateFails(t *testing.T) {
	in := "[[address.city]]"
	out := tokens.Resolve(in, map[string]any{"address": "not a mapping"})
	if out != in {
		t.Fatalf("expected marker untouched, got %v", out)
	}
}

func TestResolveNullValueFailsOpen(t *testing.T) {
	in := "[[phone]]"
	out := tokens.Resolve(in, map[string]any{"phone": nil})
	if out != in {
		t.Fatalf("expected nil lookup to keep marker, got %v", out)
	}
}

func TestResolveStripsSurroundingDots(t *testing.T) {
	out := tokens.Resolve("[[.name.]]", map[string]any{"name": "Central"})
	if out != "Central" {
		t.Fatalf("expected Central got %v", out)
	}
}

func TestResolveStringifiesScalars(t *testing.T) {
	out := tokens.Resolve("open [[hours]]h, rating [[rating]]", map[string]any{
		"hours":  float64(24),
		"rating": 4.5,
	})
	if out != "open 24h, rating 4.5" {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestResolveNestedTree(t *testing.T) {
	in := map[string]any{
		"hero": map[string]any{
			"title": "Welcome to [[name]]",
			"items": []any{"[[address.city]]", "static"},
		},
	}
	ctx := map[string]any{
		"name":    "Downtown",
		"address": map[string]any{"city": "Austin"},
	}

	out, ok := tokens.Resolve(in, ctx).(map[string]any)
	if !ok {
		t.Fatalf("expected mapping, got %T", out)
	}

	hero := out["hero"].(map[string]any)
	if hero["title"] != "Welcome to Downtown" {
		t.Fatalf("unexpected title %v", hero["title"])
	}
	items := hero["items"].([]any)
	if items[0] != "Austin" || items[1] != "static" {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestResolveIdempotentOnResolvedTree(t *testing.T) {
	in := map[string]any{
		"title": "No markers here",
		"meta":  map[string]any{"count": float64(3)},
	}
	out := tokens.Resolve(in, map[string]any{"anything": "x"})
	if reflect.ValueOf(out).Pointer() != reflect.ValueOf(in).Pointer() {
		t.Fatal("expected fully-resolved tree to return by reference")
	}
}

func TestResolveDeterministic(t *testing.T) {
	in := map[string]any{
		"title": "[[name]] ([[address.city]])",
		"body":  []any{"[[name]]", map[string]any{"line": "[[address.line1]]"}},
	}
	ctx := map[string]any{
		"name": "Store 7",
		"address": map[string]any{
			"city":  "Dallas",
			"line1": "500 Main St",
		},
	}

	first := tokens.Resolve(in, ctx)
	second := tokens.Resolve(in, ctx)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output, got %v vs %v", first, second)
	}
}

func TestResolveStructuralSharing(t *testing.T) {
	untouched := map[string]any{"static": "value"}
	in := map[string]any{
		"changed":   "[[name]]",
		"untouched": untouched,
	}

	out := tokens.Resolve(in, map[string]any{"name": "Midtown"}).(map[string]any)
	if reflect.ValueOf(out).Pointer() == reflect.ValueOf(in).Pointer() {
		t.Fatal("expected new root when a leaf changed")
	}
	if out["changed"] != "Midtown" {
		t.Fatalf("unexpected resolved leaf %v", out["changed"])
	}
	if reflect.ValueOf(out["untouched"]).Pointer() != reflect.ValueOf(untouched).Pointer() {
		t.Fatal("expected unchanged subtree to keep its reference")
	}

	// The input tree must not have been mutated.
	if in["changed"] != "[[name]]" {
		t.Fatalf("input mutated: %v", in["changed"])
	}
}

func TestResolveMatchesGoldenPage(t *testing.T) {
	raw, err := testsupport.LoadFixture("testdata/page_template.json")
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	var in map[string]any
	if err := json.Unmarshal(raw, &in); err != nil {
		t.Fatalf("decode template: %v", err)
	}

	var want map[string]any
	if err := testsupport.LoadGolden("testdata/page_resolved.golden.json", &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}

	got := tokens.Resolve(in, map[string]any{
		"name":  "Austin Central",
		"phone": "512-555-0100",
		"address": map[string]any{
			"region": "Texas",
			"city":   "Austin",
			"line1":  "100 Congress Ave",
		},
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("resolved tree diverges from golden:\n got %v\nwant %v", got, want)
	}
}

func TestResolveEmptyPathSegmentsFail(t *testing.T) {
	in := "[[a..b]]"
	out := tokens.Resolve(in, map[string]any{
		"a": map[string]any{"b": "value"},
	})
	if out != in {
		t.Fatalf("expected empty segment to fail resolution, got %v", out)
	}
}
