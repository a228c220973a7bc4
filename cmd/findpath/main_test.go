package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transit-pathfinder/internal/config"
)

const testNetwork = `U1: "A" 5 "B" 3 "C"
U2: "A" 2 "C"
L1: "Old Town" 1 "B"
L3: "Island" 1 "Lighthouse"
`

type fixture struct {
	dir string
	cfg *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir: dir,
		cfg: &config.Config{
			NetworkFile:       filepath.Join(dir, "fileGraph.txt"),
			StartFile:         filepath.Join(dir, "start.txt"),
			TargetFile:        filepath.Join(dir, "target.txt"),
			NATSSubjectPrefix: "itineraries",
			OutputFormat:      "text",
			Workers:           2,
		},
	}
	f.write(t, "fileGraph.txt", testNetwork)
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(f.cfg, &out).Run(append([]string{"findpath"}, args...))
	return out.String(), err
}

func TestRouteWithArguments(t *testing.T) {
	f := newFixture(t)
	start := f.write(t, "from.txt", "Old Town\n")
	target := f.write(t, "to.txt", "C\n")

	out, err := f.run(t, f.cfg.NetworkFile, start, target)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "Shortest path from \"Old Town\" to \"C\":\n   Old Town --[L1]--> B --[transfer to U1]--> C\nTotal travel time: 4\n"
	if out != want {
		t.Fatalf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestRouteUsesDefaultFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, "start.txt", "A")
	f.write(t, "target.txt", "C")

	out, err := f.run(t, "route")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "   A --[U2]--> C\n") || !strings.HasSuffix(out, "Total travel time: 2\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRouteOutcomesAreNotErrors(t *testing.T) {
	f := newFixture(t)
	f.write(t, "start.txt", "A")

	f.write(t, "target.txt", "Atlantis")
	out, err := f.run(t)
	if err != nil {
		t.Fatalf("unknown station should not fail: %v", err)
	}
	if out != "Station \"Atlantis\" not found in network.\n" {
		t.Fatalf("unexpected output %q", out)
	}

	f.write(t, "target.txt", "Island")
	out, err = f.run(t)
	if err != nil {
		t.Fatalf("missing path should not fail: %v", err)
	}
	if out != "No path from \"A\" to \"Island\" found.\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRouteMissingFilesFail(t *testing.T) {
	f := newFixture(t)
	f.write(t, "start.txt", "A")

	_, err := f.run(t)
	if err == nil || !strings.Contains(err.Error(), "target.txt") {
		t.Fatalf("expected an error naming target.txt, got %v", err)
	}

	f.write(t, "target.txt", "C")
	_, err = f.run(t, filepath.Join(f.dir, "missing.txt"), f.cfg.StartFile, f.cfg.TargetFile)
	if err == nil || !strings.Contains(err.Error(), "missing.txt") {
		t.Fatalf("expected an error naming missing.txt, got %v", err)
	}
}

func TestRouteJSON(t *testing.T) {
	f := newFixture(t)
	f.write(t, "start.txt", "A")
	f.write(t, "target.txt", "C")

	out, err := f.run(t, "--format", "json")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	var doc struct {
		Status    string `json:"status"`
		TotalTime int    `json:"totalTime"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if doc.Status != "found" || doc.TotalTime != 2 {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestRouteRejectsUnknownFormat(t *testing.T) {
	f := newFixture(t)
	if _, err := f.run(t, "--format", "xml"); err == nil {
		t.Fatal("expected an error for format xml")
	}
}

func TestBatch(t *testing.T) {
	f := newFixture(t)
	queries := f.write(t, "queries.txt", "\"A\" \"C\"\n\"Old Town\" \"Lighthouse\"\n\"C\" \"Nowhere\"\n")

	out, err := f.run(t, "batch", "--workers", "3", f.cfg.NetworkFile, queries)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "" +
		"Shortest path from \"A\" to \"C\":\n   A --[U2]--> C\nTotal travel time: 2\n" +
		"No path from \"Old Town\" to \"Lighthouse\" found.\n" +
		"Station \"Nowhere\" not found in network.\n"
	if out != want {
		t.Fatalf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestInspect(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "inspect", f.cfg.NetworkFile, "B")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{`To:`, `"A"`, `"C"`, `"Old Town"`, `"L1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %s:\n%s", want, out)
		}
	}

	out, err = f.run(t, "inspect", f.cfg.NetworkFile)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(out, "A (2 connections)\nB (3 connections)\n") {
		t.Fatalf("unexpected station list:\n%s", out)
	}
}

func TestMetricsTextfile(t *testing.T) {
	f := newFixture(t)
	f.write(t, "start.txt", "A")
	f.write(t, "target.txt", "C")
	f.cfg.MetricsTextfile = filepath.Join(f.dir, "pathfinder.prom")

	if _, err := f.run(t); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	b, err := os.ReadFile(f.cfg.MetricsTextfile)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	for _, want := range []string{`pathfinder_queries_total{outcome="found"} 1`, "pathfinder_network_stations 6"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("metrics missing %q:\n%s", want, b)
		}
	}
}
