package population

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Region,Population_2020
Norway,5421
Austria,9006
Duplicate Land,100
Duplicate Land,200
`

func TestDecode(t *testing.T) {
	table, err := Decode(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	thousands, ok := table.Lookup("norway")
	if !ok || thousands != 5421 {
		t.Fatalf("Lookup(norway) = (%f, %v)", thousands, ok)
	}

	if _, ok := table.Lookup("atlantis"); ok {
		t.Fatal("unknown region must not match")
	}

	if _, ok := table.Lookup("duplicate land"); ok {
		t.Fatal("ambiguous region must not match")
	}
}

func TestDecodeMissingColumn(t *testing.T) {
	if _, err := Decode(strings.NewReader("Region\nNorway\n")); err == nil {
		t.Fatal("expected an error for a missing population column")
	}
}

func TestDecodeBadPopulation(t *testing.T) {
	if _, err := Decode(strings.NewReader("Region,Population_2020\nNorway,lots\n")); err == nil {
		t.Fatal("expected an error for an unparseable population")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "population.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 distinct regions, got %d", table.Len())
	}
}
