// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseJSONConfigSuccess(t *testing.T) {
	path := writeTempConfig(t, `{"power":8,"primpoly":[1,0,0,0,1,1,1,0,1],"tablemode":"tables","codelength":255,"feclength":32,"geninitialindex":120,"report":"report.snappy"}`)

	var cfg Config
	if err := parseJSONConfig(&cfg, path); err != nil {
		t.Fatalf("parseJSONConfig returned error: %v", err)
	}

	if cfg.Power != 8 || cfg.CodeLength != 255 || cfg.FECLength != 32 {
		t.Fatalf("unexpected geometry fields: %+v", cfg)
	}
	if len(cfg.PrimPoly) != 9 {
		t.Fatalf("unexpected primpoly length: %+v", cfg.PrimPoly)
	}
	if cfg.GenInitialIndex != 120 || cfg.TableMode != "tables" || cfg.Report != "report.snappy" {
		t.Fatalf("unexpected scalar fields: %+v", cfg)
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	var cfg Config
	missing := filepath.Join(t.TempDir(), "missing.json")
	if err := parseJSONConfig(&cfg, missing); err == nil {
		t.Fatalf("parseJSONConfig expected error for missing file")
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
