// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package validate_test

import (
	"testing"

	"github.com/ArashPartow/schifra/validate"
)

func TestRunScenariosAllPass(t *testing.T) {
	results := validate.RunScenarios()
	if len(results) != 6 {
		t.Fatalf("RunScenarios returned %d results, want 6", len(results))
	}
	for _, r := range results {
		if !r.Pass {
			t.Fatalf("scenario %q failed: %s", r.Name, r.Detail)
		}
	}
}
