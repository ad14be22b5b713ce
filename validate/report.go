// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

// Package validate runs the property sweeps and named end-to-end scenarios a
// constructed codec is expected to satisfy, and reports the outcome as a
// compressed, loadable artifact.
package validate

import (
	"encoding/json"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// InvariantResult is the outcome of one quantified property sweep: Cases is
// the number of parameter combinations exercised, Failures the number that
// did not hold.
type InvariantResult struct {
	Name     string `json:"name"`
	Cases    int    `json:"cases"`
	Failures int    `json:"failures"`
	Detail   string `json:"detail,omitempty"`
}

// Pass reports whether every case this invariant exercised held.
func (r InvariantResult) Pass() bool { return r.Failures == 0 }

// ScenarioResult is the outcome of one named, fully-parameterized end-to-end
// scenario.
type ScenarioResult struct {
	Name   string `json:"name"`
	Pass   bool   `json:"pass"`
	Detail string `json:"detail,omitempty"`
}

// Report is the full output of a validation run.
type Report struct {
	Invariants []InvariantResult `json:"invariants"`
	Scenarios  []ScenarioResult  `json:"scenarios"`
}

// Pass reports whether every invariant and scenario in the report held.
func (r Report) Pass() bool {
	for _, inv := range r.Invariants {
		if !inv.Pass() {
			return false
		}
	}
	for _, sc := range r.Scenarios {
		if !sc.Pass {
			return false
		}
	}
	return true
}

// WriteCompressed marshals r to JSON and streams it through a snappy writer
// to path, the way the teacher's CompStream wraps a net.Conn with
// snappy.NewBufferedWriter — here wrapping a file instead, since a
// validation report has nowhere to dial.
func WriteCompressed(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "validate: create report file")
	}
	defer f.Close()

	w := snappy.NewBufferedWriter(f)
	if err := json.NewEncoder(w).Encode(r); err != nil {
		w.Close()
		return errors.Wrap(err, "validate: encode report")
	}
	return errors.Wrap(w.Close(), "validate: flush compressed report")
}

// ReadCompressed is WriteCompressed's inverse.
func ReadCompressed(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, errors.Wrap(err, "validate: open report file")
	}
	defer f.Close()

	r := snappy.NewReader(f)
	var report Report
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, errors.Wrap(err, "validate: read compressed report")
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, errors.Wrap(err, "validate: decode report")
	}
	return report, nil
}
