// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package main

import (
	"encoding/json"
	"os"
)

// Config describes a field/geometry combination to validate. It mirrors the
// flags of the same name on the command line; a JSON config file, when
// given via "-c", overrides whatever the flags set.
type Config struct {
	Power           uint   `json:"power"`
	PrimPoly        []uint `json:"primpoly"`
	TableMode       string `json:"tablemode"`
	CodeLength      int    `json:"codelength"`
	FECLength       int    `json:"feclength"`
	GenInitialIndex int    `json:"geninitialindex"`
	ShortenedData   int    `json:"shorteneddata"`
	Report          string `json:"report"`
	Quiet           bool   `json:"quiet"`
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path) // For read access.
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
