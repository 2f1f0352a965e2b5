// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/tgbridge/internal/errors"
)

// stdin is read when the statement argument is "-".
var stdin io.Reader = os.Stdin

// paramFlags are the parameter sources shared by rewrite and query.
type paramFlags struct {
	file   string
	inline string
}

func (p *paramFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&p.file, "params", "p", "", "YAML or JSON file with statement parameters")
	fs.StringVar(&p.inline, "params-json", "", "Statement parameters as a JSON object (overrides --params keys)")
}

// load merges the parameter file and the inline JSON. JSON numbers keep
// their exact text.
func (p paramFlags) load() (map[string]any, error) {
	params := make(map[string]any)

	if p.file != "" {
		data, err := os.ReadFile(p.file)
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("Parameter file not found", p.file+" does not exist", "Check the --params path")
		}
		if err != nil {
			return nil, errors.NewInputError("Cannot read parameter file", err.Error(), "")
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			return nil, errors.NewInputError("Cannot parse parameter file",
				fmt.Sprintf("%s: %v", p.file, err), "Parameters must be a YAML or JSON mapping")
		}
	}

	if p.inline != "" {
		var inline map[string]any
		dec := json.NewDecoder(strings.NewReader(p.inline))
		dec.UseNumber()
		if err := dec.Decode(&inline); err != nil {
			return nil, errors.NewInputError("Cannot parse --params-json", err.Error(),
				`Pass a JSON object, e.g. --params-json '{"id": 7}'`)
		}
		for k, v := range inline {
			params[k] = v
		}
	}
	return params, nil
}

// statementText returns the statement named by arg, reading stdin for "-".
func statementText(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, stdin); err != nil {
		return "", errors.NewInputError("Cannot read statement from stdin", err.Error(), "")
	}
	return strings.TrimSpace(buf.String()), nil
}
