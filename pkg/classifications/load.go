package classifications

import (
	"io/fs"

	"github.com/goccy/go-yaml"

	"github.com/gridglue/gridglue/internal/embedded"
	"github.com/gridglue/gridglue/pkg/errors"
)

// Table names and their embedded reference files.
const (
	accountsTable = "ferc_accounts"
	accountsFile  = "reference/ferc_accounts.yaml"

	depreciationLinesTable = "ferc_depreciation_lines"
	depreciationLinesFile  = "reference/ferc_depreciation_lines.yaml"
)

// Accounts returns the FERC account table populated from the embedded
// reference list: account numbers from the FERC Uniform System of Accounts
// for Electric Plant (18 CFR Part 101).
func Accounts() (*Table, error) {
	return fromFS(embedded.FS, accountsFile, accountsTable)
}

// DepreciationLines returns the FERC depreciation line table populated from
// the embedded reference list: line identifiers from FERC Form 1 page 219,
// Accumulated Provision for Depreciation of Electric Utility Plant.
func DepreciationLines() (*Table, error) {
	return fromFS(embedded.FS, depreciationLinesFile, depreciationLinesTable)
}

// fromFS builds a table from a YAML reference list on the given filesystem.
func fromFS(fsys fs.FS, file, name string) (*Table, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, errors.WrapIO("read", file, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}

	table := NewTable(name)
	if err := table.Load(entries); err != nil {
		return nil, err
	}
	return table, nil
}
