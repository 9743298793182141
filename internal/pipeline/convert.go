package pipeline

import (
	"bytes"
	"fmt"

	"profilecut/internal"
	"profilecut/internal/config"
)

type Converter struct {
	cfg config.Config
}

func NewConverter(cfg config.Config) *Converter {
	return &Converter{cfg: cfg}
}

type ConvertResult struct {
	Output   []byte
	Profile  internal.Profile
	NumPages int
	MaxItems int
	Preview  internal.Table
}

// Convert runs one conversion end to end: decode the batch bytes, transform,
// serialize. Each call is self-contained; the converter holds no state
// between invocations. NumPages is derived from the serialized table (column
// count minus the label column), which is what the shell displays.
func (c *Converter) Convert(raw []byte, format internal.InputFormat) (ConvertResult, error) {
	var (
		table internal.Table
		err   error
	)
	switch format {
	case internal.FormatCSV:
		table, err = ParseBatchCSV(raw)
	case internal.FormatXLSX:
		table, err = ParseBatchXLSX(raw)
	default:
		return ConvertResult{}, fmt.Errorf("unsupported input format: %s", format)
	}
	if err != nil {
		return ConvertResult{}, err
	}

	profile := TransformBatchToProfile(table)

	buf := bytes.NewBuffer(nil)
	if err := WriteProfileCSV(buf, profile); err != nil {
		return ConvertResult{}, err
	}

	return ConvertResult{
		Output:   buf.Bytes(),
		Profile:  profile,
		NumPages: profile.Width() - 1,
		MaxItems: profile.MaxItems,
		Preview:  table.Head(c.cfg.PreviewRows),
	}, nil
}
