package jobfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/qccodec/internal/keywords"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Marshal renders job as a job file that Parse reads back to an equal job.
// A float keyword with an integral value reads back as an integer.
func Marshal(job model.JobSpec) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("calctype", cty.StringVal(job.CalcType.String()))
	body.AppendNewline()

	mb := body.AppendNewBlock("model", nil).Body()
	mb.SetAttributeValue("method", cty.StringVal(job.Model.Method))
	if job.Model.Basis != "" {
		mb.SetAttributeValue("basis", cty.StringVal(job.Model.Basis))
	}
	body.AppendNewline()

	sb := body.AppendNewBlock("structure", nil).Body()
	sb.SetAttributeValue("charge", cty.NumberIntVal(int64(job.Structure.Charge)))
	sb.SetAttributeValue("multiplicity", cty.NumberIntVal(int64(job.Structure.Multiplicity)))
	sb.SetAttributeValue("symbols", symbolList(job.Structure.Symbols))
	sb.SetAttributeValue("geometry", geometryList(job.Structure.Geometry))

	if job.Keywords.Len() > 0 {
		body.AppendNewline()
		kb := body.AppendNewBlock("keywords", nil).Body()
		if err := writeKeywords(kb, job.Keywords, true); err != nil {
			return nil, err
		}
	}
	return hclwrite.Format(f.Bytes()), nil
}

func writeKeywords(body *hclwrite.Body, kw keywords.Map, allowBlocks bool) error {
	for key, v := range kw.All() {
		if !hclsyntax.ValidIdentifier(key) {
			return fmt.Errorf("keyword %q is not a valid HCL identifier", key)
		}
		if sub, ok := v.AsBlock(); ok {
			if !allowBlocks {
				return fmt.Errorf("keyword %q: keyword blocks cannot be nested", key)
			}
			if err := writeKeywords(body.AppendNewBlock(key, nil).Body(), sub, false); err != nil {
				return err
			}
			continue
		}
		val, err := toCty(v)
		if err != nil {
			return fmt.Errorf("keyword %q: %w", key, err)
		}
		body.SetAttributeValue(key, val)
	}
	return nil
}

func symbolList(symbols []string) cty.Value {
	if len(symbols) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(symbols))
	for i, s := range symbols {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

func geometryList(geometry [][3]float64) cty.Value {
	if len(geometry) == 0 {
		return cty.ListValEmpty(cty.List(cty.Number))
	}
	rows := make([]cty.Value, len(geometry))
	for i, c := range geometry {
		rows[i] = cty.ListVal([]cty.Value{
			cty.NumberFloatVal(c[0]),
			cty.NumberFloatVal(c[1]),
			cty.NumberFloatVal(c[2]),
		})
	}
	return cty.ListVal(rows)
}
