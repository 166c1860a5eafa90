package jobfile

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/qccodec/internal/keywords"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// bodyItem is an attribute or a block, positioned by its source offset.
type bodyItem struct {
	offset int
	attr   *hclsyntax.Attribute
	block  *hclsyntax.Block
}

func decodeKeywords(body hcl.Body) (keywords.Map, hcl.Diagnostics) {
	syn, ok := body.(*hclsyntax.Body)
	if !ok {
		return keywords.Map{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported keywords syntax",
			Detail:   "Keywords must be written in native HCL syntax.",
		}}
	}
	return decodeKeywordBody(syn, true)
}

// decodeKeywordBody converts a body to a keyword map in source order. Blocks
// become block values; they are only accepted at the top level.
func decodeKeywordBody(body *hclsyntax.Body, allowBlocks bool) (keywords.Map, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		items = append(items, bodyItem{offset: a.SrcRange.Start.Byte, attr: a})
	}
	for _, b := range body.Blocks {
		items = append(items, bodyItem{offset: b.TypeRange.Start.Byte, block: b})
	}
	slices.SortFunc(items, func(a, b bodyItem) int { return cmp.Compare(a.offset, b.offset) })

	var m keywords.Map
	for _, it := range items {
		if it.attr != nil {
			if _, exists := m.Get(it.attr.Name); exists {
				diags = append(diags, duplicateKeyword(it.attr.Name, it.attr.NameRange))
				continue
			}
			v, d := attributeValue(it.attr)
			diags = append(diags, d...)
			if !d.HasErrors() {
				m.Set(it.attr.Name, v)
			}
			continue
		}

		b := it.block
		if !allowBlocks {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Nested keyword block",
				Detail:   fmt.Sprintf("Keyword block %q is inside another keyword block; keyword blocks cannot be nested.", b.Type),
				Subject:  b.TypeRange.Ptr(),
			})
			continue
		}
		if len(b.Labels) > 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected block label",
				Detail:   fmt.Sprintf("Keyword block %q takes no labels.", b.Type),
				Subject:  b.LabelRanges[0].Ptr(),
			})
			continue
		}
		if _, exists := m.Get(b.Type); exists {
			diags = append(diags, duplicateKeyword(b.Type, b.TypeRange))
			continue
		}
		sub, d := decodeKeywordBody(b.Body, false)
		diags = append(diags, d...)
		m.Set(b.Type, keywords.Block(sub))
	}
	return m, diags
}

func duplicateKeyword(name string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Duplicate keyword",
		Detail:   fmt.Sprintf("Keyword %q is defined more than once.", name),
		Subject:  rng.Ptr(),
	}
}

func attributeValue(a *hclsyntax.Attribute) (keywords.Value, hcl.Diagnostics) {
	val, diags := a.Expr.Value(nil)
	if diags.HasErrors() {
		return keywords.Value{}, diags
	}
	v, err := fromCty(val)
	if err != nil {
		return keywords.Value{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported keyword value",
			Detail:   fmt.Sprintf("Keyword %q: %s.", a.Name, err),
			Subject:  a.Expr.Range().Ptr(),
		}}
	}
	return v, nil
}

// fromCty converts a scalar cty value. Whole numbers become integers.
func fromCty(val cty.Value) (keywords.Value, error) {
	if !val.IsKnown() || val.IsNull() {
		return keywords.Value{}, fmt.Errorf("value must be known and not null")
	}
	switch ty := val.Type(); {
	case ty.Equals(cty.String):
		return keywords.String(val.AsString()), nil
	case ty.Equals(cty.Bool):
		return keywords.Bool(val.True()), nil
	case ty.Equals(cty.Number):
		if val.AsBigFloat().IsInt() {
			var i int64
			if err := gocty.FromCtyValue(val, &i); err == nil {
				return keywords.Int(i), nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return keywords.Value{}, err
		}
		return keywords.Float(f), nil
	default:
		return keywords.Value{}, fmt.Errorf("expected a string, number or bool, got %s; write nested keywords as a block", ty.FriendlyName())
	}
}

// toCty is the inverse of fromCty for scalar values.
func toCty(v keywords.Value) (cty.Value, error) {
	switch v.Kind() {
	case keywords.KindString:
		s, _ := v.AsString()
		return cty.StringVal(s), nil
	case keywords.KindInt:
		i, _ := v.AsInt()
		return cty.NumberIntVal(i), nil
	case keywords.KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, fmt.Errorf("%v cannot be written as an HCL number", f)
		}
		return cty.NumberFloatVal(f), nil
	case keywords.KindBool:
		b, _ := v.AsBool()
		return cty.BoolVal(b), nil
	}
	return cty.NilVal, fmt.Errorf("%s values have no scalar form", v.Kind())
}
