package source

import (
	"cmp"
	"fmt"
	"math/big"
	"slices"

	"github.com/agentic-research/shapekit/api"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// DecodeHCL parses an HCL native-syntax document into an ordered tree.
//
// Attributes become keys holding their values, in source order. A block
// nests under its type and then under each of its labels, so
// `resource "a" "b" { ... }` lands at resource.a.b. Blocks repeating the
// same address collect into an array. Expressions are evaluated without
// variables or functions, so only constant documents load.
func DecodeHCL(data []byte, filename string) (any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode hcl: %w", diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("decode hcl: unexpected body %T", file.Body)
	}
	return fromBody(body)
}

type bodyItem struct {
	offset int
	attr   *hclsyntax.Attribute
	block  *hclsyntax.Block
}

func fromBody(body *hclsyntax.Body) (*api.Object, error) {
	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		items = append(items, bodyItem{offset: a.SrcRange.Start.Byte, attr: a})
	}
	for _, b := range body.Blocks {
		items = append(items, bodyItem{offset: b.TypeRange.Start.Byte, block: b})
	}
	slices.SortFunc(items, func(a, b bodyItem) int { return cmp.Compare(a.offset, b.offset) })

	obj := &api.Object{}
	for _, it := range items {
		if it.attr != nil {
			v, err := fromExpr(it.attr.Expr)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", it.attr.Name, err)
			}
			obj.Set(it.attr.Name, v)
			continue
		}
		inner, err := fromBody(it.block.Body)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", it.block.Type, err)
		}
		addBlock(obj, append([]string{it.block.Type}, it.block.Labels...), inner)
	}
	return obj, nil
}

func addBlock(parent *api.Object, path []string, body *api.Object) {
	key := path[0]
	existing, ok := parent.Get(key)

	if len(path) > 1 {
		next, isObj := existing.(*api.Object)
		if !isObj {
			next = &api.Object{}
			parent.Set(key, next)
		}
		addBlock(next, path[1:], body)
		return
	}

	switch prev := existing.(type) {
	case nil:
		if ok {
			parent.Set(key, []any{prev, body})
		} else {
			parent.Set(key, body)
		}
	case []any:
		parent.Set(key, append(prev, body))
	default:
		parent.Set(key, []any{prev, body})
	}
}

// fromExpr keeps the source order of object constructors, which cty
// objects lose.
func fromExpr(expr hclsyntax.Expression) (any, error) {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		obj := &api.Object{}
		for _, item := range e.Items {
			kv, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			ks, err := convert.Convert(kv, cty.String)
			if err != nil || ks.IsNull() || !ks.IsKnown() {
				return nil, fmt.Errorf("object key at %s is not a string", item.KeyExpr.Range())
			}
			v, err := fromExpr(item.ValueExpr)
			if err != nil {
				return nil, err
			}
			obj.Set(ks.AsString(), v)
		}
		return obj, nil
	case *hclsyntax.TupleConsExpr:
		arr := make([]any, 0, len(e.Exprs))
		for _, x := range e.Exprs {
			v, err := fromExpr(x)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	return fromCty(val)
}

func fromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value of type %s is not known", v.Type().FriendlyName())
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		return numberValue(v.AsBigFloat()), nil
	case t.IsListType(), t.IsSetType(), t.IsTupleType():
		arr := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			x, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			arr = append(arr, x)
		}
		return arr, nil
	case t.IsMapType(), t.IsObjectType():
		obj := &api.Object{}
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			x, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			obj.Set(k.AsString(), x)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", t.FriendlyName())
}

// numberValue mirrors api.DecodeJSON: integers that fit become int64,
// everything else float64.
func numberValue(f *big.Float) any {
	if f.IsInt() {
		if i, acc := f.Int64(); acc == big.Exact {
			return i
		}
	}
	v, _ := f.Float64()
	return v
}
