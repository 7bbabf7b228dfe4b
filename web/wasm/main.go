//go:build js && wasm

package main

import (
	"encoding/json"
	"strings"
	"syscall/js"

	"github.com/DaveGold/Magion-Scatterplot-Matrix/dataset"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/internal/webdemo"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/render/svg"
	"github.com/DaveGold/Magion-Scatterplot-Matrix/splom"
)

var (
	symbol *webdemo.Symbol
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	// createScatterMatrix(data, id, options) renders into the element with
	// the given id and returns an error message or null.
	api.Set("createScatterMatrix", export(func(args []js.Value) any {
		if len(args) < 2 {
			return "createScatterMatrix: data and id required"
		}
		ds, err := decodeDataset(args[0])
		if err != nil {
			return err.Error()
		}
		cfg := splom.DefaultConfig()
		if len(args) > 2 {
			o, err := decodeOverrides(args[2])
			if err != nil {
				return err.Error()
			}
			cfg = o.Merge(cfg)
		}
		m, err := splom.Build(ds, cfg)
		if err != nil {
			return err.Error()
		}
		doc, err := svg.String(m)
		if err != nil {
			return err.Error()
		}
		setContent(args[1].String(), doc)
		return js.Null()
	}))

	api.Set("init", export(func(args []js.Value) any {
		if len(args) < 1 {
			return js.Null()
		}
		id := args[0].String()
		symbol = webdemo.NewSymbol(id, webdemo.WithOutput(func(doc string) { setContent(id, doc) }))
		return js.Null()
	}))

	api.Set("update", export(func(args []js.Value) any {
		if symbol == nil || len(args) < 1 {
			return js.Null()
		}
		ds, err := decodeDataset(args[0])
		if err != nil {
			return err.Error()
		}
		symbol.OnDataUpdate(ds)
		return js.Null()
	}))

	api.Set("configure", export(func(args []js.Value) any {
		if symbol == nil || len(args) < 1 {
			return js.Null()
		}
		o, err := decodeOverrides(args[0])
		if err != nil {
			return err.Error()
		}
		prev := symbol.Config()
		next := prev
		next.Matrix = o.Merge(prev.Matrix)
		if len(args) > 1 && args[1].Type() == js.TypeNumber {
			next.Points = args[1].Int()
		}
		symbol.OnConfigChange(next, prev)
		return js.Null()
	}))

	api.Set("resize", export(func(args []js.Value) any {
		if symbol == nil || len(args) < 2 {
			return js.Null()
		}
		symbol.OnResize(args[0].Float(), args[1].Float())
		return js.Null()
	}))

	api.Set("lastMessage", export(func(args []js.Value) any {
		if symbol == nil {
			return ""
		}
		return symbol.LastMessage()
	}))

	js.Global().Set("SplomDemo", api)
	select {}
}

func stringify(v js.Value) string {
	return js.Global().Get("JSON").Call("stringify", v).String()
}

func decodeDataset(v js.Value) (dataset.Dataset, error) {
	return dataset.Decode(strings.NewReader(stringify(v)))
}

func decodeOverrides(v js.Value) (splom.Overrides, error) {
	var o splom.Overrides
	if v.IsUndefined() || v.IsNull() {
		return o, nil
	}
	err := json.Unmarshal([]byte(stringify(v)), &o)
	return o, err
}

func setContent(id, doc string) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return
	}
	el.Set("innerHTML", doc)
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
