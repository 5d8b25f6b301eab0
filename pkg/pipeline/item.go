// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"

	"scriptcore/pkg/script"
	"scriptcore/pkg/transform"
)

// Item is a pipeline stage before it has been resolved into a Script.
// An item is either an existing Script or a value convertible to one
// (a byte transformer, a line transformer, or a per-line mapper).
type Item interface {
	resolve(ctx context.Context, index int) *script.Script
}

type scriptItem struct{ s *script.Script }

func (i scriptItem) resolve(context.Context, int) *script.Script { return i.s }

// Of wraps an already-constructed Script as a pipeline Item.
func Of(s *script.Script) Item { return scriptItem{s: s} }

type byteItem struct {
	name string
	fn   transform.ByteFunc
}

func (i byteItem) resolve(ctx context.Context, index int) *script.Script {
	return transform.New(ctx, itemName(i.name, index), i.fn)
}

// OfBytes wraps a byte transformer as a pipeline Item. An empty name is
// replaced with a positional placeholder.
func OfBytes(name string, fn transform.ByteFunc) Item { return byteItem{name: name, fn: fn} }

type lineItem struct {
	name string
	fn   transform.LineFunc
}

func (i lineItem) resolve(ctx context.Context, index int) *script.Script {
	return transform.NewLines(ctx, itemName(i.name, index), i.fn)
}

// OfLines wraps a line transformer as a pipeline Item.
func OfLines(name string, fn transform.LineFunc) Item { return lineItem{name: name, fn: fn} }

type lineMapItem struct {
	name string
	fn   func(line string) (string, bool)
}

func (i lineMapItem) resolve(ctx context.Context, index int) *script.Script {
	return transform.NewLineMap(ctx, itemName(i.name, index), i.fn)
}

// OfLineMap wraps a per-line mapper as a pipeline Item, the trivial
// reduction of OfLines.
func OfLineMap(name string, fn func(line string) (string, bool)) Item {
	return lineMapItem{name: name, fn: fn}
}

func itemName(name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("pipeline[%d]", index)
}
