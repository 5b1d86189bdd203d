package fca

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Incidence is a single (object, attribute) pair of the incidence relation.
type Incidence struct {
	Object    string
	Attribute string
}

// Context is a formal context K = (G, M, I): a set of objects G, a set of
// attributes M, and an incidence relation I between them.
//
// Objects and attributes are indexed densely in lexicographic name order,
// which makes every derived bitmap deterministic for a given input.
// Incidence pairs referencing undeclared objects or attributes are dropped
// silently; downstream canonicity depends on the vacuous-quantifier
// conventions in DeriveExtent and DeriveIntent, never on hard failures.
type Context struct {
	objects    []string
	attributes []string
	objIndex   map[string]int
	attrIndex  map[string]int

	objAttrs []*roaring.Bitmap // object index -> attribute indices
	attrObjs []*roaring.Bitmap // attribute index -> object indices

	allObjects    *roaring.Bitmap
	allAttributes *roaring.Bitmap
}

// NewContext builds an immutable context from object names, attribute names,
// and incidence pairs. Duplicate names and duplicate pairs are collapsed.
func NewContext(objects, attributes []string, incidence []Incidence) *Context {
	c := &Context{
		objects:       dedupeSorted(objects),
		attributes:    dedupeSorted(attributes),
		allObjects:    roaring.New(),
		allAttributes: roaring.New(),
	}

	c.objIndex = make(map[string]int, len(c.objects))
	for i, name := range c.objects {
		c.objIndex[name] = i
		c.allObjects.Add(uint32(i))
	}
	c.attrIndex = make(map[string]int, len(c.attributes))
	for i, name := range c.attributes {
		c.attrIndex[name] = i
		c.allAttributes.Add(uint32(i))
	}

	c.objAttrs = make([]*roaring.Bitmap, len(c.objects))
	for i := range c.objAttrs {
		c.objAttrs[i] = roaring.New()
	}
	c.attrObjs = make([]*roaring.Bitmap, len(c.attributes))
	for i := range c.attrObjs {
		c.attrObjs[i] = roaring.New()
	}

	for _, pair := range incidence {
		oi, okObj := c.objIndex[pair.Object]
		ai, okAttr := c.attrIndex[pair.Attribute]
		if !okObj || !okAttr {
			continue // out-of-domain pair: dropped, never an error
		}
		c.objAttrs[oi].Add(uint32(ai))
		c.attrObjs[ai].Add(uint32(oi))
	}

	return c
}

func dedupeSorted(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// ObjectCount returns |G|.
func (c *Context) ObjectCount() int { return len(c.objects) }

// AttributeCount returns |M|.
func (c *Context) AttributeCount() int { return len(c.attributes) }

// Objects returns the object names in index order.
func (c *Context) Objects() []string {
	out := make([]string, len(c.objects))
	copy(out, c.objects)
	return out
}

// Attributes returns the attribute names in index order.
func (c *Context) Attributes() []string {
	out := make([]string, len(c.attributes))
	copy(out, c.attributes)
	return out
}

// AttributeName returns the name at the given attribute index.
func (c *Context) AttributeName(i int) string { return c.attributes[i] }

// ObjectName returns the name at the given object index.
func (c *Context) ObjectName(i int) string { return c.objects[i] }

// HasAttribute reports whether the named attribute is declared.
func (c *Context) HasAttribute(name string) bool {
	_, ok := c.attrIndex[name]
	return ok
}

// Incident reports whether the named object carries the named attribute.
// Unknown names report false.
func (c *Context) Incident(object, attribute string) bool {
	oi, ok := c.objIndex[object]
	if !ok {
		return false
	}
	ai, ok := c.attrIndex[attribute]
	if !ok {
		return false
	}
	return c.objAttrs[oi].Contains(uint32(ai))
}

// AttributeSet builds a bitmap from attribute names.
// Unknown names are ignored, matching the dropped-pair convention.
func (c *Context) AttributeSet(names ...string) *roaring.Bitmap {
	b := roaring.New()
	for _, n := range names {
		if i, ok := c.attrIndex[n]; ok {
			b.Add(uint32(i))
		}
	}
	return b
}

// ObjectSet builds a bitmap from object names, ignoring unknown names.
func (c *Context) ObjectSet(names ...string) *roaring.Bitmap {
	b := roaring.New()
	for _, n := range names {
		if i, ok := c.objIndex[n]; ok {
			b.Add(uint32(i))
		}
	}
	return b
}

// AttributeNames resolves a bitmap of attribute indices to sorted names.
func (c *Context) AttributeNames(b *roaring.Bitmap) []string {
	out := make([]string, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		out = append(out, c.attributes[it.Next()])
	}
	return out
}

// ObjectNames resolves a bitmap of object indices to sorted names.
func (c *Context) ObjectNames(b *roaring.Bitmap) []string {
	out := make([]string, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		out = append(out, c.objects[it.Next()])
	}
	return out
}

// DeriveExtent is the derivation operator for attribute sets:
// the objects possessing every attribute in attrs.
// DeriveExtent(empty) is all objects (vacuous universal quantifier).
func (c *Context) DeriveExtent(attrs *roaring.Bitmap) *roaring.Bitmap {
	if attrs.IsEmpty() {
		return c.allObjects.Clone()
	}
	var result *roaring.Bitmap
	it := attrs.Iterator()
	for it.HasNext() {
		objs := c.attrObjs[it.Next()]
		if result == nil {
			result = objs.Clone()
		} else {
			result.And(objs)
		}
	}
	return result
}

// DeriveIntent is the symmetric derivation operator for object sets:
// the attributes shared by every object in objs.
// DeriveIntent(empty) is all attributes.
func (c *Context) DeriveIntent(objs *roaring.Bitmap) *roaring.Bitmap {
	if objs.IsEmpty() {
		return c.allAttributes.Clone()
	}
	var result *roaring.Bitmap
	it := objs.Iterator()
	for it.HasNext() {
		attrs := c.objAttrs[it.Next()]
		if result == nil {
			result = attrs.Clone()
		} else {
			result.And(attrs)
		}
	}
	return result
}

// Closure computes the closure operator A -> A'' on attribute sets.
// It is idempotent, monotone, and extensive.
func (c *Context) Closure(attrs *roaring.Bitmap) *roaring.Bitmap {
	return c.DeriveIntent(c.DeriveExtent(attrs))
}

// IsClosed reports whether attrs equals its own closure.
func (c *Context) IsClosed(attrs *roaring.Bitmap) bool {
	return c.Closure(attrs).Equals(attrs)
}
