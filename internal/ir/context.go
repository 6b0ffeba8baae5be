package ir

import "dxir/internal/diag"

// Context is the compilation context: it owns interning state shared
// across modules and carries the diagnostic sink passes report into.
type Context struct {
	reporter diag.Reporter

	valueMD map[Value]*ValueAsMetadata
	mdValue map[Metadata]*MetadataAsValue
}

// NewContext creates a context reporting into r. A nil reporter
// discards diagnostics.
func NewContext(r diag.Reporter) *Context {
	if r == nil {
		r = diag.NopReporter{}
	}
	return &Context{
		reporter: r,
		valueMD:  make(map[Value]*ValueAsMetadata),
		mdValue:  make(map[Metadata]*MetadataAsValue),
	}
}

// SetReporter replaces the diagnostic sink.
func (c *Context) SetReporter(r diag.Reporter) {
	if r == nil {
		r = diag.NopReporter{}
	}
	c.reporter = r
}

// Diagnose routes a diagnostic to the context's sink.
func (c *Context) Diagnose(d diag.Diagnostic) {
	c.reporter.Report(d)
}

// ValueAsMetadata returns the interned metadata wrapper for v,
// creating it on first request.
func (c *Context) ValueAsMetadata(v Value) *ValueAsMetadata {
	if md, ok := c.valueMD[v]; ok {
		return md
	}
	md := &ValueAsMetadata{V: v}
	c.valueMD[v] = md
	return md
}

// ValueAsMetadataIfExists returns the interned wrapper for v, nil if
// it was never created. Values with no wrapper have no debug-value
// bindings.
func (c *Context) ValueAsMetadataIfExists(v Value) *ValueAsMetadata {
	return c.valueMD[v]
}

// MetadataAsValue returns the interned value view of md, creating it
// on first request.
func (c *Context) MetadataAsValue(md Metadata) *MetadataAsValue {
	if v, ok := c.mdValue[md]; ok {
		return v
	}
	v := &MetadataAsValue{valueBase: valueBase{typ: MetadataType()}, MD: md}
	c.mdValue[md] = v
	return v
}

// MetadataAsValueIfExists returns the interned value view of md, nil
// if it was never created.
func (c *Context) MetadataAsValueIfExists(md Metadata) *MetadataAsValue {
	return c.mdValue[md]
}
