package xwire

import (
	"sync"

	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/object"
	"github.com/arloliu/xwire/refs"
	"github.com/arloliu/xwire/registry"
	"github.com/arloliu/xwire/typemeta"
)

// Context bundles the per-call state one top-level Serialize or
// Deserialize invocation needs: the byte buffer, reference trackers,
// envelope-scoped MetaString and TypeMeta tables, and the registry
// resolver. A Context is not safe for concurrent use — exactly like
// mebo's NumericEncoder/NumericDecoder, one top-level call owns one
// Context for its entire duration.
type Context struct {
	Buf    *buffer.Buffer
	Config *Config

	writeRefs  *refs.WriteTracker
	readRefs   *refs.ReadTracker
	msWrite    *object.MetaStringWriteTable
	msRead     *object.MetaStringReadTable
	metaWrite  *typemeta.WriteCache
	metaRead   *typemeta.ReadCache
	resolver   *registry.Resolver
}

// NewContext creates a fresh write-side or read-side Context sharing a
// buffer and configuration. Callers distinguish direction by which of
// WriteRefs()/ReadRefs() (and the matching MetaString/TypeMeta
// table accessors) they invoke; calling both is a programming error.
func NewContext(buf *buffer.Buffer, cfg *Config) *Context {
	return &Context{Buf: buf, Config: cfg}
}

// WithResolver attaches a registry.Resolver for read-side type lookups.
func (c *Context) WithResolver(r *registry.Resolver) *Context {
	c.resolver = r
	return c
}

// Resolver returns the attached registry.Resolver, or nil if none was
// set (write-side contexts don't need one).
func (c *Context) Resolver() *registry.Resolver { return c.resolver }

// WriteRefs lazily creates and returns this Context's write-side
// reference tracker.
func (c *Context) WriteRefs() *refs.WriteTracker {
	if c.writeRefs == nil {
		c.writeRefs = refs.NewWriteTracker()
	}

	return c.writeRefs
}

// ReadRefs lazily creates and returns this Context's read-side reference
// tracker.
func (c *Context) ReadRefs() *refs.ReadTracker {
	if c.readRefs == nil {
		c.readRefs = refs.NewReadTracker()
	}

	return c.readRefs
}

// MetaStringWriteTable lazily creates and returns this Context's
// envelope-scoped MetaString write table.
func (c *Context) MetaStringWriteTable() *object.MetaStringWriteTable {
	if c.msWrite == nil {
		c.msWrite = object.NewMetaStringWriteTable()
	}

	return c.msWrite
}

// MetaStringReadTable lazily creates and returns this Context's
// envelope-scoped MetaString read table.
func (c *Context) MetaStringReadTable() *object.MetaStringReadTable {
	if c.msRead == nil {
		c.msRead = object.NewMetaStringReadTable()
	}

	return c.msRead
}

// TypeMetaWriteCache lazily creates and returns this Context's
// envelope-scoped TypeMeta write cache.
func (c *Context) TypeMetaWriteCache() *typemeta.WriteCache {
	if c.metaWrite == nil {
		c.metaWrite = typemeta.NewWriteCache()
	}

	return c.metaWrite
}

// TypeMetaReadCache lazily creates and returns this Context's
// envelope-scoped TypeMeta read cache.
func (c *Context) TypeMetaReadCache() *typemeta.ReadCache {
	if c.metaRead == nil {
		c.metaRead = typemeta.NewReadCache()
	}

	return c.metaRead
}

// RefMode resolves the effective reference mode for a call site:
// explicit always wins; otherwise it falls back to the Config's
// track_ref default.
func (c *Context) RefMode(explicit *refs.Mode) refs.Mode {
	if explicit != nil {
		return *explicit
	}

	if c.Config.trackRef {
		return refs.ModeTracking
	}

	return refs.ModeNullOnly
}

// Reset clears all per-call state so the Context can be reused for a new
// top-level call on a fresh buffer.
func (c *Context) Reset() {
	if c.writeRefs != nil {
		c.writeRefs.Reset()
	}

	if c.readRefs != nil {
		c.readRefs.Reset()
	}

	if c.msWrite != nil {
		c.msWrite.Reset()
	}

	if c.msRead != nil {
		c.msRead.Reset()
	}

	if c.metaWrite != nil {
		c.metaWrite.Reset()
	}

	if c.metaRead != nil {
		c.metaRead.Reset()
	}
}

// contextPool recycles Contexts the way mebo's internal/pool.ByteBufferPool
// recycles buffers. Pooling is a caller convenience external to the core
// itself, per §5.
var contextPool = sync.Pool{
	New: func() any { return &Context{} },
}

// AcquireContext borrows a reset Context from the package-wide pool,
// attaching buf and cfg.
func AcquireContext(buf *buffer.Buffer, cfg *Config) *Context {
	ctx, _ := contextPool.Get().(*Context)
	ctx.Reset()
	ctx.Buf = buf
	ctx.Config = cfg
	ctx.resolver = nil

	return ctx
}

// ReleaseContext returns ctx to the package-wide pool.
func ReleaseContext(ctx *Context) {
	if ctx == nil {
		return
	}

	ctx.Buf = nil
	contextPool.Put(ctx)
}
