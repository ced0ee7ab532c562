package gpubuf

// PoolBuilderOption is a function that configures a Pool instance during construction.
type PoolBuilderOption func(*pool)

// WithVertexCapacity sets the size in bytes of the shared vertex buffer.
//
// Parameters:
//   - bytes: the capacity in bytes
//
// Returns:
//   - PoolBuilderOption: a function that applies the vertex capacity option to a pool
func WithVertexCapacity(bytes uint64) PoolBuilderOption {
	return func(p *pool) {
		p.vertexCapacity = bytes
	}
}

// WithIndexCapacity sets the size in bytes of the shared index buffer.
//
// Parameters:
//   - bytes: the capacity in bytes
//
// Returns:
//   - PoolBuilderOption: a function that applies the index capacity option to a pool
func WithIndexCapacity(bytes uint64) PoolBuilderOption {
	return func(p *pool) {
		p.indexCapacity = bytes
	}
}

// WithParamCapacity sets the size in bytes of the shared parameter (storage) buffer.
//
// Parameters:
//   - bytes: the capacity in bytes
//
// Returns:
//   - PoolBuilderOption: a function that applies the parameter capacity option to a pool
func WithParamCapacity(bytes uint64) PoolBuilderOption {
	return func(p *pool) {
		p.paramCapacity = bytes
	}
}
