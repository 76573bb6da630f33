package gondarray

// ValidateOpt bundles validation options.
type ValidateOpt struct {
	// ObjectSample bounds how many elements of an object-typed array are
	// checked against the dtype constraint. 0 means the default of 1 (the
	// first element), -1 means every element. Sampling trades precision
	// for bounded cost; exhaustive checking is O(size).
	ObjectSample int

	// Registry overrides the registry used for matching. Nil means the
	// package default.
	Registry *Registry
}

func (o ValidateOpt) sampleLimit() int {
	switch {
	case o.ObjectSample == 0:
		return 1
	case o.ObjectSample < 0:
		return -1
	}
	return o.ObjectSample
}

// SerializeOpt bundles serialization options, the per-call validation
// context consulted by Serialize and, transitively, by the deserialize
// stage on reload. Options are additive and independent; RelativeTo takes
// precedence over AbsolutePaths since it is the more specific request.
type SerializeOpt struct {
	// RoundTrip requests the adapter-specific descriptor form instead of
	// the lossy compact nested-list form.
	RoundTrip bool

	// MarkInterface wraps the output in an envelope naming the producing
	// interface, consumed on reload to bypass re-matching.
	MarkInterface bool

	// DumpArray embeds the full compact-form contents alongside the
	// round-trip descriptor.
	DumpArray bool

	// AbsolutePaths resolves descriptor paths to absolute form.
	AbsolutePaths bool

	// RelativeTo emits descriptor paths relative to the given directory.
	// Empty means relative to the process working directory.
	RelativeTo string

	// Registry overrides the registry used for output matching. Nil means
	// the package default.
	Registry *Registry
}

func lastOpt[T any](opts []T) T {
	var opt T
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
