package search

// Path resolves segments one by one starting at tree. Numeric segments
// index arrays. ok is false as soon as a segment is missing or the current
// value is not a container.
func Path(tree any, segments ...string) (value any, ok bool) {
	current := tree
	for _, seg := range segments {
		current, ok = child(current, seg)
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Paths returns the dot path of every leaf in walk order. Arrays count as
// leaves and are not descended into; empty objects produce no path.
func Paths(tree any) []string {
	var paths []string
	walkPaths(tree, "", &paths)
	return paths
}

func walkPaths(v any, prefix string, paths *[]string) {
	if !isObject(v) {
		// Scalar or array: record the path
		if prefix != "" {
			*paths = append(*paths, prefix)
		}
		return
	}
	eachChild(v, func(k string, child any) bool {
		p := k
		if prefix != "" {
			p = prefix + "." + k
		}
		walkPaths(child, p, paths)
		return true
	})
}
