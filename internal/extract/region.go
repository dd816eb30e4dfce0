package extract

// Region tracks whether the stream is inside a container opened by a tag with
// a given class. Same-tag containers opened inside the region are counted so
// the region only closes with the element that opened it.
type Region struct {
	tag    string
	class  string
	active bool
	depth  int
}

// NewRegion returns a region opened by <tag class="class">.
func NewRegion(tag, class string) *Region {
	return &Region{tag: tag, class: normalizeClass(class)}
}

// Open processes an open-tag event.
func (r *Region) Open(name string, attrs []Attr) {
	if name != r.tag {
		return
	}
	if !r.active {
		if hasClass(attrs, r.class) {
			r.active = true
			r.depth = 0
		}
		return
	}
	r.depth++
}

// Close processes a close-tag event.
func (r *Region) Close(name string) {
	if name != r.tag || !r.active {
		return
	}
	if r.depth == 0 {
		r.active = false
		return
	}
	r.depth--
}

// Active reports whether the stream is inside the region.
func (r *Region) Active() bool { return r.active }

// Depth returns the number of nested same-tag containers currently open.
func (r *Region) Depth() int { return r.depth }
