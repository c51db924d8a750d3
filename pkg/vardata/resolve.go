package vardata

// Resolver maps element names to layers and paths of one document instance.
// Build a new Resolver for every duplicate: element identities differ
// between duplicates.
type Resolver struct {
	layers map[string]Layer
	paths  map[string]Path
}

// NewResolver indexes every layer and path of doc by name. When two
// elements of the same kind share a name, the later one in listing order
// wins.
func NewResolver(doc Document) *Resolver {
	r := &Resolver{
		layers: make(map[string]Layer),
		paths:  make(map[string]Path),
	}
	for _, l := range doc.Layers() {
		r.layers[l.Name()] = l
	}
	for _, p := range doc.Paths() {
		r.paths[p.Name()] = p
	}
	return r
}

// Resolve returns the element bound to name. Layers take precedence over
// paths of the same name.
func (r *Resolver) Resolve(name string) (Element, error) {
	if l, ok := r.layers[name]; ok {
		return Element{Kind: ElementLayer, Name: name, Layer: l}, nil
	}
	if p, ok := r.paths[name]; ok {
		return Element{Kind: ElementPath, Name: name, Path: p}, nil
	}
	return Element{}, &BindingError{Name: name}
}
