package schema

// Project trims raw down to the substructure a schema's KeyMap recognizes:
// for a Hash, only the declared member fields survive (recursively); for an
// Array, every element is projected through the element schema; scalars
// pass through unchanged. Project never reports errors, only shape, and
// is meant to run once the caller already knows raw is present.
func Project(s Schema, raw any) any {
	switch sc := s.(type) {
	case *hashSchema:
		obj, ok := toObject(raw)
		if !ok {
			return raw
		}
		out := make(map[string]any, len(sc.fields))
		for _, f := range sc.fields {
			v, present := obj[f.Name]
			if !present {
				continue
			}
			out[f.Name] = Project(f.Schema, v)
		}
		return out
	case *arraySchema:
		items, ok := toSlice(raw)
		if !ok {
			return raw
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Project(sc.element, item)
		}
		return out
	default:
		return raw
	}
}
