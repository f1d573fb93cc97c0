package face

// Binding is the variant data a mesh was built from: either Unresolved
// (a placeholder mesh, nothing bound yet) or Resolved.
type Binding interface {
	binding()
}

// Unresolved marks a placeholder with no variant data.
type Unresolved struct{}

// Resolved carries the variant data a mesh was composited from.
type Resolved struct {
	Data *VariationFaceData
}

func (Unresolved) binding() {}
func (Resolved) binding()   {}

// Bind returns Resolved for non-nil data and Unresolved otherwise.
func Bind(data *VariationFaceData) Binding {
	if data == nil {
		return Unresolved{}
	}
	return Resolved{Data: data}
}
