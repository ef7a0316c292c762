package value

// Equal implements WFL's structural value equality (spec.md §5): numbers
// and text compare by value, lists/maps compare element-wise, containers
// compare by identity (reference equality), everything else falls back
// to identity. visited guards against cycles in self-referential
// lists/maps; pass nil from external callers.
func Equal(a, b Value, visited map[[2]any]bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Number:
		return av == b.(Number)
	case Text:
		return av == b.(Text)
	case Boolean:
		return av == b.(Boolean)
	case Nothing:
		return true
	case *List:
		bv := b.(*List)
		if av == bv {
			return true
		}
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		if visited == nil {
			visited = make(map[[2]any]bool)
		}
		key := [2]any{av, bv}
		if visited[key] {
			return true // already comparing this pair higher up the stack
		}
		visited[key] = true
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i], visited) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if av == bv {
			return true
		}
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			va, _ := av.Get(k)
			vb, ok := bv.Get(k)
			if !ok || !Equal(va, vb, visited) {
				return false
			}
		}
		return true
	case *ContainerInstance:
		return av == b.(*ContainerInstance)
	default:
		return a == b
	}
}

// DeepClone copies a value so two WFL variables never unintentionally
// alias the same mutable List/Map after a `store`/`change`. Functions,
// container instances, futures, and handles are reference types by
// design (spec.md §5) and are returned as-is.
func DeepClone(v Value) Value {
	switch vv := v.(type) {
	case *List:
		elems := make([]Value, len(vv.Elements))
		for i, e := range vv.Elements {
			elems[i] = DeepClone(e)
		}
		return &List{Elements: elems}
	case *Map:
		clone := NewMap()
		for _, k := range vv.Keys() {
			val, _ := vv.Get(k)
			clone.Set(k, DeepClone(val))
		}
		return clone
	default:
		return v
	}
}
