package dataloader

import (
	"maps"
	"reflect"
	"slices"
)

// ValueCloner is an interface for cloning values.
// A loader with a ValueCloner hands a clone of the loaded value to every waiter,
// so that waiters sharing a cached future cannot see each other's modifications.
// The CloneValue method should return a deep copy of the input value.
type ValueCloner[V ValueConstraint] interface {
	CloneValue(V) V
}

// ValueClonerFunc is a function type that implements the ValueCloner interface.
type ValueClonerFunc[V ValueConstraint] func(v V) V

// CloneValue calls the function.
func (f ValueClonerFunc[V]) CloneValue(v V) V {
	return f(v)
}

// NopValueCloner is a value cloner that does not clone values.
// It is the default of the loader.
type NopValueCloner[V ValueConstraint] struct{}

// CloneValue returns the input value.
func (NopValueCloner[V]) CloneValue(v V) V {
	return v
}

// DefaultValueCloner returns a cloner for the given value type.
//
// It uses the Clone or DeepCopy method if the type has one.
// Values of primitive types are returned as is, and slices and maps of primitive types are
// shallow-copied. It panics for the other types.
func DefaultValueCloner[V ValueConstraint]() ValueCloner[V] {
	type cloner interface {
		Clone() V
	}
	type deepCopier interface {
		DeepCopy() V
	}

	var zero V
	switch any(zero).(type) {
	case cloner:
		return ValueClonerFunc[V](func(v V) V {
			return any(v).(cloner).Clone()
		})
	case deepCopier:
		return ValueClonerFunc[V](func(v V) V {
			return any(v).(deepCopier).DeepCopy()
		})
	}

	typ := reflect.TypeFor[V]()
	switch {
	case isPrimitive(typ):
		return NopValueCloner[V]{}
	case typ.Kind() == reflect.Slice && isPrimitive(typ.Elem()):
		return ValueClonerFunc[V](func(v V) V {
			rv := reflect.ValueOf(v)
			if rv.IsNil() {
				return v
			}
			c := reflect.MakeSlice(typ, rv.Len(), rv.Len())
			reflect.Copy(c, rv)
			return c.Interface().(V)
		})
	case typ.Kind() == reflect.Map && isPrimitive(typ.Key()) && isPrimitive(typ.Elem()):
		return ValueClonerFunc[V](func(v V) V {
			rv := reflect.ValueOf(v)
			if rv.IsNil() {
				return v
			}
			c := reflect.MakeMapWithSize(typ, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				c.SetMapIndex(iter.Key(), iter.Value())
			}
			return c.Interface().(V)
		})
	default:
		panic("value type does not have Clone or DeepCopy method: " + typ.String())
	}
}

func isPrimitive(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

// SliceValueCloner returns a cloner that clones each element of a slice with the element cloner.
func SliceValueCloner[E any](elem ValueCloner[E]) ValueCloner[[]E] {
	return ValueClonerFunc[[]E](func(v []E) []E {
		if v == nil {
			return nil
		}
		c := slices.Clone(v)
		for i := range c {
			c[i] = elem.CloneValue(c[i])
		}
		return c
	})
}

// MapValueCloner returns a cloner that clones each value of a map with the element cloner.
func MapValueCloner[K comparable, E any](elem ValueCloner[E]) ValueCloner[map[K]E] {
	return ValueClonerFunc[map[K]E](func(v map[K]E) map[K]E {
		if v == nil {
			return nil
		}
		c := maps.Clone(v)
		for k, e := range c {
			c[k] = elem.CloneValue(e)
		}
		return c
	})
}
