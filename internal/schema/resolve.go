package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// TagKey is the struct tag consulted for field annotations.
const TagKey = "lightjson"

// ErrNotStruct is returned when a descriptor is requested for a non-struct type.
var ErrNotStruct = errors.New("schema: type is not a struct")

// Field describes one bindable field of a record.
type Field struct {
	Name    string       // Go field name.
	Key     string       // JSON member key after renaming.
	Renamed bool         // Key came from an annotation.
	Index   []int        // Path from the record root through embedded structs.
	Type    reflect.Type // Declared type.
	Tag     Tag
	Depth   int // 0 for fields declared on the record itself.
}

// Descriptor is the ordered list of bindable fields of a struct type.
type Descriptor struct {
	Type   reflect.Type
	Fields []Field
}

var descriptors sync.Map // reflect.Type -> *Descriptor

// Resolve returns the descriptor of t (or of the struct t points to). The
// result is computed once per type and shared.
//
// Fields are emitted as: the struct's own fields in declaration order, then
// each embedded struct in declaration order, expanded with the same rule.
// Unexported and excluded fields are dropped.
func Resolve(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, ErrNotStruct
	}
	t = Deref(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}
	if d, ok := descriptors.Load(t); ok {
		return d.(*Descriptor), nil
	}
	d := &Descriptor{Type: t}
	collect(t, nil, 0, map[reflect.Type]bool{t: true}, &d.Fields)
	actual, _ := descriptors.LoadOrStore(t, d)
	return actual.(*Descriptor), nil
}

func collect(t reflect.Type, prefix []int, depth int, visiting map[reflect.Type]bool, out *[]Field) {
	type embed struct {
		index []int
		t     reflect.Type
	}
	var embeds []embed

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		ann := ParseAnnotations(sf)
		if ann.Excluded {
			continue
		}
		index := append(append(make([]int, 0, len(prefix)+1), prefix...), i)

		if sf.Anonymous && !ann.Renamed {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				if !sf.IsExported() {
					// a nil pointer to an unexported struct cannot be allocated
					continue
				}
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				embeds = append(embeds, embed{index: index, t: et})
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		key := sf.Name
		if ann.Renamed {
			key = ann.Name
		}
		*out = append(*out, Field{
			Name:    sf.Name,
			Key:     key,
			Renamed: ann.Renamed,
			Index:   index,
			Type:    sf.Type,
			Tag:     Classify(sf.Type),
			Depth:   depth,
		})
	}

	for _, e := range embeds {
		if visiting[e.t] {
			continue
		}
		visiting[e.t] = true
		collect(e.t, e.index, depth+1, visiting, out)
		delete(visiting, e.t)
	}
}

// Annotations are the per-field binding directives.
type Annotations struct {
	Excluded bool
	Renamed  bool
	Name     string
}

// ParseAnnotations reads the lightjson tag, falling back to the json tag.
//
//	lightjson:"name=key"  rename
//	lightjson:"-"         exclude (also "ignore")
//	json:"key,omitempty"  rename
//	json:"-"              exclude
func ParseAnnotations(sf reflect.StructField) Annotations {
	if lt, ok := sf.Tag.Lookup(TagKey); ok {
		for _, p := range strings.Split(lt, ",") {
			p = strings.TrimSpace(p)
			switch {
			case p == "-" || p == "ignore":
				return Annotations{Excluded: true}
			case strings.HasPrefix(p, "name="):
				if name := strings.TrimPrefix(p, "name="); name != "" {
					return Annotations{Renamed: true, Name: name}
				}
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return Annotations{Excluded: true}
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return Annotations{Renamed: true, Name: jt}
		}
	}
	return Annotations{}
}

// FieldOf returns the settable field of root addressed by f.Index. Nil
// embedded pointers on the way are allocated. root must be an addressable
// struct value of the descriptor's type.
func FieldOf(root reflect.Value, f Field) reflect.Value {
	v := root
	for i, x := range f.Index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// PeekField is FieldOf without allocation; ok is false when a nil embedded
// pointer lies on the path.
func PeekField(root reflect.Value, f Field) (reflect.Value, bool) {
	v := root
	for i, x := range f.Index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}
