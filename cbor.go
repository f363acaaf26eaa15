package annotated

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode mirrors the canonical encoding options used elsewhere in the
// ecosystem for CBOR output: sorted map keys, shortest-float encoding, and
// no indefinite-length items, so two encoders never disagree about the
// bytes for the same tree. It is used to encode every scalar leaf (and
// every object key); the containers themselves are written by hand below so
// key order survives the round trip the same way jsonparse.go/jsonencode.go
// preserve it for JSON — cbor.Marshal's Sort: SortCanonical would otherwise
// silently re-sort every map into byte-canonical (not insertion) order.
var cborEncMode, _ = cbor.EncOptions{
	Sort:          cbor.SortCanonical,
	ShortestFloat: cbor.ShortestFloat16,
	NaNConvert:    cbor.NaNConvert7e00,
	InfConvert:    cbor.InfConvertFloat16,
	IndefLength:   cbor.IndefLengthForbidden,
}.EncMode()

// EncodeValueCBOR renders a's resolved data tree (spec §4.5's omit/null/
// original rule, same as EncodeJSON) as canonical CBOR. Meta is not carried
// over CBOR; this is a data-only wire form for consumers that don't need
// the error/remark sidecar. Arrays and objects are assembled by hand, in
// encounter order, so object key order survives the wire form; this can
// never fail, since it only ever walks a resolved Value tree.
func EncodeValueCBOR(a Annotated[Value]) []byte {
	data, ok := resolveEntry(a)
	if !ok {
		data = Null()
	}
	return encodeCBORValue(data)
}

// DecodeValueCBOR parses CBOR bytes into a bare Value tree with no Meta —
// the inverse of EncodeValueCBOR's data-only encoding. Containers are
// walked by hand so an object's key order matches the order keys were
// encountered on the wire, the same invariant ParseJSON enforces for JSON.
func DecodeValueCBOR(data []byte) (Value, error) {
	v, n, err := decodeCBORValue(data)
	if err != nil {
		return Value{}, err
	}
	if n != len(data) {
		return Value{}, fmt.Errorf("annotated: trailing data after CBOR document")
	}
	return v, nil
}

func valueToScalar(v Value) interface{} {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		b, _ := v.AsBool()
		return b
	case KindI64:
		i, _ := v.AsI64()
		return i
	case KindU64:
		u, _ := v.AsU64()
		return u
	case KindF64:
		f, _ := v.AsF64()
		return f
	case KindString:
		s, _ := v.AsString()
		return s
	default:
		return nil
	}
}

func scalarToValue(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case int64:
		return I64(t)
	case uint64:
		if t <= 1<<63-1 {
			return I64(int64(t))
		}
		return U64(t)
	case float64:
		return F64(t)
	case float32:
		return F64(float64(t))
	case string:
		return String(t)
	case []byte:
		return String(string(t))
	default:
		return Null()
	}
}

// encodeCBORValue writes v's canonical CBOR bytes. Arrays and objects write
// their own major-type-4/5 header (item/pair count) and then recurse,
// matching jsonencode.go's writeArray/writeObject omission rules: a true
// absence inside an array renders as null (no index to drop without
// shifting later elements), while one inside an object is dropped entirely.
// Every scalar leaf, and every object key, is handed to cborEncMode.Marshal.
func encodeCBORValue(v Value) []byte {
	switch v.Kind() {
	case KindArray:
		items, _ := v.AsArray()
		buf := appendCBORHeader(nil, 4, uint64(len(items)))
		for _, item := range items {
			data, ok := resolveEntry(item)
			if !ok {
				data = Null()
			}
			buf = append(buf, encodeCBORValue(data)...)
		}
		return buf
	case KindObject:
		obj, _ := v.AsObject()
		type entry struct {
			key string
			val Value
		}
		entries := make([]entry, 0, obj.Len())
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			data, ok := resolveEntry(pair.Value)
			if !ok {
				continue
			}
			entries = append(entries, entry{pair.Key, data})
		}
		buf := appendCBORHeader(nil, 5, uint64(len(entries)))
		for _, e := range entries {
			keyBytes, _ := cborEncMode.Marshal(e.key)
			buf = append(buf, keyBytes...)
			buf = append(buf, encodeCBORValue(e.val)...)
		}
		return buf
	default:
		data, _ := cborEncMode.Marshal(valueToScalar(v))
		return data
	}
}

// decodeCBORValue reads one CBOR data item from the front of data, returning
// it along with the number of bytes it occupied. Arrays and maps recurse by
// hand, in wire order, so map key order is never routed through an
// unordered Go map; every other major type is handled by slicing out the
// exact span of that one item and handing it to cbor.Unmarshal, reusing the
// library for every bit-level interpretation (negative ints, float16/32/64,
// byte vs text strings) this package doesn't need to reimplement.
func decodeCBORValue(data []byte) (Value, int, error) {
	major, argument, headerLen, err := readCBORHeader(data)
	if err != nil {
		return Value{}, 0, err
	}

	switch major {
	case 4: // array
		items := make([]Annotated[Value], 0, argument)
		offset := headerLen
		for i := uint64(0); i < argument; i++ {
			v, n, err := decodeCBORValue(data[offset:])
			if err != nil {
				return Value{}, 0, err
			}
			items = append(items, New(v))
			offset += n
		}
		return Array(items), offset, nil
	case 5: // map
		obj := NewObject()
		offset := headerLen
		for i := uint64(0); i < argument; i++ {
			k, n, err := decodeCBORValue(data[offset:])
			if err != nil {
				return Value{}, 0, err
			}
			offset += n
			key, ok := k.AsString()
			if !ok {
				return Value{}, 0, fmt.Errorf("annotated: CBOR map key is not a string")
			}
			v, n, err := decodeCBORValue(data[offset:])
			if err != nil {
				return Value{}, 0, err
			}
			offset += n
			obj.Set(key, New(v))
		}
		return ObjectValue(obj), offset, nil
	default:
		span := headerLen
		if major == 2 || major == 3 { // byte string, text string
			span += int(argument)
		}
		if span > len(data) {
			return Value{}, 0, fmt.Errorf("annotated: truncated CBOR item")
		}
		var raw interface{}
		if err := cbor.Unmarshal(data[:span], &raw); err != nil {
			return Value{}, 0, err
		}
		return scalarToValue(raw), span, nil
	}
}

// appendCBORHeader writes an RFC 8949 initial byte (major type in the top 3
// bits) plus whatever additional-info extension n requires, appending to
// buf.
func appendCBORHeader(buf []byte, major byte, n uint64) []byte {
	switch {
	case n < 24:
		return append(buf, major<<5|byte(n))
	case n <= 0xff:
		return append(buf, major<<5|24, byte(n))
	case n <= 0xffff:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(n))
		return append(append(buf, major<<5|25), b...)
	case n <= 0xffffffff:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(n))
		return append(append(buf, major<<5|26), b...)
	default:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, n)
		return append(append(buf, major<<5|27), b...)
	}
}

// readCBORHeader is appendCBORHeader's inverse: it reads the initial byte
// at the front of data and returns the major type, the decoded
// additional-info argument (a length for majors 2/3/4/5, the value itself
// for majors 0/1, opaque float/simple bits for major 7), and how many bytes
// the header itself occupied.
func readCBORHeader(data []byte) (major byte, argument uint64, headerLen int, err error) {
	if len(data) == 0 {
		return 0, 0, 0, fmt.Errorf("annotated: empty CBOR item")
	}
	major = data[0] >> 5
	info := data[0] & 0x1f
	switch {
	case info < 24:
		return major, uint64(info), 1, nil
	case info == 24:
		if len(data) < 2 {
			return 0, 0, 0, fmt.Errorf("annotated: truncated CBOR header")
		}
		return major, uint64(data[1]), 2, nil
	case info == 25:
		if len(data) < 3 {
			return 0, 0, 0, fmt.Errorf("annotated: truncated CBOR header")
		}
		return major, uint64(binary.BigEndian.Uint16(data[1:3])), 3, nil
	case info == 26:
		if len(data) < 5 {
			return 0, 0, 0, fmt.Errorf("annotated: truncated CBOR header")
		}
		return major, uint64(binary.BigEndian.Uint32(data[1:5])), 5, nil
	case info == 27:
		if len(data) < 9 {
			return 0, 0, 0, fmt.Errorf("annotated: truncated CBOR header")
		}
		return major, binary.BigEndian.Uint64(data[1:9]), 9, nil
	default:
		return 0, 0, 0, fmt.Errorf("annotated: indefinite-length CBOR items are not supported")
	}
}
