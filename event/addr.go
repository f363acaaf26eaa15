package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ingestcore/annotated"
)

// Addr is a 64-bit address, wire-encoded as "0x"-prefixed lowercase hex
// (spec §4.3) — the shape native-crash frames use for image/instruction/
// symbol addresses.
type Addr uint64

// RegVal is a register value; same wire shape as Addr.
type RegVal uint64

func hexAddrFromValue[T ~uint64](typeName string, wrap func(uint64) T) func(annotated.Annotated[annotated.Value]) annotated.Annotated[T] {
	return func(a annotated.Annotated[annotated.Value]) annotated.Annotated[T] {
		return annotated.FromValue(a, func(v annotated.Value, m annotated.Meta) annotated.Annotated[T] {
			if u, ok := v.AsU64(); ok {
				r := wrap(u)
				return annotated.Annotated[T]{Value: &r, Meta: m}
			}
			if i, ok := v.AsI64(); ok && i >= 0 {
				r := wrap(uint64(i))
				return annotated.Annotated[T]{Value: &r, Meta: m}
			}
			if s, ok := v.AsString(); ok {
				u, ok := parseHexAddr(s)
				if !ok {
					return annotated.Mismatch[T](typeName, v, m)
				}
				r := wrap(u)
				return annotated.Annotated[T]{Value: &r, Meta: m}
			}
			return annotated.Mismatch[T](typeName, v, m)
		})
	}
}

func parseHexAddr(s string) (uint64, bool) {
	rest := strings.TrimPrefix(strings.ToLower(s), "0x")
	if rest == s {
		// No leading zeros allowed on plain decimal strings, except "0".
		if len(s) > 1 && s[0] == '0' {
			return 0, false
		}
		u, err := strconv.ParseUint(s, 10, 64)
		return u, err == nil
	}
	u, err := strconv.ParseUint(rest, 16, 64)
	return u, err == nil
}

func hexAddrToValue[T ~uint64]() func(annotated.Annotated[T]) annotated.Annotated[annotated.Value] {
	return func(a annotated.Annotated[T]) annotated.Annotated[annotated.Value] {
		return annotated.ToValue(a, func(t T) annotated.Value {
			return annotated.String(fmt.Sprintf("0x%x", uint64(t)))
		})
	}
}

// AddrFromValue decodes a number or hex string into an Addr.
var AddrFromValue = hexAddrFromValue("a hex address", func(u uint64) Addr { return Addr(u) })

// AddrToValue renders an Addr as "0x"-prefixed lowercase hex.
var AddrToValue = hexAddrToValue[Addr]()

// RegValFromValue decodes a number or hex string into a RegVal.
var RegValFromValue = hexAddrFromValue("a hex address", func(u uint64) RegVal { return RegVal(u) })

// RegValToValue renders a RegVal as "0x"-prefixed lowercase hex.
var RegValToValue = hexAddrToValue[RegVal]()
