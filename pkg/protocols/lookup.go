package protocols

import (
	"fmt"
	"math"
)

// Version denotes the version of the protocol lookup interface
const Version = "1.4.2"

// system is the platform protocol database selected at build time
var system = newSystem()

// System returns the platform protocol database
func System() Directory {
	return system
}

// GetProtoByName returns the number of the protocol called name (or one of its aliases).
// found is false if the database has no such protocol
func GetProtoByName(name string) (number int, found bool, err error) {
	r, err := system.ByName(name)
	if err != nil || r == nil {
		return 0, false, err
	}
	return r.Number(), true, nil
}

// GetProtoByNumber returns the canonical name of the protocol with the given number.
// found is false if the database has no such protocol
func GetProtoByNumber(number int) (name string, found bool, err error) {
	r, err := system.ByNumber(number)
	if err != nil || r == nil {
		return "", false, err
	}
	return r.Name(), true, nil
}

// GetProtocol resolves a protocol name (string) to its number or a protocol number (any
// integer type) to its name. A nil result with a nil error means the protocol is unknown
func GetProtocol(arg any) (any, error) {
	if name, ok := arg.(string); ok {
		number, found, err := GetProtoByName(name)
		if err != nil || !found {
			return nil, err
		}
		return number, nil
	}

	number, ok := integerArg(arg)
	if !ok {
		return nil, fmt.Errorf("%w: expected a protocol name or number, got %T", ErrInvalidArgument, arg)
	}
	if _, err := CheckNumber(number); err != nil {
		return nil, err
	}
	name, found, err := GetProtoByNumber(int(number))
	if err != nil || !found {
		return nil, err
	}
	return name, nil
}

func integerArg(arg any) (int64, bool) {
	switch v := arg.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return clampUint(uint64(v)), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return clampUint(v), true
	}
	return 0, false
}

func clampUint(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
