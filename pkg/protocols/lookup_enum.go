//go:build !windows

package protocols

import "iter"

// All returns the entries of the platform protocol database in native order
func All() iter.Seq[*Record] {
	return system.All()
}

// GetProtoEnt walks the platform protocol database. If fn is provided, it is called once
// per entry and nil is returned. Otherwise all entries are collected and returned
func GetProtoEnt(fn func(*Record)) []*Record {
	if fn != nil {
		Each(system, fn)
		return nil
	}
	return Collect(system)
}
