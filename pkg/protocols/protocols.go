/*
Package protocols provides lookup functionality for IP protocol numbers and their names.

The platform protocol database is accessed through the functions GetProtoByName,
GetProtoByNumber and GetProtoEnt, which select the appropriate C library or Winsock
calls at build time. Alternative databases (protocols files, the embedded IANA
registry) implement the same Directory interface.
*/
package protocols

var (
	// IPProtocols maps IANA protocol numbers to their canonical names
	IPProtocols = make(map[int]string)

	// IPProtocolIDs maps IANA protocol names and aliases to their numbers
	IPProtocolIDs = make(map[string]int)
)

func init() {
	Each(IANA(), func(r *Record) {
		if _, exists := IPProtocols[r.number]; !exists {
			IPProtocols[r.number] = r.name
		}
		for _, name := range append([]string{r.name}, r.aliases...) {
			if _, exists := IPProtocolIDs[name]; !exists {
				IPProtocolIDs[name] = r.number
			}
		}
	})
}

// GetIPProto returns the friendly name for a given protocol id
func GetIPProto(id int) string {
	return IPProtocols[id]
}

// GetIPProtoID returns the numeric value for a given IP protocol
func GetIPProtoID(name string) (uint64, bool) {
	ret, ok := IPProtocolIDs[name]
	return uint64(ret), ok
}
