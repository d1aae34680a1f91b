package robotproto

// KeyPair is a (server_key, client_key) tuple used to derive the
// confirmation values exchanged during authentication.
type KeyPair struct {
	ServerKey uint32
	ClientKey uint32
}

// DefaultKeys is the fixed, read-only key table indexed by key_id.
// There is no process-wide mutable state anywhere else in this package.
var DefaultKeys = [5]KeyPair{
	{ServerKey: 23019, ClientKey: 32037},
	{ServerKey: 32037, ClientKey: 29295},
	{ServerKey: 18789, ClientKey: 13603},
	{ServerKey: 16443, ClientKey: 29533},
	{ServerKey: 18189, ClientKey: 21952},
}

// usernameHash computes (sum of UTF-8 byte values of name) * 1000 mod
// 65536, the weak checksum this protocol uses in place of real
// cryptography (see DESIGN.md for why no AEAD/X25519 library is wired
// in here).
func usernameHash(name string) uint32 {
	var sum uint32
	for i := 0; i < len(name); i++ {
		sum += uint32(name[i])
	}
	return (sum * 1000) % 65536
}
