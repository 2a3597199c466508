// FILE: lixenwraith/appconfig/gate.go
package appconfig

// phase holds the container lifecycle flags
type phase struct {
	configuring bool
	validating  bool
	readied     bool
	validated   bool
}

// canRead reports whether parameter reads are currently permitted.
// Writes are never gated by phase; only the lock policy can reject them.
func (p phase) canRead() bool {
	return p.configuring || p.validating || p.readied
}
