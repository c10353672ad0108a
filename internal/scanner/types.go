package scanner

// DuplicateGroup is one master file plus the duplicates that were verified
// byte-identical to it by content fingerprint. Consumers treat it as
// read-only; the master path is never mutated by any later stage.
type DuplicateGroup struct {
	Hash       string   // SHA256 content fingerprint shared by every member
	Size       int64    // size of each member in bytes
	Master     string   // the preserved copy
	Duplicates []string // candidates for replacement, in stable order
}

// WastedBytes returns the bytes recoverable by eliminating the duplicates
func (g *DuplicateGroup) WastedBytes() int64 {
	return g.Size * int64(len(g.Duplicates))
}

// ScanResult represents the result of a duplicate scan
type ScanResult struct {
	Groups       []DuplicateGroup
	FilesScanned int
	FilesHashed  int
	WastedBytes  int64
	Errors       []error
}

// TotalDuplicates counts duplicates across all groups
func (r *ScanResult) TotalDuplicates() int {
	var n int
	for i := range r.Groups {
		n += len(r.Groups[i].Duplicates)
	}
	return n
}
