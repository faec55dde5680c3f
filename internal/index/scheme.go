package index

var (
	bEntry  = []byte("entry")   // entryKey -> entryBytes
	bIdxTag = []byte("idx_tag") // tag -> sub-bucket(entryKey -> 1)
)
