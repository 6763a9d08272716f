package domain

import "time"

// Domain contains core models shared by the monitor runtime.

// Lookup kinds, one per neutrinoapi.com endpoint.
const (
	KindPhoneValidate = "phone-validate"
	KindHLRLookup     = "hlr-lookup"
	KindIPInfo        = "ip-info"
	KindIPBlocklist   = "ip-blocklist"
	KindIPProbe       = "ip-probe"
)

// Kinds lists every supported lookup kind.
func Kinds() []string {
	return []string{KindPhoneValidate, KindHLRLookup, KindIPInfo, KindIPBlocklist, KindIPProbe}
}

// Result is one completed lookup.
type Result struct {
	JobID       string
	Kind        string
	Target      string
	Payload     any
	CollectedAt time.Time
}
