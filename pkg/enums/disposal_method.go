package enums

import "fmt"

// DisposalMethod records how an asset left the fleet.
type DisposalMethod string

const (
	DisposalResold   DisposalMethod = "resold"
	DisposalScrapped DisposalMethod = "scrapped"
	DisposalRecycled DisposalMethod = "recycled"
	DisposalDonated  DisposalMethod = "donated"
	DisposalReturned DisposalMethod = "returned"
)

var validDisposalMethods = []DisposalMethod{
	DisposalResold,
	DisposalScrapped,
	DisposalRecycled,
	DisposalDonated,
	DisposalReturned,
}

// String implements fmt.Stringer.
func (d DisposalMethod) String() string {
	return string(d)
}

// IsValid reports whether the disposal method is recognized.
func (d DisposalMethod) IsValid() bool {
	for _, candidate := range validDisposalMethods {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDisposalMethod converts a raw string into a DisposalMethod.
func ParseDisposalMethod(value string) (DisposalMethod, error) {
	for _, candidate := range validDisposalMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid disposal method %q", value)
}
