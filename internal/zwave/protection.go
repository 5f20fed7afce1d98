package zwave

import "fmt"

// ProtectionState is the local protection level of a device.
type ProtectionState uint8

const (
	Unprotected ProtectionState = iota
	ProtectionBySequence
	NoOperationPossible
)

var protectionNames = [...]string{
	"Unprotected",
	"Protection by Sequence",
	"No Operation Possible",
}

func (s ProtectionState) String() string {
	if int(s) < len(protectionNames) {
		return protectionNames[s]
	}
	return fmt.Sprintf("ProtectionState(%d)", s)
}

// ParseProtection converts a raw state value.
func ParseProtection(v int) (ProtectionState, error) {
	if v < 0 || v >= len(protectionNames) {
		return 0, fmt.Errorf("zwave: invalid protection state %d", v)
	}
	return ProtectionState(v), nil
}
