package zwave

import "testing"

func TestClassName(t *testing.T) {
	tests := []struct {
		id   uint8
		want string
	}{
		{ClassBasic, "COMMAND_CLASS_BASIC"},
		{ClassHail, "COMMAND_CLASS_HAIL"},
		{ClassProtection, "COMMAND_CLASS_PROTECTION"},
		{0xF1, "COMMAND_CLASS_0xF1"},
	}
	for _, tt := range tests {
		if got := ClassName(tt.id); got != tt.want {
			t.Errorf("ClassName(0x%02X) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestSwitchable(t *testing.T) {
	if !Switchable([]uint8{ClassBasic, ClassSwitchMultilevel}) {
		t.Error("multilevel switch should be switchable")
	}
	if Switchable([]uint8{ClassBasic, ClassSensorBinary}) {
		t.Error("binary sensor should not be switchable")
	}
	if Switchable(nil) {
		t.Error("no classes should not be switchable")
	}
}

func TestProtectionState_String(t *testing.T) {
	tests := []struct {
		state ProtectionState
		want  string
	}{
		{Unprotected, "Unprotected"},
		{ProtectionBySequence, "Protection by Sequence"},
		{NoOperationPossible, "No Operation Possible"},
		{ProtectionState(9), "ProtectionState(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("ProtectionState(%d).String() = %q, want %q", uint8(tt.state), got, tt.want)
		}
	}
}

func TestParseProtection(t *testing.T) {
	tests := []struct {
		name    string
		raw     int
		want    ProtectionState
		wantErr bool
	}{
		{name: "unprotected", raw: 0, want: Unprotected},
		{name: "sequence", raw: 1, want: ProtectionBySequence},
		{name: "locked", raw: 2, want: NoOperationPossible},
		{name: "out of range", raw: 7, wantErr: true},
		{name: "negative", raw: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProtection(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("state = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeviceTypeName(t *testing.T) {
	if got := DeviceTypeName(GenericSwitchMultilevel); got != "Multilevel Switch" {
		t.Errorf("DeviceTypeName = %q", got)
	}
	if got := DeviceTypeName(0x77); got != "Unknown (0x77)" {
		t.Errorf("DeviceTypeName(unknown) = %q", got)
	}
}
