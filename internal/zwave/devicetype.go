package zwave

import "fmt"

// Generic device classes.
const (
	GenericRemoteController    uint8 = 0x01
	GenericStaticController    uint8 = 0x02
	GenericAVControlPoint      uint8 = 0x03
	GenericDisplay             uint8 = 0x04
	GenericThermostat          uint8 = 0x08
	GenericWindowCovering      uint8 = 0x09
	GenericRepeaterSlave       uint8 = 0x0F
	GenericSwitchBinary        uint8 = 0x10
	GenericSwitchMultilevel    uint8 = 0x11
	GenericSwitchRemote        uint8 = 0x12
	GenericSwitchToggle        uint8 = 0x13
	GenericSensorBinary        uint8 = 0x20
	GenericSensorMultilevel    uint8 = 0x21
	GenericMeterPulse          uint8 = 0x30
	GenericMeter               uint8 = 0x31
	GenericEntryControl        uint8 = 0x40
	GenericSemiInteroperable   uint8 = 0x50
	GenericSensorAlarm         uint8 = 0xA1
	GenericNonInteroperable    uint8 = 0xFF
)

var deviceTypeNames = map[uint8]string{
	GenericRemoteController:  "Remote Controller",
	GenericStaticController:  "Static Controller",
	GenericAVControlPoint:    "AV Control Point",
	GenericDisplay:           "Display",
	GenericThermostat:        "Thermostat",
	GenericWindowCovering:    "Window Covering",
	GenericRepeaterSlave:     "Repeater Slave",
	GenericSwitchBinary:      "Binary Switch",
	GenericSwitchMultilevel:  "Multilevel Switch",
	GenericSwitchRemote:      "Remote Switch",
	GenericSwitchToggle:      "Toggle Switch",
	GenericSensorBinary:      "Binary Sensor",
	GenericSensorMultilevel:  "Multilevel Sensor",
	GenericMeterPulse:        "Pulse Meter",
	GenericMeter:             "Meter",
	GenericEntryControl:      "Entry Control",
	GenericSemiInteroperable: "Semi Interoperable",
	GenericSensorAlarm:       "Alarm Sensor",
	GenericNonInteroperable:  "Non Interoperable",
}

// DeviceTypeName returns a label for a generic device class.
func DeviceTypeName(generic uint8) string {
	if name, ok := deviceTypeNames[generic]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (0x%02X)", generic)
}
