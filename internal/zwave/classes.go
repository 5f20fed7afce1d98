// Package zwave holds the Z-Wave reference tables the dashboard displays:
// command class names, protection states and generic device types.
package zwave

import "fmt"

// Command class identifiers.
const (
	ClassNoOperation              uint8 = 0x00
	ClassBasic                    uint8 = 0x20
	ClassControllerReplication    uint8 = 0x21
	ClassApplicationStatus        uint8 = 0x22
	ClassSwitchBinary             uint8 = 0x25
	ClassSwitchMultilevel         uint8 = 0x26
	ClassSwitchAll                uint8 = 0x27
	ClassSwitchToggleBinary       uint8 = 0x28
	ClassSwitchToggleMultilevel   uint8 = 0x29
	ClassSceneActivation          uint8 = 0x2B
	ClassSensorBinary             uint8 = 0x30
	ClassSensorMultilevel         uint8 = 0x31
	ClassMeter                    uint8 = 0x32
	ClassThermostatMode           uint8 = 0x40
	ClassThermostatSetpoint       uint8 = 0x43
	ClassDeviceResetLocally       uint8 = 0x5A
	ClassZWavePlusInfo            uint8 = 0x5E
	ClassMultiInstance            uint8 = 0x60
	ClassDoorLock                 uint8 = 0x62
	ClassConfiguration            uint8 = 0x70
	ClassAlarm                    uint8 = 0x71
	ClassManufacturerSpecific     uint8 = 0x72
	ClassPowerlevel               uint8 = 0x73
	ClassProtection               uint8 = 0x75
	ClassNodeNaming               uint8 = 0x77
	ClassBattery                  uint8 = 0x80
	ClassClock                    uint8 = 0x81
	ClassHail                     uint8 = 0x82
	ClassWakeUp                   uint8 = 0x84
	ClassAssociation              uint8 = 0x85
	ClassVersion                  uint8 = 0x86
	ClassMultiInstanceAssociation uint8 = 0x8E
	ClassSecurity                 uint8 = 0x98
	ClassSensorAlarm              uint8 = 0x9C
)

var classNames = map[uint8]string{
	ClassNoOperation:              "COMMAND_CLASS_NO_OPERATION",
	ClassBasic:                    "COMMAND_CLASS_BASIC",
	ClassControllerReplication:    "COMMAND_CLASS_CONTROLLER_REPLICATION",
	ClassApplicationStatus:        "COMMAND_CLASS_APPLICATION_STATUS",
	ClassSwitchBinary:             "COMMAND_CLASS_SWITCH_BINARY",
	ClassSwitchMultilevel:         "COMMAND_CLASS_SWITCH_MULTILEVEL",
	ClassSwitchAll:                "COMMAND_CLASS_SWITCH_ALL",
	ClassSwitchToggleBinary:       "COMMAND_CLASS_SWITCH_TOGGLE_BINARY",
	ClassSwitchToggleMultilevel:   "COMMAND_CLASS_SWITCH_TOGGLE_MULTILEVEL",
	ClassSceneActivation:          "COMMAND_CLASS_SCENE_ACTIVATION",
	ClassSensorBinary:             "COMMAND_CLASS_SENSOR_BINARY",
	ClassSensorMultilevel:         "COMMAND_CLASS_SENSOR_MULTILEVEL",
	ClassMeter:                    "COMMAND_CLASS_METER",
	ClassThermostatMode:           "COMMAND_CLASS_THERMOSTAT_MODE",
	ClassThermostatSetpoint:       "COMMAND_CLASS_THERMOSTAT_SETPOINT",
	ClassDeviceResetLocally:       "COMMAND_CLASS_DEVICE_RESET_LOCALLY",
	ClassZWavePlusInfo:            "COMMAND_CLASS_ZWAVE_PLUS_INFO",
	ClassMultiInstance:            "COMMAND_CLASS_MULTI_INSTANCE",
	ClassDoorLock:                 "COMMAND_CLASS_DOOR_LOCK",
	ClassConfiguration:            "COMMAND_CLASS_CONFIGURATION",
	ClassAlarm:                    "COMMAND_CLASS_ALARM",
	ClassManufacturerSpecific:     "COMMAND_CLASS_MANUFACTURER_SPECIFIC",
	ClassPowerlevel:               "COMMAND_CLASS_POWERLEVEL",
	ClassProtection:               "COMMAND_CLASS_PROTECTION",
	ClassNodeNaming:               "COMMAND_CLASS_NODE_NAMING",
	ClassBattery:                  "COMMAND_CLASS_BATTERY",
	ClassClock:                    "COMMAND_CLASS_CLOCK",
	ClassHail:                     "COMMAND_CLASS_HAIL",
	ClassWakeUp:                   "COMMAND_CLASS_WAKE_UP",
	ClassAssociation:              "COMMAND_CLASS_ASSOCIATION",
	ClassVersion:                  "COMMAND_CLASS_VERSION",
	ClassMultiInstanceAssociation: "COMMAND_CLASS_MULTI_INSTANCE_ASSOCIATION",
	ClassSecurity:                 "COMMAND_CLASS_SECURITY",
	ClassSensorAlarm:              "COMMAND_CLASS_SENSOR_ALARM",
}

// ClassName returns the COMMAND_CLASS_* name of id, or a hex placeholder for
// classes not in the table.
func ClassName(id uint8) string {
	if name, ok := classNames[id]; ok {
		return name
	}
	return fmt.Sprintf("COMMAND_CLASS_0x%02X", id)
}

// Switchable reports whether classes contain a binary or multilevel switch.
func Switchable(classes []uint8) bool {
	return Has(classes, ClassSwitchBinary) || Has(classes, ClassSwitchMultilevel)
}

// Has reports whether classes contains id.
func Has(classes []uint8, id uint8) bool {
	for _, c := range classes {
		if c == id {
			return true
		}
	}
	return false
}
