package driver

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/buzzdavidson/ozwcommander/internal/zwave"
)

// zwave-js-server node status codes.
const (
	statusUnknown = 0
	statusAsleep  = 1
	statusAwake   = 2
	statusDead    = 3
	statusAlive   = 4
)

// Value properties used by the switch commands.
const (
	propCurrentValue = "currentValue"
	propTargetValue  = "targetValue"
	propBatteryLevel = "level"
)

// wsMessage is the envelope of every server message.
type wsMessage struct {
	Type          string          `json:"type"`
	MessageID     string          `json:"messageId,omitempty"`
	Success       bool            `json:"success,omitempty"`
	Result        json.RawMessage `json:"result,omitempty"`
	ErrorCode     string          `json:"errorCode,omitempty"`
	Message       string          `json:"message,omitempty"`
	Event         json.RawMessage `json:"event,omitempty"`
	HomeID        uint32          `json:"homeId,omitempty"`
	DriverVersion string          `json:"driverVersion,omitempty"`
	ServerVersion string          `json:"serverVersion,omitempty"`
}

type wsEvent struct {
	Source    string       `json:"source"`
	Event     string       `json:"event"`
	NodeID    int          `json:"nodeId"`
	Node      *wsNode      `json:"node,omitempty"`
	NodeState *wsNode      `json:"nodeState,omitempty"`
	Args      *wsValueArgs `json:"args,omitempty"`
}

type wsStartListeningResult struct {
	State wsState `json:"state"`
}

type wsState struct {
	Controller struct {
		HomeID     uint32 `json:"homeId"`
		SDKVersion string `json:"sdkVersion"`
		OwnNodeID  int    `json:"ownNodeId"`
	} `json:"controller"`
	Nodes []wsNode `json:"nodes"`
}

type wsNode struct {
	NodeID          int    `json:"nodeId"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	Status          int    `json:"status"`
	Ready           bool   `json:"ready"`
	Label           string `json:"label"`
	FirmwareVersion string `json:"firmwareVersion"`
	DeviceConfig    *struct {
		Manufacturer string `json:"manufacturer"`
		Label        string `json:"label"`
		Description  string `json:"description"`
	} `json:"deviceConfig,omitempty"`
	DeviceClass *struct {
		Generic wsClassRef `json:"generic"`
	} `json:"deviceClass,omitempty"`
	CommandClasses []struct {
		ID uint8 `json:"id"`
	} `json:"commandClasses"`
	Values []wsValue `json:"values"`
}

type wsClassRef struct {
	Key   uint8  `json:"key"`
	Label string `json:"label"`
}

type wsValue struct {
	CommandClass uint8  `json:"commandClass"`
	Endpoint     int    `json:"endpoint"`
	Property     any    `json:"property"`
	PropertyName string `json:"propertyName"`
	Value        any    `json:"value"`
	Metadata     struct {
		Label     string `json:"label"`
		Unit      string `json:"unit"`
		Writeable bool   `json:"writeable"`
	} `json:"metadata"`
}

type wsValueArgs struct {
	CommandClass uint8  `json:"commandClass"`
	Endpoint     int    `json:"endpoint"`
	Property     any    `json:"property"`
	PropertyName string `json:"propertyName"`
	NewValue     any    `json:"newValue"`
	PrevValue    any    `json:"prevValue"`
}

func sameProperty(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func (n *wsNode) value(cc uint8, property string) (any, bool) {
	for _, v := range n.Values {
		if v.CommandClass == cc && v.Endpoint == 0 && sameProperty(v.Property, property) {
			return v.Value, true
		}
	}
	return nil, false
}

// apply records an updated value, adding it when the node did not have it.
func (n *wsNode) apply(args *wsValueArgs) {
	for i := range n.Values {
		v := &n.Values[i]
		if v.CommandClass == args.CommandClass && v.Endpoint == args.Endpoint && sameProperty(v.Property, args.Property) {
			v.Value = args.NewValue
			return
		}
	}
	v := wsValue{
		CommandClass: args.CommandClass,
		Endpoint:     args.Endpoint,
		Property:     args.Property,
		PropertyName: args.PropertyName,
		Value:        args.NewValue,
	}
	n.Values = append(n.Values, v)
}

// snapshot converts the server representation to a Node.
func (n *wsNode) snapshot() Node {
	node := Node{
		ID:       n.NodeID,
		Name:     n.Name,
		Location: n.Location,
		Product:  n.Label,
		Version:  n.FirmwareVersion,
		Ready:    n.Ready,
		Sleeping: n.Status == statusAsleep,
		Battery:  -1,
		Signal:   -1,
		Level:    -1,
	}
	if dc := n.DeviceConfig; dc != nil {
		node.Manufacturer = dc.Manufacturer
		if dc.Description != "" {
			node.Product = dc.Description
		}
	}
	if dc := n.DeviceClass; dc != nil {
		node.ProductType = dc.Generic.Label
		if node.ProductType == "" {
			node.ProductType = zwave.DeviceTypeName(dc.Generic.Key)
		}
	}
	for _, cc := range n.CommandClasses {
		node.Classes = append(node.Classes, cc.ID)
	}

	if v, ok := n.value(zwave.ClassBattery, propBatteryLevel); ok {
		if b, ok := toInt(v); ok {
			node.Battery = b
		}
	}
	if v, ok := n.value(zwave.ClassSwitchMultilevel, propCurrentValue); ok {
		if l, ok := toInt(v); ok {
			node.Level = l
		}
	}

	switch {
	case n.Status == statusDead:
		node.State = "dead"
	case node.Sleeping:
		node.State = "sleeping"
	case node.Level >= 0:
		node.State = onOff(node.Level > 0)
	default:
		node.State = "OK"
		if v, ok := n.value(zwave.ClassSwitchBinary, propCurrentValue); ok {
			if on, ok := v.(bool); ok {
				node.State = onOff(on)
			}
		}
	}

	for _, v := range n.Values {
		label := v.Metadata.Label
		if label == "" {
			label = v.PropertyName
		}
		if label == "" {
			label = fmt.Sprint(v.Property)
		}
		entry := Value{Label: label, Value: formatValue(v.Value), Units: v.Metadata.Unit, ReadOnly: !v.Metadata.Writeable}
		switch v.CommandClass {
		case zwave.ClassProtection:
			entry.Value = protectionValue(v.Value)
			node.Config = append(node.Config, entry)
		case zwave.ClassConfiguration:
			node.Config = append(node.Config, entry)
		default:
			node.Values = append(node.Values, entry)
		}
	}
	return node
}

// protectionValue names a Protection CC state; values outside the known
// states are shown raw.
func protectionValue(v any) string {
	raw, ok := toInt(v)
	if !ok {
		return formatValue(v)
	}
	state, err := zwave.ParseProtection(raw)
	if err != nil {
		return formatValue(v)
	}
	return state.String()
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case json.Number:
		i, err := x.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return onOff(x)
	default:
		return fmt.Sprint(x)
	}
}
