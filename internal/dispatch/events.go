package dispatch

// Event is a message delivered to the render loop.
type Event interface {
	isEvent()
}

// DriverReady reports that the driver reached the controller.
type DriverReady struct {
	HomeID    uint32
	NodeCount int
}

// SystemReady reports that every node finished its interview.
type SystemReady struct{}

// NodeAdded reports a node joining the node table.
type NodeAdded struct {
	NodeID int
}

// NodeReady reports a node finishing its interview.
type NodeReady struct {
	NodeID int
}

// NodeRemoved reports a node leaving the node table.
type NodeRemoved struct {
	NodeID int
}

// ValueChanged reports new data for a node.
type ValueChanged struct {
	NodeID  int
	Payload any
}

// DriverFailed reports that the driver lost or never reached the network.
type DriverFailed struct {
	Err error
}

// AlertExpired is posted by the alert timer. Generation identifies the alert
// it was armed for.
type AlertExpired struct {
	Generation uint64
}

// InitCheck is posted by the driver readiness timer.
type InitCheck struct{}

func (DriverReady) isEvent()  {}
func (SystemReady) isEvent()  {}
func (NodeAdded) isEvent()    {}
func (NodeReady) isEvent()    {}
func (NodeRemoved) isEvent()  {}
func (ValueChanged) isEvent() {}
func (DriverFailed) isEvent() {}
func (AlertExpired) isEvent() {}
func (InitCheck) isEvent()    {}
