package domain

import "fmt"

// TransmissionType is the ros_control transmission kind.
type TransmissionType int

const (
	SimpleTransmission TransmissionType = iota
	DifferentialTransmission
	FourBarLinkageTransmission
)

var transmissionTypeNames = [...]string{"SimpleTransmission", "DifferentialTransmission", "FourBarLinkageTransmission"}

func (t TransmissionType) String() string {
	if t < 0 || int(t) >= len(transmissionTypeNames) {
		return fmt.Sprintf("TransmissionType(%d)", int(t))
	}
	return transmissionTypeNames[t]
}

// ParseTransmissionType accepts the bare or the transmission_interface/ prefixed name.
func ParseTransmissionType(s string) (TransmissionType, error) {
	for i, name := range transmissionTypeNames {
		if s == name || s == "transmission_interface/"+name {
			return TransmissionType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transmission type %q", s)
}

// HardwareInterface is a ros_control hardware interface.
type HardwareInterface int

const (
	JointCommandInterface HardwareInterface = iota
	EffortJointInterface
	VelocityJointInterface
	PositionJointInterface
	JointStateInterface
	ActuatorStateInterface
	EffortActuatorInterface
	VelocityActuatorInterface
	PositionActuatorInterface
	PosVelJointInterface
	PosVelAccJointInterface
	ForceTorqueSensorInterface
	IMUSensorInterface
)

var hardwareInterfaceNames = [...]string{
	"JointCommandInterface",
	"EffortJointInterface",
	"VelocityJointInterface",
	"PositionJointInterface",
	"JointStateInterface",
	"ActuatorStateInterface",
	"EffortActuatorInterface",
	"VelocityActuatorInterface",
	"PositionActuatorInterface",
	"PosVelJointInterface",
	"PosVelAccJointInterface",
	"ForceTorqueSensorInterface",
	"IMUSensorInterface",
}

func (h HardwareInterface) String() string {
	if h < 0 || int(h) >= len(hardwareInterfaceNames) {
		return fmt.Sprintf("HardwareInterface(%d)", int(h))
	}
	return hardwareInterfaceNames[h]
}

// ParseHardwareInterface accepts the bare or the hardware_interface/ prefixed name.
func ParseHardwareInterface(s string) (HardwareInterface, error) {
	for i, name := range hardwareInterfaceNames {
		if s == name || s == "hardware_interface/"+name {
			return HardwareInterface(i), nil
		}
	}
	return 0, fmt.Errorf("unknown hardware interface %q", s)
}

// TransmissionJoint binds a joint, by name, to the interfaces it is driven through.
type TransmissionJoint struct {
	Name               string
	HardwareInterfaces []HardwareInterface
}

// TransmissionActuator is an actuator driving a transmission.
type TransmissionActuator struct {
	Name                string
	MechanicalReduction *float64
}

// Transmission links actuators to joints. Joint references are resolved only
// when the owning tree is serialized.
type Transmission struct {
	Name      string
	Type      TransmissionType
	Joints    []TransmissionJoint
	Actuators []TransmissionActuator
}

// JointNames lists the referenced joints in declaration order.
func (t Transmission) JointNames() []string {
	names := make([]string, len(t.Joints))
	for i, j := range t.Joints {
		names[i] = j.Name
	}
	return names
}
