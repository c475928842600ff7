package enums

import "fmt"

// MaintenanceType classifies a maintenance visit.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
	MaintenanceEmergency  MaintenanceType = "emergency"
	MaintenanceUpgrade    MaintenanceType = "upgrade"
)

var validMaintenanceTypes = []MaintenanceType{
	MaintenancePreventive,
	MaintenanceCorrective,
	MaintenanceEmergency,
	MaintenanceUpgrade,
}

// String implements fmt.Stringer.
func (m MaintenanceType) String() string {
	return string(m)
}

// IsValid reports whether the maintenance type is recognized.
func (m MaintenanceType) IsValid() bool {
	for _, candidate := range validMaintenanceTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMaintenanceType converts a raw string into a MaintenanceType.
func ParseMaintenanceType(value string) (MaintenanceType, error) {
	for _, candidate := range validMaintenanceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid maintenance type %q", value)
}
