package enums

import "fmt"

// PickupSlot is a fixed time window during which a vendor may collect an order.
type PickupSlot string

const (
	PickupSlotEarlyMorning PickupSlot = "7-9 AM"
	PickupSlotMorning      PickupSlot = "9-11 AM"
	PickupSlotMidday       PickupSlot = "11-1 PM"
	PickupSlotAfternoon    PickupSlot = "1-3 PM"
	PickupSlotLateNoon     PickupSlot = "3-5 PM"
	PickupSlotEvening      PickupSlot = "5-7 PM"
	PickupSlotNight        PickupSlot = "7-9 PM"
)

var validPickupSlots = []PickupSlot{
	PickupSlotEarlyMorning,
	PickupSlotMorning,
	PickupSlotMidday,
	PickupSlotAfternoon,
	PickupSlotLateNoon,
	PickupSlotEvening,
	PickupSlotNight,
}

// PickupSlots returns the canonical slot labels in display order.
func PickupSlots() []PickupSlot {
	out := make([]PickupSlot, len(validPickupSlots))
	copy(out, validPickupSlots)
	return out
}

// String implements fmt.Stringer.
func (p PickupSlot) String() string {
	return string(p)
}

// IsValid reports whether the value is one of the seven canonical slots.
func (p PickupSlot) IsValid() bool {
	for _, candidate := range validPickupSlots {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePickupSlot converts raw input into a PickupSlot.
func ParsePickupSlot(value string) (PickupSlot, error) {
	for _, candidate := range validPickupSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pickup slot %q", value)
}
