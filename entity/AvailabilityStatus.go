package entity

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilitySoldOut   AvailabilityStatus = "sold_out"
	AvailabilityLimited   AvailabilityStatus = "limited"
	AvailabilityPreOrder  AvailabilityStatus = "pre_order"
)

func (s AvailabilityStatus) Valid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilitySoldOut, AvailabilityLimited, AvailabilityPreOrder:
		return true
	}
	return false
}
