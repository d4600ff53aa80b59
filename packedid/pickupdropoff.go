package packedid

// PickupDropOffType is a 2-bit passenger-exchange rule for one (trip, stop).
type PickupDropOffType byte

const (
	Regular PickupDropOffType = iota
	NotAvailable
	MustPhoneAgency
	MustCoordinateWithDriver
)

func (t PickupDropOffType) String() string {
	switch t {
	case Regular:
		return "REGULAR"
	case NotAvailable:
		return "NOT_AVAILABLE"
	case MustPhoneAgency:
		return "MUST_PHONE_AGENCY"
	case MustCoordinateWithDriver:
		return "MUST_COORDINATE_WITH_DRIVER"
	default:
		panic("packedid: unknown PickupDropOffType")
	}
}

// PickupDropOffPair is the {pickup, drop-off} rule attached to one
// (trip, stop) slot. The packed on-disk/in-memory form is two bits per
// value, two pairs per byte — this struct is the unpacked, typed view.
type PickupDropOffPair struct {
	Pickup  PickupDropOffType
	DropOff PickupDropOffType
}

// PackPickupDropOff packs pairs, indexed by slot g = trip*stopCount+stop,
// into bytes at two bits per value. Together with UnpackPickupDropOff it
// is the only code that knows the byte layout; everything else goes
// through these two functions.
func PackPickupDropOff(pairs []PickupDropOffPair) []byte {
	data := make([]byte, (len(pairs)+1)/2)
	for g, p := range pairs {
		setPickupDropOff(data, g, p)
	}
	return data
}

// UnpackPickupDropOff reads the pair for slot g out of data.
func UnpackPickupDropOff(data []byte, g int) PickupDropOffPair {
	b := data[g/2]
	if g%2 == 0 {
		return PickupDropOffPair{
			Pickup:  PickupDropOffType((b >> 2) & 0b11),
			DropOff: PickupDropOffType(b & 0b11),
		}
	}
	return PickupDropOffPair{
		Pickup:  PickupDropOffType((b >> 6) & 0b11),
		DropOff: PickupDropOffType((b >> 4) & 0b11),
	}
}

func setPickupDropOff(data []byte, g int, p PickupDropOffPair) {
	idx := g / 2
	if g%2 == 0 {
		data[idx] = (data[idx] &^ 0b1111) | (byte(p.Pickup) << 2) | byte(p.DropOff)
	} else {
		data[idx] = (data[idx] &^ 0b11110000) | (byte(p.Pickup) << 6) | (byte(p.DropOff) << 4)
	}
}
