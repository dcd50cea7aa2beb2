package core

// Stat names one of the five statistics the engine derives. Print takes
// Stats as its selection set instead of a bit mask.
type Stat int

const (
	SMA Stat = iota
	CA
	WMA
	EMA
	MM
	statCount
)

// printOrder fixes the emission order of Print, whatever order the
// selection was passed in.
var printOrder = [statCount]Stat{SMA, CA, WMA, EMA, MM}

func (stat Stat) String() string {
	switch stat {
	case SMA:
		return "SMA"
	case CA:
		return "CA"
	case WMA:
		return "WMA"
	case EMA:
		return "EMA"
	case MM:
		return "MM"
	}
	return "unknown"
}
