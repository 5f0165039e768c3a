package domain

// DayOfWeek uses the remote directory's 1-based numbering.
type DayOfWeek int

const (
	Sunday    DayOfWeek = 1
	Monday    DayOfWeek = 2
	Tuesday   DayOfWeek = 3
	Wednesday DayOfWeek = 4
	Thursday  DayOfWeek = 5
	Friday    DayOfWeek = 6
	Saturday  DayOfWeek = 7
)

func (d DayOfWeek) Valid() bool { return d >= Sunday && d <= Saturday }

type VenueType int

const (
	VenueTypeNone     VenueType = 0
	VenueTypeInPerson VenueType = 1
	VenueTypeVirtual  VenueType = 2
	VenueTypeHybrid   VenueType = 3
)

func (v VenueType) Valid() bool { return v >= VenueTypeNone && v <= VenueTypeHybrid }
