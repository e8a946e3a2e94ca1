package simmodel

// SimTime is simulated time: an abstract, unitless real number that
// advances only by jumping to the next scheduled event. It is not
// wall-clock time and carries no timezone or calendar meaning.
type SimTime = float64

// ResourceType names the class of resource an activity demands, e.g.
// "loader" or "token". Kept as a defined type rather than a bare
// string so it can't be mixed up with an entity or activity id at a
// call site.
type ResourceType string

// FlowEntity is a unit that traverses the activity graph: a truck, a
// job, a packet. DepartureTime is the sentinel zero value until the
// entity completes the activity it is currently waiting on.
type FlowEntity struct {
	ID            string
	ActivityID    string
	ArrivalTime   SimTime
	DepartureTime SimTime
	Attributes    Attributes

	// InService is true from the moment begin_service succeeds for
	// this entity until its end_service fires. It keeps the drain
	// phase from re-selecting an entity that is already mid-service
	// but hasn't departed yet (DepartureTime is still the sentinel 0
	// until end_service runs).
	InService bool
}

// Processed reports whether this entity has completed its current
// activity: DepartureTime == 0 means "not yet serviced", per spec.
func (e *FlowEntity) Processed() bool {
	return e.DepartureTime != 0
}

// ResourceEntity is a reusable or disposable resource: a machine, a
// server, a one-shot token. ReadyTime is when the resource next
// becomes available for acquisition.
type ResourceEntity struct {
	ID         string
	Type       ResourceType
	ReadyTime  SimTime
	Available  bool
	Disposable bool
	Attributes Attributes
}
