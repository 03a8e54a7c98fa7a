package main

// Endpoint is the demo's label type: a small, Stringer-like enum
// routing observations to one panel per HTTP endpoint, exactly the
// shape spec.md §3 describes for an application-defined label.
type Endpoint string

const (
	EndpointUsers  Endpoint = "users"
	EndpointOrders Endpoint = "orders"
	EndpointHealth Endpoint = "health"
)

var demoEndpoints = []Endpoint{EndpointUsers, EndpointOrders, EndpointHealth}
