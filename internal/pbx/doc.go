// Package pbx dispatches click-to-call requests to a FusionPBX-style
// endpoint. A dispatch is a single HTTP GET with the caller and callee
// identity both set to the dialed number; the PBX originates the actual
// call leg.
package pbx
