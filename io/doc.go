// Package io implements the drum-buffered I/O subsystem of the AN/FSQ-7.
//
// The magnetic drum is the sole conduit between the CPU and the outside
// world. External devices (radar, cross-tell, the light gun) write into
// drum fields; each write raises the field's status channel. The CPU
// observes a status channel, reads the accumulated data, and then
// explicitly acknowledges the channel. A read never clears a status flag:
// new data may still be arriving, so acknowledgement is a separate step.
package io
