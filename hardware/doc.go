// Package hardware collects the ARM7TDMI CPU core and the small bus
// contract it talks to. There is no VCS-style top-level emulation type here
// - this module is the CPU core only, driven one instruction per Step by
// a host that owns the rest of the system (memory map, display, DMA,
// timers).
package hardware
