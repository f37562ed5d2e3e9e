package main_test

import (
	"testing"

	"github.com/aetherarm/arm7tdmi/cpu"
	"github.com/aetherarm/arm7tdmi/membus"
)

// BenchmarkCPU drives the core through a tight branch-to-self loop so
// the fetch/decode/execute path is exercised without depending on any
// particular cartridge image.
func BenchmarkCPU(b *testing.B) {
	bios := make([]byte, 16*1024)
	cart := make([]byte, 1024)

	// B -2 (branch to self): condition AL, offset encodes -2 words.
	cart[0], cart[1], cart[2], cart[3] = 0xfe, 0xff, 0xff, 0xea

	bus := membus.NewBus(bios, cart)
	c := cpu.NewCPU(bus)
	c.Set(cpu.RegPC, 0x08000000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
