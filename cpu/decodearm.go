// This file is part of AetherARM.
//
// AetherARM is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// AetherARM is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with AetherARM.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import "github.com/aetherarm/arm7tdmi/bits"

// armDecoderFn turns a raw ARM instruction word into an Operation.
type armDecoderFn func(instr uint32) Operation

const armLUTSize = 1 << 12

// armLUT is indexed by (bits[27:20] << 4) | bits[7:4], the same
// twelve bits the architecture reference uses to disambiguate the
// top-level instruction classes.
var armLUT [armLUTSize]armDecoderFn

func init() {
	for i := range armLUT {
		armLUT[i] = decodeUnknownARM
	}

	// data processing, immediate shift
	addARMPattern("000xxxxx xxx0", decodeDataProcessingARM)
	// miscellaneous (MRS, and everything this core does not implement)
	addARMPattern("00010xx0 xxx0", decodeUnknownARM)
	addARMPattern("00010x00 0000", decodeMRSARM)
	addARMPattern("00010x10 0000", decodeMSRARM)
	// data processing, register shift
	addARMPattern("000xxxxx 0xx1", decodeDataProcessingARM)
	// miscellaneous
	addARMPattern("00010xx0 xxx1", decodeUnknownARM)
	addARMPattern("00010010 0001", decodeBXARM)
	// halfword and signed byte/halfword load/store, register or immediate offset
	addARMPattern("000xxxxx 1xx1", decodeLoadStoreHalfwordARM)
	// the SH=00 corner of that space is multiply/SWP, neither of which
	// this core implements
	addARMPattern("000xxxxx 1001", decodeUnknownARM)
	// data processing, immediate operand
	addARMPattern("001xxxxx xxxx", decodeDataProcessingARM)
	// undefined
	addARMPattern("00110x00 1xx1", decodeUnknownARM)
	// move immediate to status register
	addARMPattern("00110x10 xxxx", decodeMSRImmediateARM)
	// load/store, immediate offset
	addARMPattern("010xxxxx xxxx", decodeLoadStoreWordARM)
	// load/store, register offset
	addARMPattern("011xxxxx xxx0", decodeLoadStoreWordARM)
	// media instructions (not implemented)
	addARMPattern("011xxxxx xxx1", decodeUnknownARM)
	// undefined
	addARMPattern("01111111 1111", decodeUnknownARM)
	// load/store multiple
	addARMPattern("100xxxxx xxxx", decodeLoadStoreMultipleARM)
	// branch
	addARMPattern("1010xxxx xxxx", decodeBARM)
	addARMPattern("1011xxxx xxxx", decodeBLARM)
	// coprocessor load/store, coprocessor data processing, coprocessor
	// register transfers, software interrupt: all out of scope
	addARMPattern("110xxxxx xxxx", decodeUnknownARM)
	addARMPattern("1110xxxx xxx0", decodeUnknownARM)
	addARMPattern("1110xxxx xxx1", decodeUnknownARM)
	addARMPattern("1111xxxx xxxx", decodeUnknownARM)
}

// addARMPattern registers decoder for every concrete index matching a
// 12-character pattern of '0', '1' and 'x' (don't-care). Patterns
// registered later override the indices they share with earlier,
// more general patterns.
func addARMPattern(pattern string, decoder armDecoderFn) {
	p := stripSpaces(pattern)
	if len(p) != 12 {
		panic("arm decode pattern must be 12 bits long: " + pattern)
	}

	baseIndex := 0
	var wildcards []uint
	for i, c := range p {
		bitPos := uint(11 - i)
		switch c {
		case '0':
		case '1':
			baseIndex |= 1 << bitPos
		case 'x':
			wildcards = append(wildcards, bitPos)
		default:
			panic("invalid character in arm decode pattern: " + pattern)
		}
	}

	combinations := 1 << len(wildcards)
	for i := 0; i < combinations; i++ {
		index := baseIndex
		for j, pos := range wildcards {
			if i&(1<<uint(j)) != 0 {
				index |= 1 << pos
			} else {
				index &^= 1 << pos
			}
		}
		armLUT[index] = decoder
	}
}

func stripSpaces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func armIndex(instr uint32) uint32 {
	upper := bits.Extract(instr, 20, 8)
	lower := bits.Extract(instr, 4, 4)
	return (upper << 4) | lower
}

// DecodeARM resolves a 32-bit ARM-state instruction word into an
// Operation, or a DecodeError if the condition field is the reserved
// NV value.
func DecodeARM(instr uint32) (Operation, error) {
	cond := DecodeCondition(instr)
	if cond == NV {
		return nil, &DecodeError{Kind: ErrReservedCondition, Instr: instr}
	}
	return armLUT[armIndex(instr)](instr), nil
}

func decodeUnknownARM(instr uint32) Operation {
	return Unknown{Instr: instr}
}

func decodeDataProcessingARM(instr uint32) Operation {
	return DecodeDataProcessing(instr)
}

func decodeLoadStoreWordARM(instr uint32) Operation {
	return DecodeLoadStoreWord(instr)
}

func decodeLoadStoreHalfwordARM(instr uint32) Operation {
	return DecodeLoadStoreHalfwordOrSigned(instr)
}

func decodeLoadStoreMultipleARM(instr uint32) Operation {
	return DecodeLoadStoreMultiple(instr)
}

func decodeBARM(instr uint32) Operation {
	return DecodeBranch(instr)
}

func decodeBLARM(instr uint32) Operation {
	return DecodeBranch(instr)
}

func decodeBXARM(instr uint32) Operation {
	return DecodeBranchExchange(instr, false)
}

func decodeMRSARM(instr uint32) Operation {
	return DecodeMRS(instr)
}

func decodeMSRARM(instr uint32) Operation {
	return DecodeMSR(instr)
}

func decodeMSRImmediateARM(instr uint32) Operation {
	if !bits.Bit(instr, 21) {
		return Unknown{Instr: instr}
	}
	return DecodeMSR(instr)
}
