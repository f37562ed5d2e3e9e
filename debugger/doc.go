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

// Package debugger implements an interactive command surface that drives
// a *cpu.CPU one step at a time: continue, step [n], break <hex-addr>,
// print, read <hex-addr>, quit, help. It sits outside the emulation core
// itself, which it only drives through the core's public interface.
//
// Commands are defined with debugger/commandline's template grammar
// (ParseCommandTemplate/Validate).
package debugger
