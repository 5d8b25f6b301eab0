// SPDX-License-Identifier: MPL-2.0

// Package capture implements an in-process capture block: a Script
// whose body is an ordinary Go function rather than a subprocess,
// running under an ambient context that collects the output of every
// Script it spawns.
package capture
