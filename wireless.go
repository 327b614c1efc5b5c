// Package wireless reports operating parameters, live statistics and
// capability ranges for Linux wireless network interfaces, using the
// kernel's Wireless Extensions query interface.
package wireless

import (
	"bytes"
	"fmt"
	"net"
	"strconv"
	"unicode/utf8"

	"github.com/dougreese/wireless-info/internal/wext"
)

// A Quality is one link quality sample as the kernel reports it: a
// relative quality value plus raw signal and noise levels, and a bitmask
// indicating which of the three fields carry meaningful data.
type Quality struct {
	// Relative link quality, scaled from zero to the maximum reported
	// by the device's Range.
	Value uint8

	// Raw signal level. Use SignalDBm for the dBm value.
	Level uint8

	// Raw noise level. Use NoiseDBm for the dBm value.
	Noise uint8

	// Validity and update flags covering the other three fields.
	Updated uint8
}

// QualityValid reports whether Value carries a meaningful sample.
func (q Quality) QualityValid() bool { return q.Updated&wext.IW_QUAL_QUAL_INVALID == 0 }

// SignalValid reports whether Level carries a meaningful sample.
func (q Quality) SignalValid() bool { return q.Updated&wext.IW_QUAL_LEVEL_INVALID == 0 }

// NoiseValid reports whether Noise carries a meaningful sample.
func (q Quality) NoiseValid() bool { return q.Updated&wext.IW_QUAL_NOISE_INVALID == 0 }

// SignalDBm returns the signal level in dBm. Drivers report dBm levels
// in a single offset byte: values wrap below zero by 256.
func (q Quality) SignalDBm() int { return int(q.Level) - 0x100 }

// NoiseDBm returns the noise level in dBm, using the same offset
// encoding as SignalDBm.
func (q Quality) NoiseDBm() int { return int(q.Noise) - 0x100 }

// Statistics is a point-in-time snapshot of an interface's wireless
// statistics. The discard counters are monotonically non-decreasing over
// the device's uptime.
type Statistics struct {
	// Opaque, vendor-specific device status code.
	Status uint16

	// The current link quality sample.
	Quality Quality

	// DiscardedNwid is the number of received frames dropped for a
	// wrong network id or ESSID.
	DiscardedNwid uint32

	// DiscardedCrypt is the number of received frames that could not
	// be decrypted.
	DiscardedCrypt uint32

	// DiscardedFrag is the number of received frames dropped because
	// MAC reassembly failed.
	DiscardedFrag uint32

	// DiscardedRetry is the number of transmitted frames dropped after
	// reaching the maximum MAC retry count.
	DiscardedRetry uint32

	// DiscardedMisc is the number of frames dropped for other reasons.
	DiscardedMisc uint32

	// MissedBeacon is the number of periodic beacons the interface
	// failed to receive.
	MissedBeacon uint32
}

// A Range holds the quality bounds a device reports it is capable of.
// These are capability values, not live samples.
type Range struct {
	// The best quality sample the device can produce.
	MaxQuality Quality

	// The quality threshold under which the link is considered bad.
	AvgQuality Quality
}

// A TxPower is a transmit power parameter reported by a device.
type TxPower struct {
	// The raw power value. Its unit depends on Flags.
	Value int

	// Disabled indicates the transmitter is switched off.
	Disabled bool

	// Flags describing the unit of Value: relative (no unit),
	// milliwatts, or dBm.
	Flags uint16
}

// String renders a transmit power: "off" when disabled, the bare value
// for relative units, and dBm otherwise, converting from milliwatts
// when the device reports in them.
func (p TxPower) String() string {
	if p.Disabled {
		return "off"
	}

	if p.Flags&wext.IW_TXPOW_RELATIVE != 0 {
		return strconv.Itoa(p.Value)
	}

	dbm := p.Value
	if p.Flags&wext.IW_TXPOW_MWATT != 0 {
		dbm = MwattToDBm(p.Value)
	}
	return fmt.Sprintf("%d dBm", dbm)
}

// An Interface is a network interface exposing a link-layer address.
type Interface struct {
	// The index of the interface.
	Index int

	// The name of the interface.
	Name string

	// The hardware address of the interface.
	HardwareAddr net.HardwareAddr

	// Wireless indicates whether the interface answered the wireless
	// protocol name probe.
	Wireless bool

	// The wireless protocol name, such as "IEEE 802.11", populated
	// only when Wireless is true.
	Protocol string
}

// log10Magic is the tenth root of ten: one dB step per division.
const log10Magic = 1.25892541179

// MwattToDBm converts a power value in milliwatts to dBm, rounding up.
// The result equals the ceiling of 10*log10(mwatt) for any positive
// input; non-positive input is a caller error.
func MwattToDBm(mwatt int) int {
	// Split off whole bels first so rounding errors cannot accumulate
	// across magnitudes, then take single dB steps with an epsilon
	// guard on the stop condition.
	f := float64(mwatt)
	dbm := 0
	for f > 10.0 {
		dbm += 10
		f /= 10.0
	}
	for f > 1.000001 {
		dbm++
		f /= log10Magic
	}
	return dbm
}

// FormatBitrate renders a bitrate in bits per second with a
// magnitude-appropriate unit prefix, such as "54 Mb/s".
func FormatBitrate(bps int) string {
	rate := float64(bps)

	var (
		scale   byte
		divisor float64
	)
	switch {
	case rate >= 1e9:
		scale, divisor = 'G', 1e9
	case rate >= 1e6:
		scale, divisor = 'M', 1e6
	default:
		scale, divisor = 'k', 1e3
	}

	return fmt.Sprintf("%g %cb/s", rate/divisor, scale)
}

// Access point sentinel addresses. The all-0x44 pattern is an accident
// of history: it is what Orinoco/Prism II chipsets report when no
// address applies, and drivers pass it through unfiltered.
var (
	etherZero      = net.HardwareAddr{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	etherBroadcast = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	etherNone      = net.HardwareAddr{0x44, 0x44, 0x44, 0x44, 0x44, 0x44}
)

// FormatAccessPoint formats an access point hardware address as
// uppercase colon-separated hex octets, substituting the well-known
// sentinel addresses.
func FormatAccessPoint(addr net.HardwareAddr) string {
	switch {
	case bytes.Equal(addr, etherZero):
		return "Not-Associated"
	case bytes.Equal(addr, etherBroadcast):
		return "Invalid"
	case bytes.Equal(addr, etherNone):
		return "None"
	}

	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		addr[0], addr[1], addr[2], addr[3], addr[4], addr[5])
}

// decodeESSID safely parses raw ESSID bytes into UTF-8 runes, dropping
// the trailing NUL padding some drivers include in the reported length.
func decodeESSID(b []byte) string {
	b = bytes.TrimRight(b, "\x00")

	buf := bytes.NewBuffer(nil)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]

		buf.WriteRune(r)
	}

	return buf.String()
}
