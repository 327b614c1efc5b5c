// Package wext contains constants from the Linux Wireless Extensions
// user space API (linux/wireless.h, WE-22).
//
// WARNING: THIS IS MANUALLY CREATED. golang.org/x/sys/unix DOES NOT
// EXPORT THE SIOCGIW* REQUEST NUMBERS OR THEIR ASSOCIATED FLAG VALUES.
package wext

// Read-only SIOCGIW* ioctl request numbers.
const (
	SIOCGIWNAME  = 0x8B01
	SIOCGIWRANGE = 0x8B0B
	SIOCGIWSTATS = 0x8B0F
	SIOCGIWAP    = 0x8B15
	SIOCGIWESSID = 0x8B1B
	SIOCGIWRATE  = 0x8B21
	SIOCGIWTXPOW = 0x8B27
)

// IW_ESSID_MAX_SIZE is the maximum length of an ESSID, in octets.
const IW_ESSID_MAX_SIZE = 32

// Flags for the updated field of struct iw_quality.
const (
	IW_QUAL_QUAL_UPDATED  = 0x01
	IW_QUAL_LEVEL_UPDATED = 0x02
	IW_QUAL_NOISE_UPDATED = 0x04
	IW_QUAL_ALL_UPDATED   = 0x07
	IW_QUAL_DBM           = 0x08
	IW_QUAL_QUAL_INVALID  = 0x10
	IW_QUAL_LEVEL_INVALID = 0x20
	IW_QUAL_NOISE_INVALID = 0x40
	IW_QUAL_ALL_INVALID   = 0x70
	IW_QUAL_RCPI          = 0x80
)

// Flags for the flags field of struct iw_param when it carries a
// transmit power value.
const (
	IW_TXPOW_DBM      = 0x0000
	IW_TXPOW_MWATT    = 0x0001
	IW_TXPOW_RELATIVE = 0x0002
	IW_TXPOW_RANGE    = 0x1000
)
