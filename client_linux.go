//go:build linux
// +build linux

package wireless

import (
	"errors"
	"net"
	"os"
	"runtime"
	"unsafe"

	"github.com/dougreese/wireless-info/internal/wext"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

var errInvalidLinkMessage = errors.New("invalid route netlink link message")

var _ osClient = &client{}

// A client is the Linux implementation of osClient. Wireless queries go
// through the Wireless Extensions ioctl interface on a plain datagram
// socket; interface enumeration uses a route netlink link dump.
type client struct {
	fd int           // socket for SIOCGIW* ioctls
	c  *netlink.Conn // route netlink, link enumeration
}

// newClient opens the ioctl socket and dials a route netlink
// connection.
func newClient() (*client, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}

	c, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		// Ensure the ioctl socket is closed on error to avoid leaking
		// file descriptors.
		_ = unix.Close(fd)
		return nil, err
	}

	return &client{
		fd: fd,
		c:  c,
	}, nil
}

// Close closes the client's ioctl socket and netlink connection.
func (c *client) Close() error {
	if err := unix.Close(c.fd); err != nil {
		_ = c.c.Close()
		return os.NewSyscallError("close", err)
	}
	return c.c.Close()
}

// An iwreq mirrors struct iwreq: a fixed-size interface name followed
// by the iwreq_data union, expressed here as raw bytes. The kernel
// copies the whole structure back on every SIOCGIW* call, so requests
// must be exactly this size.
type iwreq struct {
	Name [unix.IFNAMSIZ]byte
	Data [16]byte
}

// newIwreq creates an iwreq for the named interface. Oversized names
// truncate to the NUL-terminated field bounds, they never overflow.
func newIwreq(ifname string) iwreq {
	var req iwreq
	copy(req.Name[:len(req.Name)-1], ifname)
	return req
}

// param interprets the request union as a struct iw_param.
func (r *iwreq) param() *iwParam { return (*iwParam)(unsafe.Pointer(&r.Data[0])) }

// point interprets the request union as a struct iw_point.
func (r *iwreq) point() *iwPoint { return (*iwPoint)(unsafe.Pointer(&r.Data[0])) }

// sockaddr interprets the request union as a struct sockaddr.
func (r *iwreq) sockaddr() *sockaddr { return (*sockaddr)(unsafe.Pointer(&r.Data[0])) }

// An iwParam mirrors struct iw_param.
type iwParam struct {
	Value    int32
	Fixed    uint8
	Disabled uint8
	Flags    uint16
}

// An iwPoint mirrors struct iw_point: a user space buffer along with
// its length and flags.
type iwPoint struct {
	Pointer unsafe.Pointer
	Length  uint16
	Flags   uint16
}

// A sockaddr mirrors struct sockaddr.
type sockaddr struct {
	Family uint16
	Data   [14]byte
}

// An iwQuality mirrors struct iw_quality.
type iwQuality struct {
	Qual    uint8
	Level   uint8
	Noise   uint8
	Updated uint8
}

// quality converts a raw kernel quality sample.
func (q iwQuality) quality() Quality {
	return Quality{
		Value:   q.Qual,
		Level:   q.Level,
		Noise:   q.Noise,
		Updated: q.Updated,
	}
}

// An iwStatistics mirrors struct iw_statistics.
type iwStatistics struct {
	Status  uint16
	Qual    iwQuality
	_       [2]byte
	Discard struct {
		Nwid     uint32
		Code     uint32
		Fragment uint32
		Retries  uint32
		Misc     uint32
	}
	Miss struct {
		Beacon uint32
	}
}

// An iwRange mirrors the leading, layout-stable fields of struct
// iw_range through avg_qual. Drivers disagree about the full structure
// size across Wireless Extensions versions, so the remainder is
// received into padding and ignored.
type iwRange struct {
	Throughput      uint32
	MinNwid         uint32
	MaxNwid         uint32
	OldNumChannels  uint16
	OldNumFrequency uint8
	ScanCapa        uint8
	EventCapa       [6]uint32
	Sensitivity     int32
	MaxQual         iwQuality
	AvgQual         iwQuality

	_ [1024]byte
}

// ioctl issues a read-only wireless extensions request against the
// client's socket.
func (c *client) ioctl(req uintptr, wrq *iwreq) error {
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(c.fd),
		req,
		uintptr(unsafe.Pointer(wrq)),
	)
	if errno != 0 {
		return os.NewSyscallError("ioctl", errno)
	}

	return nil
}

// notSupported reports whether err is one of the errnos the kernel uses
// to reject wireless queries on interfaces without wireless extensions.
func notSupported(err error) bool {
	for _, errno := range []unix.Errno{
		unix.EOPNOTSUPP,
		unix.EINVAL,
		unix.ENODEV,
		unix.ENOTTY,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	return false
}

// Name returns the wireless protocol name for ifname. This doubles as
// the wireless support probe: interfaces without wireless extensions
// fail with ErrNotSupported.
func (c *client) Name(ifname string) (string, error) {
	wrq := newIwreq(ifname)
	if err := c.ioctl(wext.SIOCGIWNAME, &wrq); err != nil {
		if notSupported(err) {
			return "", ErrNotSupported
		}
		return "", err
	}

	return nlenc.String(wrq.Data[:]), nil
}

// ESSID returns the network name ifname is associated with.
func (c *client) ESSID(ifname string) (string, error) {
	// Maximum ESSID length, plus room for the trailing NUL and index
	// byte older drivers append.
	buf := make([]byte, wext.IW_ESSID_MAX_SIZE+2)

	wrq := newIwreq(ifname)
	p := wrq.point()
	p.Pointer = unsafe.Pointer(&buf[0])
	p.Length = uint16(len(buf))

	err := c.ioctl(wext.SIOCGIWESSID, &wrq)
	runtime.KeepAlive(buf)
	if err != nil {
		return "", err
	}

	n := int(wrq.point().Length)
	if n > len(buf) {
		n = len(buf)
	}

	return decodeESSID(buf[:n]), nil
}

// AccessPoint returns the hardware address of the access point ifname
// is associated with.
func (c *client) AccessPoint(ifname string) (net.HardwareAddr, error) {
	wrq := newIwreq(ifname)
	if err := c.ioctl(wext.SIOCGIWAP, &wrq); err != nil {
		return nil, err
	}

	addr := make(net.HardwareAddr, 6)
	copy(addr, wrq.sockaddr().Data[:6])
	return addr, nil
}

// Bitrate returns the current bitrate of ifname in bits per second.
func (c *client) Bitrate(ifname string) (int, error) {
	wrq := newIwreq(ifname)
	if err := c.ioctl(wext.SIOCGIWRATE, &wrq); err != nil {
		return 0, err
	}

	return int(wrq.param().Value), nil
}

// TransmitPower returns the transmit power parameter of ifname.
func (c *client) TransmitPower(ifname string) (*TxPower, error) {
	wrq := newIwreq(ifname)
	if err := c.ioctl(wext.SIOCGIWTXPOW, &wrq); err != nil {
		return nil, err
	}

	p := wrq.param()
	return &TxPower{
		Value:    int(p.Value),
		Disabled: p.Disabled != 0,
		Flags:    p.Flags,
	}, nil
}

// Statistics returns a snapshot of ifname's wireless statistics.
func (c *client) Statistics(ifname string) (*Statistics, error) {
	var stats iwStatistics

	wrq := newIwreq(ifname)
	p := wrq.point()
	p.Pointer = unsafe.Pointer(&stats)
	p.Length = uint16(unsafe.Sizeof(stats))
	p.Flags = 1

	err := c.ioctl(wext.SIOCGIWSTATS, &wrq)
	runtime.KeepAlive(&stats)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Status:         stats.Status,
		Quality:        stats.Qual.quality(),
		DiscardedNwid:  stats.Discard.Nwid,
		DiscardedCrypt: stats.Discard.Code,
		DiscardedFrag:  stats.Discard.Fragment,
		DiscardedRetry: stats.Discard.Retries,
		DiscardedMisc:  stats.Discard.Misc,
		MissedBeacon:   stats.Miss.Beacon,
	}, nil
}

// Range returns the quality capability bounds of ifname's device.
func (c *client) Range(ifname string) (*Range, error) {
	var rng iwRange

	wrq := newIwreq(ifname)
	p := wrq.point()
	p.Pointer = unsafe.Pointer(&rng)
	p.Length = uint16(unsafe.Sizeof(rng))
	p.Flags = 1

	err := c.ioctl(wext.SIOCGIWRANGE, &wrq)
	runtime.KeepAlive(&rng)
	if err != nil {
		return nil, err
	}

	return &Range{
		MaxQuality: rng.MaxQual.quality(),
		AvgQuality: rng.AvgQual.quality(),
	}, nil
}

// Interfaces dumps the system's links over route netlink, keeps those
// carrying a link-layer address, and probes each one for wireless
// support.
func (c *client) Interfaces() ([]*Interface, error) {
	msgs, err := c.c.Execute(netlink.Message{
		Header: netlink.Header{
			Type:  unix.RTM_GETLINK,
			Flags: netlink.Request | netlink.Dump,
		},
		// struct ifinfomsg, family AF_UNSPEC.
		Data: make([]byte, unix.SizeofIfInfomsg),
	})
	if err != nil {
		return nil, err
	}

	ifis, err := parseInterfaces(msgs)
	if err != nil {
		return nil, err
	}

	for _, ifi := range ifis {
		// The probe doubles as the wireless test: a failure only
		// leaves the interface classified as not wireless.
		name, err := c.Name(ifi.Name)
		if err != nil {
			continue
		}

		ifi.Wireless = true
		ifi.Protocol = name
	}

	return ifis, nil
}

// parseInterfaces parses zero or more Interfaces from route netlink
// link messages, skipping links without a link-layer address.
func parseInterfaces(msgs []netlink.Message) ([]*Interface, error) {
	ifis := make([]*Interface, 0, len(msgs))
	for _, m := range msgs {
		if m.Header.Type != unix.RTM_NEWLINK {
			continue
		}
		if len(m.Data) < unix.SizeofIfInfomsg {
			return nil, errInvalidLinkMessage
		}

		ifi := Interface{
			Index: int(int32(nlenc.Uint32(m.Data[4:8]))),
		}

		attrs, err := netlink.UnmarshalAttributes(m.Data[unix.SizeofIfInfomsg:])
		if err != nil {
			return nil, err
		}

		for _, a := range attrs {
			switch a.Type {
			case unix.IFLA_IFNAME:
				ifi.Name = nlenc.String(a.Data)
			case unix.IFLA_ADDRESS:
				ifi.HardwareAddr = net.HardwareAddr(a.Data)
			}
		}

		if ifi.HardwareAddr == nil {
			continue
		}

		ifis = append(ifis, &ifi)
	}

	return ifis, nil
}
