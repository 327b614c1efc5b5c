//go:build linux
// +build linux

package wireless

import (
	"errors"
	"net"
	"os"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/mdlayher/netlink/nltest"
	"golang.org/x/sys/unix"
)

func TestLinux_clientInterfacesOK(t *testing.T) {
	want := []*Interface{
		{
			Index:        1,
			Name:         "lo",
			HardwareAddr: net.HardwareAddr{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			Index:        2,
			Name:         "wlan0",
			HardwareAddr: net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad},
		},
	}

	c := testClient(t, func(reqs []netlink.Message) ([]netlink.Message, error) {
		if len(reqs) != 1 {
			t.Fatalf("unexpected number of requests: %d", len(reqs))
		}

		req := reqs[0]
		if want, got := netlink.HeaderType(unix.RTM_GETLINK), req.Header.Type; want != got {
			t.Fatalf("unexpected request type:\n- want: %v\n-  got: %v",
				want, got)
		}
		if req.Header.Flags&netlink.Dump == 0 {
			t.Fatalf("expected a dump request, flags: %v", req.Header.Flags)
		}

		return []netlink.Message{
			mustLinkMessage(t, req, 1, "lo", want[0].HardwareAddr),
			// No link-layer address, must be skipped.
			mustLinkMessage(t, req, 3, "tun0", nil),
			mustLinkMessage(t, req, 2, "wlan0", want[1].HardwareAddr),
		}, nil
	})

	got, err := c.Interfaces()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The test client's ioctl socket is a plain file, so every
	// wireless probe fails and each interface stays non-wireless.
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected interfaces (-want +got):\n%s", diff)
	}
}

func TestLinux_clientNameNotSupported(t *testing.T) {
	c := testClient(t, noRequest(t))

	_, err := c.Name("eth0")
	if !errors.Is(err, ErrNotSupported) {
		t.Fatalf("unexpected error:\n- want: %v\n-  got: %v",
			ErrNotSupported, err)
	}
}

func TestLinux_clientQueriesFailOnNonWirelessSocket(t *testing.T) {
	c := testClient(t, noRequest(t))

	// Every wireless query against a plain file descriptor must fail
	// without aborting the others.
	if _, err := c.ESSID("wlan0"); err == nil {
		t.Fatal("expected an ESSID error")
	}
	if _, err := c.AccessPoint("wlan0"); err == nil {
		t.Fatal("expected an access point error")
	}
	if _, err := c.Bitrate("wlan0"); err == nil {
		t.Fatal("expected a bitrate error")
	}
	if _, err := c.TransmitPower("wlan0"); err == nil {
		t.Fatal("expected a transmit power error")
	}
	if _, err := c.Statistics("wlan0"); err == nil {
		t.Fatal("expected a statistics error")
	}
	if _, err := c.Range("wlan0"); err == nil {
		t.Fatal("expected a range error")
	}
}

func Test_parseInterfaces(t *testing.T) {
	tests := []struct {
		name string
		msgs []netlink.Message
		ifis []*Interface
		err  error
	}{
		{
			name: "empty",
			msgs: []netlink.Message{},
			ifis: []*Interface{},
		},
		{
			name: "short data",
			msgs: []netlink.Message{{
				Header: netlink.Header{Type: unix.RTM_NEWLINK},
				Data:   make([]byte, 8),
			}},
			err: errInvalidLinkMessage,
		},
		{
			name: "not a link message",
			msgs: []netlink.Message{{
				Header: netlink.Header{Type: unix.RTM_NEWADDR},
				Data:   make([]byte, unix.SizeofIfInfomsg),
			}},
			ifis: []*Interface{},
		},
		{
			name: "no link-layer address",
			msgs: []netlink.Message{
				linkMessage(t, 1, "tun0", nil),
			},
			ifis: []*Interface{},
		},
		{
			name: "OK",
			msgs: []netlink.Message{
				linkMessage(t, 2, "wlan0", net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad}),
			},
			ifis: []*Interface{{
				Index:        2,
				Name:         "wlan0",
				HardwareAddr: net.HardwareAddr{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ifis, err := parseInterfaces(tt.msgs)

			if want, got := tt.err, err; want != got {
				t.Fatalf("unexpected error:\n- want: %v\n-  got: %v",
					want, got)
			}
			if err != nil {
				return
			}

			if diff := cmp.Diff(tt.ifis, ifis); diff != "" {
				t.Fatalf("unexpected interfaces (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinux_newIwreqName(t *testing.T) {
	tests := []struct {
		name   string
		ifname string
		field  string
	}{
		{
			name:   "short",
			ifname: "wlan0",
			field:  "wlan0",
		},
		{
			name:   "exact",
			ifname: "exactly-15-char",
			field:  "exactly-15-char",
		},
		{
			name:   "truncated",
			ifname: "a-name-longer-than-the-field",
			field:  "a-name-longer-t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrq := newIwreq(tt.ifname)

			if wrq.Name[len(wrq.Name)-1] != 0x00 {
				t.Fatal("interface name field must stay NUL terminated")
			}
			if want, got := tt.field, nlenc.String(wrq.Name[:]); want != got {
				t.Fatalf("unexpected name field:\n- want: %q\n-  got: %q",
					want, got)
			}
		})
	}
}

// TestLinux_kernelStructLayout pins the Go mirrors of the wireless
// extensions structures to the kernel ABI offsets.
func TestLinux_kernelStructLayout(t *testing.T) {
	if want, got := uintptr(32), unsafe.Sizeof(iwreq{}); want != got {
		t.Fatalf("unexpected iwreq size:\n- want: %d\n-  got: %d", want, got)
	}
	if want, got := uintptr(8), unsafe.Sizeof(iwParam{}); want != got {
		t.Fatalf("unexpected iw_param size:\n- want: %d\n-  got: %d", want, got)
	}
	if want, got := uintptr(16), unsafe.Sizeof(sockaddr{}); want != got {
		t.Fatalf("unexpected sockaddr size:\n- want: %d\n-  got: %d", want, got)
	}
	if want, got := uintptr(32), unsafe.Sizeof(iwStatistics{}); want != got {
		t.Fatalf("unexpected iw_statistics size:\n- want: %d\n-  got: %d", want, got)
	}
	if want, got := uintptr(44), unsafe.Offsetof(iwRange{}.MaxQual); want != got {
		t.Fatalf("unexpected iw_range max_qual offset:\n- want: %d\n-  got: %d", want, got)
	}
	if want, got := uintptr(48), unsafe.Offsetof(iwRange{}.AvgQual); want != got {
		t.Fatalf("unexpected iw_range avg_qual offset:\n- want: %d\n-  got: %d", want, got)
	}
}

// testClient creates a client whose netlink conn is served by fn and
// whose ioctl socket is a plain file, so that every wireless probe
// fails with an inappropriate-ioctl errno.
func testClient(t *testing.T, fn nltest.Func) *client {
	t.Helper()

	fd, err := unix.Open(os.DevNull, unix.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("failed to open %s: %v", os.DevNull, err)
	}

	c := &client{
		fd: fd,
		c:  nltest.Dial(fn),
	}
	t.Cleanup(func() { _ = c.Close() })

	return c
}

// noRequest returns an nltest.Func for tests which must not touch the
// netlink conn.
func noRequest(t *testing.T) nltest.Func {
	return func(reqs []netlink.Message) ([]netlink.Message, error) {
		t.Fatalf("unexpected netlink request: %+v", reqs)
		return nil, nil
	}
}

// mustLinkMessage builds an RTM_NEWLINK reply to req.
func mustLinkMessage(t *testing.T, req netlink.Message, index int, name string, addr net.HardwareAddr) netlink.Message {
	t.Helper()

	m := linkMessage(t, index, name, addr)
	m.Header.Sequence = req.Header.Sequence
	m.Header.PID = req.Header.PID
	return m
}

// linkMessage builds an RTM_NEWLINK message carrying an ifinfomsg and
// the name/address attributes.
func linkMessage(t *testing.T, index int, name string, addr net.HardwareAddr) netlink.Message {
	t.Helper()

	attrs := []netlink.Attribute{{
		Type: unix.IFLA_IFNAME,
		Data: nlenc.Bytes(name),
	}}
	if addr != nil {
		attrs = append(attrs, netlink.Attribute{
			Type: unix.IFLA_ADDRESS,
			Data: addr,
		})
	}

	ab, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		t.Fatalf("failed to marshal attributes: %v", err)
	}

	data := make([]byte, unix.SizeofIfInfomsg)
	nlenc.PutUint32(data[4:8], uint32(index))

	return netlink.Message{
		Header: netlink.Header{
			Type: unix.RTM_NEWLINK,
		},
		Data: append(data, ab...),
	}
}
