package wireless

import (
	"errors"
	"net"
)

// ErrNotSupported is returned when an interface does not support
// wireless extension queries.
var ErrNotSupported = errors.New("not supported")

// An osClient is the operating system-specific implementation of Client.
type osClient interface {
	Close() error
	Interfaces() ([]*Interface, error)
	Name(ifname string) (string, error)
	ESSID(ifname string) (string, error)
	AccessPoint(ifname string) (net.HardwareAddr, error)
	Bitrate(ifname string) (int, error)
	TransmitPower(ifname string) (*TxPower, error)
	Statistics(ifname string) (*Statistics, error)
	Range(ifname string) (*Range, error)
}

// A Client is a type which can query wireless device parameters and
// statistics using operating system-specific operations.
type Client struct {
	c *client
}

// New creates a new Client.
func New() (*Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}

	return &Client{
		c: c,
	}, nil
}

// Close releases resources used by a Client.
func (c *Client) Close() error {
	return c.c.Close()
}

// Interfaces returns the system's network interfaces, one per link
// carrying a link-layer address, each probed for wireless support.
func (c *Client) Interfaces() ([]*Interface, error) {
	return c.c.Interfaces()
}

// Name returns the wireless protocol name of the named interface. It
// returns ErrNotSupported when the interface does not exist or has no
// wireless extensions, which makes Name the wireless detection probe.
func (c *Client) Name(ifname string) (string, error) {
	return c.c.Name(ifname)
}

// ESSID returns the network name the named interface is associated
// with.
func (c *Client) ESSID(ifname string) (string, error) {
	return c.c.ESSID(ifname)
}

// AccessPoint returns the hardware address of the access point the
// named interface is associated with.
func (c *Client) AccessPoint(ifname string) (net.HardwareAddr, error) {
	return c.c.AccessPoint(ifname)
}

// Bitrate returns the current bitrate of the named interface, in bits
// per second.
func (c *Client) Bitrate(ifname string) (int, error) {
	return c.c.Bitrate(ifname)
}

// TransmitPower returns the transmit power parameter of the named
// interface.
func (c *Client) TransmitPower(ifname string) (*TxPower, error) {
	return c.c.TransmitPower(ifname)
}

// Statistics returns a point-in-time snapshot of the named interface's
// wireless statistics.
func (c *Client) Statistics(ifname string) (*Statistics, error) {
	return c.c.Statistics(ifname)
}

// Range returns the quality capability bounds of the named interface's
// device.
func (c *Client) Range(ifname string) (*Range, error) {
	return c.c.Range(ifname)
}
