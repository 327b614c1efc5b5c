//go:build !linux
// +build !linux

package wireless

import (
	"fmt"
	"net"
	"runtime"
)

var _ osClient = &client{}

var errUnimplemented = fmt.Errorf("wireless queries not implemented on %s", runtime.GOOS)

// A client is the no-op implementation for platforms without the
// Wireless Extensions facility.
type client struct{}

func newClient() (*client, error) { return nil, errUnimplemented }

func (*client) Close() error                                   { return errUnimplemented }
func (*client) Interfaces() ([]*Interface, error)              { return nil, errUnimplemented }
func (*client) Name(_ string) (string, error)                  { return "", errUnimplemented }
func (*client) ESSID(_ string) (string, error)                 { return "", errUnimplemented }
func (*client) AccessPoint(_ string) (net.HardwareAddr, error) { return nil, errUnimplemented }
func (*client) Bitrate(_ string) (int, error)                  { return 0, errUnimplemented }
func (*client) TransmitPower(_ string) (*TxPower, error)       { return nil, errUnimplemented }
func (*client) Statistics(_ string) (*Statistics, error)       { return nil, errUnimplemented }
func (*client) Range(_ string) (*Range, error)                 { return nil, errUnimplemented }
