package wireless

import (
	"fmt"
	"io"
	"net"
)

// Dividers printed between report sections and between interfaces.
const (
	sectionDivider   = "--------"
	interfaceDivider = "========"
)

// A querier is the set of queries a report draws from. *Client
// implements it.
type querier interface {
	Interfaces() ([]*Interface, error)
	Name(ifname string) (string, error)
	ESSID(ifname string) (string, error)
	AccessPoint(ifname string) (net.HardwareAddr, error)
	Bitrate(ifname string) (int, error)
	TransmitPower(ifname string) (*TxPower, error)
	Statistics(ifname string) (*Statistics, error)
	Range(ifname string) (*Range, error)
}

// A Reporter writes labeled diagnostic blocks for network interfaces.
type Reporter struct {
	q querier
	w io.Writer
}

// NewReporter creates a Reporter which writes to w using c for queries.
func NewReporter(c *Client, w io.Writer) *Reporter {
	return &Reporter{
		q: c,
		w: w,
	}
}

// ReportAll enumerates every interface and writes a report block for
// each one in enumeration order. Enumeration failure is fatal;
// per-interface query failures are reported inline and do not stop the
// run.
func (r *Reporter) ReportAll() error {
	ifis, err := r.q.Interfaces()
	if err != nil {
		return fmt.Errorf("could not list interfaces: %w", err)
	}

	for _, ifi := range ifis {
		r.Report(ifi)
	}

	return nil
}

// Report writes one interface's block. Every query is attempted exactly
// once; a failure is reported for that field alone and the remaining
// queries still run.
func (r *Reporter) Report(ifi *Interface) {
	if !ifi.Wireless {
		fmt.Fprintf(r.w, "interface %s is not wireless\n", ifi.Name)
		fmt.Fprintln(r.w, interfaceDivider)
		return
	}

	fmt.Fprintf(r.w, "Interface %s is wireless: %s\n", ifi.Name, ifi.Protocol)

	r.reportParameters(ifi.Name)
	fmt.Fprintln(r.w, sectionDivider)
	r.reportStatistics(ifi.Name)
	fmt.Fprintln(r.w, sectionDivider)
	r.reportRange(ifi.Name)
	fmt.Fprintln(r.w, interfaceDivider)
}

// reportParameters writes the ESSID, access point, bitrate and transmit
// power lines.
func (r *Reporter) reportParameters(name string) {
	if essid, err := r.q.ESSID(name); err != nil {
		fmt.Fprintf(r.w, "Could not get ESSID: %v\n", err)
	} else {
		fmt.Fprintf(r.w, "ESSID: %s\n", essid)
	}

	if ap, err := r.q.AccessPoint(name); err != nil {
		fmt.Fprintf(r.w, "Could not get access point: %v\n", err)
	} else {
		fmt.Fprintf(r.w, "Access Point: %s\n", FormatAccessPoint(ap))
	}

	if rate, err := r.q.Bitrate(name); err != nil {
		fmt.Fprintf(r.w, "Could not get bitrate: %v\n", err)
	} else {
		fmt.Fprintf(r.w, "Bit Rate: %s\n", FormatBitrate(rate))
	}

	if power, err := r.q.TransmitPower(name); err != nil {
		fmt.Fprintf(r.w, "Could not get transmit power: %v\n", err)
	} else {
		fmt.Fprintf(r.w, "Transmit Power: %s\n", power)
	}
}

// reportStatistics writes the live statistics section.
func (r *Reporter) reportStatistics(name string) {
	stats, err := r.q.Statistics(name)
	if err != nil {
		fmt.Fprintf(r.w, "Could not get statistics: %v\n", err)
		return
	}

	fmt.Fprintf(r.w, "Status: %x\n", stats.Status)
	r.reportQuality(stats.Quality, "")

	fmt.Fprintf(r.w, "Rx invalid nwid: %d\n", stats.DiscardedNwid)
	fmt.Fprintf(r.w, "Rx invalid crypt: %d\n", stats.DiscardedCrypt)
	fmt.Fprintf(r.w, "Rx invalid frag: %d\n", stats.DiscardedFrag)
	fmt.Fprintf(r.w, "Tx excessive retries: %d\n", stats.DiscardedRetry)
	fmt.Fprintf(r.w, "Invalid misc: %d\n", stats.DiscardedMisc)
	fmt.Fprintf(r.w, "Missed beacon: %d\n", stats.MissedBeacon)
	fmt.Fprintf(r.w, "Updated: %x\n", stats.Quality.Updated)
}

// reportRange writes the capability bounds section.
func (r *Reporter) reportRange(name string) {
	rng, err := r.q.Range(name)
	if err != nil {
		fmt.Fprintf(r.w, "Could not get range: %v\n", err)
		return
	}

	if rng.MaxQuality.QualityValid() {
		fmt.Fprintf(r.w, "Max Quality: %d\n", rng.MaxQuality.Value)
	} else {
		fmt.Fprintln(r.w, "Max Quality not reported")
	}

	if rng.AvgQuality.QualityValid() {
		fmt.Fprintf(r.w, "Avg Quality: %d\n", rng.AvgQuality.Value)
	} else {
		fmt.Fprintln(r.w, "Avg Quality not reported")
	}

	if rng.MaxQuality.SignalValid() {
		fmt.Fprintf(r.w, "Max Signal Level: %d dBm\n", rng.MaxQuality.SignalDBm())
	} else {
		fmt.Fprintln(r.w, "Max Signal Level not reported")
	}

	if rng.MaxQuality.NoiseValid() {
		fmt.Fprintf(r.w, "Max Noise Level: %d dBm\n", rng.MaxQuality.NoiseDBm())
	} else {
		fmt.Fprintln(r.w, "Max Noise Level not reported")
	}
}

// reportQuality writes quality, signal and noise lines, substituting a
// "not reported" notice for any field whose invalid bit is set.
func (r *Reporter) reportQuality(q Quality, prefix string) {
	if q.QualityValid() {
		fmt.Fprintf(r.w, "%sQuality: %d\n", prefix, q.Value)
	} else {
		fmt.Fprintf(r.w, "%sQuality not reported\n", prefix)
	}

	if q.SignalValid() {
		fmt.Fprintf(r.w, "%sSignal Level: %d dBm\n", prefix, q.SignalDBm())
	} else {
		fmt.Fprintf(r.w, "%sSignal Level not reported\n", prefix)
	}

	if q.NoiseValid() {
		fmt.Fprintf(r.w, "%sNoise Level: %d dBm\n", prefix, q.NoiseDBm())
	} else {
		fmt.Fprintf(r.w, "%sNoise Level not reported\n", prefix)
	}
}
