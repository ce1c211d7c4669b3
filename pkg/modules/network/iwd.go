package network

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/polka-dots/polka/pkg/errors"
)

const (
	iwdService      = "net.connman.iwd"
	iwdStation      = "net.connman.iwd.Station"
	iwdDevice       = "net.connman.iwd.Device"
	objectManager   = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
	stationScanCall = iwdStation + ".Scan"
)

// Station is a wireless device able to scan
type Station struct {
	Path dbus.ObjectPath
	Name string
}

// Wireless locates and drives the wireless station
type Wireless interface {
	Station(ctx context.Context) (Station, error)
	Scan(ctx context.Context, st Station) error
}

// IWD talks to the iwd daemon over the system bus
type IWD struct {
	conn *dbus.Conn
}

// ConnectIWD opens the shared system bus connection
func ConnectIWD() (*IWD, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUnavailable, "cannot connect to the system bus")
	}
	return &IWD{conn: conn}, nil
}

type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// Station returns the first object exposing the station interface
func (w *IWD) Station(ctx context.Context) (Station, error) {
	var objs managedObjects
	err := w.conn.Object(iwdService, "/").CallWithContext(ctx, objectManager, 0).Store(&objs)
	if err != nil {
		return Station{}, errors.Wrap(err, errors.ErrUnavailable, "cannot list iwd objects")
	}
	return findStation(objs)
}

// Scan asks the station to refresh its network list
func (w *IWD) Scan(ctx context.Context, st Station) error {
	call := w.conn.Object(iwdService, st.Path).CallWithContext(ctx, stationScanCall, 0)
	if call.Err != nil {
		return errors.Wrap(call.Err, errors.ErrCommandFailed, "scan request failed")
	}
	return nil
}

// findStation picks the lowest station path so repeated calls agree
func findStation(objs managedObjects) (Station, error) {
	var found *Station
	for path, ifaces := range objs {
		if _, ok := ifaces[iwdStation]; !ok {
			continue
		}
		if found != nil && found.Path < path {
			continue
		}
		st := Station{Path: path}
		if v, ok := ifaces[iwdDevice]["Name"]; ok {
			if name, ok := v.Value().(string); ok {
				st.Name = name
			}
		}
		found = &st
	}
	if found == nil {
		return Station{}, errors.New(errors.ErrNotFound, "no wireless station found")
	}
	return *found, nil
}
