//go:build !windows

package main

import (
	"errors"

	"Tonecast/internal/config"
	"Tonecast/pkg/device"
)

func openDevice(config.Config) (device.Device, error) {
	return nil, errors.New("sound card access needs the ASIO driver and is only available on windows; try the loopback command")
}
