//go:build windows

package main

import (
	"Tonecast/internal/config"
	"Tonecast/pkg/device"
)

func openDevice(cfg config.Config) (device.Device, error) {
	return &device.ASIOMono{
		DeviceName: cfg.DeviceName,
		SampleRate: float64(cfg.Modem.SampleRate),
		InChannel:  cfg.InChannel,
		OutChannel: cfg.OutChannel,
	}, nil
}
