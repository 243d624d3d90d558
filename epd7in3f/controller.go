// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd7in3f

// Commands, naming follows the vendor code.
const (
	panelSetting          byte = 0x00 // PSR
	powerSetting          byte = 0x01 // PWRR
	powerOff              byte = 0x02 // POF
	powerOffSequence      byte = 0x03 // POFS
	powerOn               byte = 0x04 // PON
	boosterSoftStart1     byte = 0x05 // BTST1
	boosterSoftStart2     byte = 0x06 // BTST2
	deepSleep             byte = 0x07 // DSLP
	boosterSoftStart3     byte = 0x08 // BTST3
	dataStartTransmission byte = 0x10 // DTM
	displayRefresh        byte = 0x12 // DRF
	internalPowerControl  byte = 0x13 // IPC
	pllControl            byte = 0x30 // PLL
	temperatureSensor     byte = 0x41 // TSE
	vcomDataInterval      byte = 0x50 // CDI
	tconSetting           byte = 0x60 // TCON
	resolutionSetting     byte = 0x61 // TRES
	vcomDCSetting         byte = 0x82 // VDCS
	vcomDCPeriod          byte = 0x84 // T-VDCS
	gateScanSetting       byte = 0x86 // AGID
	cascadeSetting        byte = 0xE0 // CCSET
	powerSaving           byte = 0xE3 // PWS
	forceTemperature      byte = 0xE6 // TSSET
	cmdH                  byte = 0xAA // undocumented unlock preamble
)

// deepSleepCheck must accompany the deep sleep command or it is ignored.
const deepSleepCheck byte = 0xA5

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
}

// initDisplay programs the panel after a hardware reset. The values are
// the vendor's bring-up sequence for the 7.3 inch F panel and are not
// meaningful individually; the datasheet documents only a subset of them.
func initDisplay(ctrl controller) {
	ctrl.sendCommand(cmdH)
	ctrl.sendData([]byte{0x49, 0x55, 0x20, 0x08, 0x09, 0x18})

	ctrl.sendCommand(powerSetting)
	ctrl.sendData([]byte{0x3F, 0x00, 0x32, 0x2A, 0x0E, 0x2A})

	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{0x5F, 0x69})

	ctrl.sendCommand(powerOffSequence)
	ctrl.sendData([]byte{0x00, 0x54, 0x00, 0x44})

	ctrl.sendCommand(boosterSoftStart1)
	ctrl.sendData([]byte{0x40, 0x1F, 0x1F, 0x2C})

	ctrl.sendCommand(boosterSoftStart2)
	ctrl.sendData([]byte{0x6F, 0x1F, 0x1F, 0x22})

	ctrl.sendCommand(boosterSoftStart3)
	ctrl.sendData([]byte{0x6F, 0x1F, 0x1F, 0x22})

	ctrl.sendCommand(internalPowerControl)
	ctrl.sendData([]byte{0x00, 0x04})

	ctrl.sendCommand(pllControl)
	ctrl.sendData([]byte{0x3C})

	ctrl.sendCommand(temperatureSensor)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(vcomDataInterval)
	ctrl.sendData([]byte{0x3F})

	ctrl.sendCommand(tconSetting)
	ctrl.sendData([]byte{0x02, 0x00})

	// 0x0320 x 0x01E0: 800 x 480.
	ctrl.sendCommand(resolutionSetting)
	ctrl.sendData([]byte{0x03, 0x20, 0x01, 0xE0})

	ctrl.sendCommand(vcomDCSetting)
	ctrl.sendData([]byte{0x1E})

	ctrl.sendCommand(vcomDCPeriod)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(gateScanSetting)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(powerSaving)
	ctrl.sendData([]byte{0x2F})

	ctrl.sendCommand(cascadeSetting)
	ctrl.sendData([]byte{0x00})

	ctrl.sendCommand(forceTemperature)
	ctrl.sendData([]byte{0x00})
}

// writeImage streams a packed frame into panel RAM one row at a time.
// feed, when non-nil, runs after every row; a full frame is 480 rows of
// 400 bytes and takes long enough to starve a hardware watchdog
// otherwise.
func writeImage(ctrl controller, pix []byte, feed func()) {
	ctrl.sendCommand(dataStartTransmission)
	for off := 0; off+rowBytes <= len(pix); off += rowBytes {
		ctrl.sendData(pix[off : off+rowBytes])
		if feed != nil {
			feed()
		}
	}
}

// writeSolid streams a single-color frame into panel RAM.
func writeSolid(ctrl controller, c Color, feed func()) {
	row := solidRow(c)
	ctrl.sendCommand(dataStartTransmission)
	for y := 0; y < Height; y++ {
		ctrl.sendData(row)
		if feed != nil {
			feed()
		}
	}
}

// updateDisplay powers the booster, refreshes the panel from RAM and
// powers it back off. Each step finishes on the busy line.
func updateDisplay(ctrl controller) {
	ctrl.sendCommand(powerOn)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(displayRefresh)
	ctrl.sendData([]byte{0x00})
	ctrl.waitUntilIdle()

	ctrl.sendCommand(powerOff)
	ctrl.sendData([]byte{0x00})
	ctrl.waitUntilIdle()
}

// sleepDisplay puts the controller into deep sleep. Only a hardware reset
// wakes it again.
func sleepDisplay(ctrl controller) {
	ctrl.sendCommand(deepSleep)
	ctrl.sendData([]byte{deepSleepCheck})
}
