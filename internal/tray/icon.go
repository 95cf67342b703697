package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 22

var iconData = renderIcon()

// renderIcon draws the template icon: a filled bar with a notch, which the
// OS tints to match the panel.
func renderIcon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	ink := color.NRGBA{A: 0xff}
	for y := 6; y < 16; y++ {
		for x := 2; x < iconSize-2; x++ {
			if y < 9 && x > 8 && x < 13 {
				continue
			}
			img.SetNRGBA(x, y, ink)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
