package services

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// ReportTag is what the report QR code encodes.
type ReportTag struct {
	ReportID     string  `json:"report_id"`
	Revision     string  `json:"revision"`
	BuildingType string  `json:"building_type"`
	PlotArea     float64 `json:"plot_area"`
	RoadWidth    float64 `json:"road_width"`
}

func addCaption(img *image.RGBA, x, y int, label string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{30, 30, 30, 255}),
		Face: inconsolata.Bold8x16,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(label)
}

// captionedQRCode draws the QR code with caption lines below it.
func captionedQRCode(tag ReportTag, size int, captions ...string) (image.Image, error) {
	data, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	qr, err := qrcode.New(string(data), qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrImg := qr.Image(size)
	if len(captions) == 0 {
		return qrImg, nil
	}

	qrSize := qrImg.Bounds().Dy()
	padding := 12
	lineHeight := 20
	totalHeight := qrSize + padding + len(captions)*lineHeight + padding

	combined := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
	draw.Draw(combined, combined.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(combined, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

	y := qrSize + padding
	for _, line := range captions {
		y += lineHeight
		addCaption(combined, padding, y-6, line)
	}
	return combined, nil
}

// QRCodePNG renders the report tag as a PNG with the report id printed below.
func QRCodePNG(tag ReportTag, size int) ([]byte, error) {
	img, err := captionedQRCode(tag, size, "Report "+shortID(tag.ReportID), tag.BuildingType)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// qrCodeJPEG is the bare code used inside PDF reports.
func qrCodeJPEG(tag ReportTag, size int) ([]byte, error) {
	img, err := captionedQRCode(tag, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
