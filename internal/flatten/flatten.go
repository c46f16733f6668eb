// Package flatten removes PNG alpha channels by compositing onto an
// opaque white background, which is what App Store Connect requires of
// app-icon uploads (icons containing transparency are rejected).
package flatten

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Opaque composites src over an opaque white canvas of the same bounds
// and returns the result. The source's own alpha channel is the blend
// mask; sources without alpha compose as fully opaque, so the output
// equals the source. The returned image never contains transparency.
func Opaque(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}

// Flatten decodes the PNG at inputPath, flattens it against white, and
// encodes the opaque result to outputPath. The canvas handed to the
// encoder is fully opaque, so the written PNG carries RGB color type
// with no alpha chunk.
func Flatten(inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	src, err := png.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inputPath, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	if err := png.Encode(out, Opaque(src)); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", outputPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
