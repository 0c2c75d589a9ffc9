package sheet

import (
	"fmt"
	"image"
	_ "image/png" // sheets are shipped as PNG
	"os"

	"fortio.org/log"
)

// Provider loads the sprite sheet in the background. Done is closed once
// Image or Err is set.
type Provider struct {
	done chan struct{}
	img  image.Image
	err  error
}

// Load starts loading the sheet from path, or painting it when path is
// empty.
func Load(path string) *Provider {
	p := &Provider{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		if path == "" {
			p.img, p.err = Generate()
		} else {
			p.img, p.err = decodeFile(path)
		}
		if p.err != nil {
			log.Warnf("Sprite sheet %q failed: %v", path, p.err)
			return
		}
		log.Infof("Sprite sheet ready (%v)", p.img.Bounds().Size())
	}()
	return p
}

// Ready wraps an already loaded sheet.
func Ready(img image.Image) *Provider {
	p := &Provider{done: make(chan struct{}), img: img}
	close(p.done)
	return p
}

func (p *Provider) Done() <-chan struct{} { return p.done }

// Image returns the sheet, nil until Done is closed or on error.
func (p *Provider) Image() image.Image {
	select {
	case <-p.done:
		return p.img
	default:
		return nil
	}
}

// Err returns the load error, nil until Done is closed.
func (p *Provider) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
