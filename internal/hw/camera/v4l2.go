package camera

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"time"

	"github.com/blackjack/webcam"

	"github.com/kpfzipoh/camsnap/internal/debug"
)

// V4L2 pixel format fourcc codes (little-endian).
const (
	pixFmtMJPEG webcam.PixelFormat = 0x47504A4D // 'MJPG'
	pixFmtYUYV  webcam.PixelFormat = 0x56595559 // 'YUYV'
)

// V4L2 is a Backend over /dev/video* devices using blackjack/webcam.
// MJPEG is preferred when the device offers it, with YUYV as fallback.
type V4L2 struct {
	devicePattern string
	timeout       time.Duration
}

// NewV4L2 creates a V4L2 capture backend. devicePattern maps a device
// index to a node path, e.g. "/dev/video%d". timeout bounds the wait
// for a single frame.
func NewV4L2(devicePattern string, timeout time.Duration) *V4L2 {
	return &V4L2{devicePattern: devicePattern, timeout: timeout}
}

// Open acquires the device node for the given index and starts
// streaming. A missing node is plain absence; any failure after the
// node exists (busy device, ioctl error) is an acquisition fault.
func (b *V4L2) Open(index int) (Device, error) {
	path := fmt.Sprintf(b.devicePattern, index)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	cam, err := webcam.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	format, err := pickFormat(cam)
	if err != nil {
		_ = cam.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	w, h := pickFrameSize(cam, format)
	format, w, h, err = cam.SetImageFormat(format, w, h)
	if err != nil {
		_ = cam.Close()
		return nil, fmt.Errorf("%s: set image format: %w", path, err)
	}
	debug.Trace("v4l2: %s negotiated format=%#x size=%dx%d", path, uint32(format), w, h)

	if err := cam.StartStreaming(); err != nil {
		_ = cam.Close()
		return nil, fmt.Errorf("%s: start streaming: %w", path, err)
	}

	return &v4l2Device{
		path:    path,
		cam:     cam,
		format:  format,
		width:   int(w),
		height:  int(h),
		timeout: uint32(b.timeout / time.Second),
	}, nil
}

// pickFormat selects a supported pixel format, preferring MJPEG.
func pickFormat(cam *webcam.Webcam) (webcam.PixelFormat, error) {
	formats := cam.GetSupportedFormats()
	for _, f := range []webcam.PixelFormat{pixFmtMJPEG, pixFmtYUYV} {
		if _, ok := formats[f]; ok {
			return f, nil
		}
	}
	return 0, fmt.Errorf("no supported pixel format (want MJPEG or YUYV, device offers %v)", formats)
}

// pickFrameSize returns the largest discrete frame size for the format.
func pickFrameSize(cam *webcam.Webcam, format webcam.PixelFormat) (uint32, uint32) {
	var w, h uint32 = 640, 480
	for _, s := range cam.GetSupportedFrameSizes(format) {
		if s.MaxWidth*s.MaxHeight > w*h {
			w, h = s.MaxWidth, s.MaxHeight
		}
	}
	return w, h
}

type v4l2Device struct {
	path    string
	cam     *webcam.Webcam
	format  webcam.PixelFormat
	width   int
	height  int
	timeout uint32 // seconds
}

func (d *v4l2Device) ReadFrame() (image.Image, error) {
	err := d.cam.WaitForFrame(d.timeout)
	switch err.(type) {
	case nil:
	case *webcam.Timeout:
		return nil, fmt.Errorf("%s: frame wait timed out: %w", d.path, err)
	default:
		return nil, fmt.Errorf("%s: wait for frame: %w", d.path, err)
	}

	raw, err := d.cam.ReadFrame()
	if err != nil {
		return nil, fmt.Errorf("%s: read frame: %w", d.path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: empty frame", d.path)
	}
	debug.Trace("v4l2: %s read %d bytes", d.path, len(raw))

	switch d.format {
	case pixFmtMJPEG:
		img, err := jpeg.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: decode mjpeg frame: %w", d.path, err)
		}
		return img, nil
	case pixFmtYUYV:
		return newYUYVImage(d.width, d.height, raw)
	default:
		return nil, fmt.Errorf("%s: unhandled pixel format %#x", d.path, uint32(d.format))
	}
}

func (d *v4l2Device) Close() error {
	debug.Trace("v4l2: closing %s", d.path)
	if err := d.cam.StopStreaming(); err != nil {
		_ = d.cam.Close()
		return fmt.Errorf("%s: stop streaming: %w", d.path, err)
	}
	return d.cam.Close()
}
